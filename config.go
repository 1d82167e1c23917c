package rogueop

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rogueop/rogueop-go/internal/effects"
	"github.com/rogueop/rogueop-go/internal/wave"
)

// Backend names an audio output.
type Backend string

const (
	BackendEbiten Backend = "ebiten"
	BackendOto    Backend = "oto"
	BackendNone   Backend = "none"
)

const (
	DefaultSampleRate = wave.DefaultSampleRate
	DefaultBitDepth   = wave.DefaultBitDepth
	DefaultBufferSize = 512
	// DefaultTickPeriod runs the logic tick at 30Hz.
	DefaultTickPeriod = time.Second / 30
	// MinTickSleep is the least a logic tick yields, even when it overruns.
	MinTickSleep = time.Millisecond
)

var ErrInvalidConfig = errors.New("rogueop: invalid configuration")

// Config holds engine settings. Zero values are not filled in; start from
// DefaultConfig.
type Config struct {
	SampleRate   int
	BitDepth     int
	BufferSize   int
	MasterVolume float32
	Backend      Backend
	TickPeriod   time.Duration
	// EQGains are the master EQ band gains, low to high. 1.0 = unity.
	EQGains [effects.Bands]float32
}

func DefaultConfig() Config {
	cfg := Config{
		SampleRate:   DefaultSampleRate,
		BitDepth:     DefaultBitDepth,
		BufferSize:   DefaultBufferSize,
		MasterVolume: 1,
		Backend:      BackendEbiten,
		TickPeriod:   DefaultTickPeriod,
	}
	for i := range cfg.EQGains {
		cfg.EQGains[i] = 1
	}
	return cfg
}

func (c Config) Validate() error {
	var errs []error
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample rate %d must be positive", c.SampleRate))
	}
	if c.BitDepth != 8 && c.BitDepth != 16 {
		errs = append(errs, fmt.Errorf("bit depth %d must be 8 or 16", c.BitDepth))
	}
	if c.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("buffer size %d must be positive", c.BufferSize))
	}
	if c.MasterVolume < 0 || c.MasterVolume > 1 {
		errs = append(errs, fmt.Errorf("master volume %v outside [0, 1]", c.MasterVolume))
	}
	switch c.Backend {
	case BackendEbiten, BackendOto, BackendNone:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if c.TickPeriod <= 0 {
		errs = append(errs, fmt.Errorf("tick period %v must be positive", c.TickPeriod))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// LoadConfigFromEnv overlays environment settings on base:
//
//	ROGUEOP_SAMPLE_RATE    positive integer, Hz
//	ROGUEOP_BIT_DEPTH      8 or 16
//	ROGUEOP_BUFFER_SIZE    samples per oscillator render
//	ROGUEOP_MASTER_VOLUME  0-100
//	ROGUEOP_BACKEND        ebiten, oto or none
//	ROGUEOP_TICK_MS        logic tick period in milliseconds
//	ROGUEOP_EQ             JSON array of up to five band gains
//
// Unset variables keep the base value. Malformed or out-of-range ones are
// reported together and leave their field unchanged.
func LoadConfigFromEnv(base Config) (Config, error) {
	cfg := base
	var errs []error
	envInt := func(key string, dst *int) {
		raw := os.Getenv(key)
		if raw == "" {
			return
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = v
	}

	envInt("ROGUEOP_SAMPLE_RATE", &cfg.SampleRate)
	envInt("ROGUEOP_BIT_DEPTH", &cfg.BitDepth)
	envInt("ROGUEOP_BUFFER_SIZE", &cfg.BufferSize)

	if os.Getenv("ROGUEOP_MASTER_VOLUME") != "" {
		vol := 0
		n := len(errs)
		envInt("ROGUEOP_MASTER_VOLUME", &vol)
		switch {
		case len(errs) > n: // malformed, already reported
		case vol >= 0 && vol <= 100:
			cfg.MasterVolume = float32(vol) / 100
		default:
			errs = append(errs, fmt.Errorf("ROGUEOP_MASTER_VOLUME: %d outside 0-100", vol))
		}
	}

	if raw := os.Getenv("ROGUEOP_BACKEND"); raw != "" {
		cfg.Backend = Backend(strings.ToLower(strings.TrimSpace(raw)))
	}

	if os.Getenv("ROGUEOP_TICK_MS") != "" {
		ms := 0
		n := len(errs)
		envInt("ROGUEOP_TICK_MS", &ms)
		switch {
		case len(errs) > n: // malformed, already reported
		case ms > 0:
			cfg.TickPeriod = time.Duration(ms) * time.Millisecond
		default:
			errs = append(errs, fmt.Errorf("ROGUEOP_TICK_MS: %d must be positive", ms))
		}
	}

	if raw := os.Getenv("ROGUEOP_EQ"); raw != "" {
		var gains []float32
		if err := json.Unmarshal([]byte(raw), &gains); err != nil {
			errs = append(errs, fmt.Errorf("ROGUEOP_EQ: %w", err))
		} else {
			copy(cfg.EQGains[:], gains)
		}
	}

	if len(errs) > 0 {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return cfg, cfg.Validate()
}
