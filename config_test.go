package rogueop

import (
	"errors"
	"testing"
	"time"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ROGUEOP_SAMPLE_RATE", "22050")
	t.Setenv("ROGUEOP_BIT_DEPTH", "16")
	t.Setenv("ROGUEOP_MASTER_VOLUME", "35")
	t.Setenv("ROGUEOP_BACKEND", " OTO ")
	t.Setenv("ROGUEOP_TICK_MS", "20")
	t.Setenv("ROGUEOP_EQ", "[0.5, 1, 2]")

	cfg, err := LoadConfigFromEnv(DefaultConfig())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SampleRate != 22050 || cfg.BitDepth != 16 {
		t.Errorf("rate/depth = %d/%d", cfg.SampleRate, cfg.BitDepth)
	}
	if cfg.MasterVolume != 0.35 {
		t.Errorf("volume = %v, want 0.35", cfg.MasterVolume)
	}
	if cfg.Backend != BackendOto {
		t.Errorf("backend = %q, want oto", cfg.Backend)
	}
	if cfg.TickPeriod != 20*time.Millisecond {
		t.Errorf("tick = %v, want 20ms", cfg.TickPeriod)
	}
	want := [5]float32{0.5, 1, 2, 1, 1}
	if cfg.EQGains != want {
		t.Errorf("eq = %v, want %v", cfg.EQGains, want)
	}
}

func TestLoadConfigFromEnvDefaults(t *testing.T) {
	cfg, err := LoadConfigFromEnv(DefaultConfig())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
	if cfg.SampleRate != 11025 || cfg.BitDepth != 8 {
		t.Fatalf("defaults = %d Hz / %d bit, want 11025 / 8", cfg.SampleRate, cfg.BitDepth)
	}
}

func TestLoadConfigFromEnvMalformed(t *testing.T) {
	t.Setenv("ROGUEOP_SAMPLE_RATE", "fast")
	t.Setenv("ROGUEOP_EQ", "{")
	cfg, err := LoadConfigFromEnv(DefaultConfig())
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("got %v, want ErrInvalidConfig", err)
	}
	if cfg.SampleRate != DefaultSampleRate {
		t.Errorf("malformed rate changed the field to %d", cfg.SampleRate)
	}
}

func TestLoadConfigFromEnvOutOfRange(t *testing.T) {
	cases := []struct{ key, value string }{
		{"ROGUEOP_BIT_DEPTH", "12"},
		{"ROGUEOP_MASTER_VOLUME", "-20"},
		{"ROGUEOP_MASTER_VOLUME", "150"},
		{"ROGUEOP_TICK_MS", "0"},
		{"ROGUEOP_TICK_MS", "-5"},
	}
	for _, c := range cases {
		t.Run(c.key+"="+c.value, func(t *testing.T) {
			t.Setenv(c.key, c.value)
			base := DefaultConfig()
			cfg, err := LoadConfigFromEnv(base)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("got %v, want ErrInvalidConfig", err)
			}
			if cfg.MasterVolume != base.MasterVolume || cfg.TickPeriod != base.TickPeriod {
				t.Errorf("out-of-range value changed config: volume %v, tick %v", cfg.MasterVolume, cfg.TickPeriod)
			}
		})
	}
}
