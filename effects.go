package rogueop

import (
	"fmt"
	"strconv"
	"strings"

	intfx "github.com/rogueop/rogueop-go/internal/effects"
	"github.com/rogueop/rogueop-go/internal/wave"
)

// ParseEffects builds effects from a description such as
//
//	"delay 250,0.4,0.3; reverb; tremolo 6,0.5"
//
// Entries are separated by semicolons. Each names an effect type optionally
// followed by comma-separated parameters; missing parameters take defaults.
// Supported: delay, reverb, chorus, dist, eq, comp, tremolo.
func ParseEffects(desc string, sampleRate int) ([]intfx.Effector, error) {
	var out []intfx.Effector
	for _, entry := range strings.Split(desc, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, rest, _ := strings.Cut(entry, " ")
		var params []float64
		for _, p := range strings.Split(rest, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, fmt.Errorf("effect %q: param %q: %w", name, p, err)
			}
			params = append(params, v)
		}
		eff, err := createEffect(strings.ToLower(name), params, sampleRate)
		if err != nil {
			return nil, err
		}
		out = append(out, eff)
	}
	return out, nil
}

func createEffect(effectType string, params []float64, sampleRate int) (intfx.Effector, error) {
	getParam := func(idx int, def float64) float32 {
		if idx < len(params) {
			return float32(params[idx])
		}
		return float32(def)
	}
	switch effectType {
	case "delay":
		return intfx.NewDelay(sampleRate,
			float64(getParam(0, 250)), // delay ms
			getParam(1, 0.4),          // feedback
			getParam(2, 0.3),          // wet
		), nil
	case "reverb":
		return intfx.NewReverb(sampleRate,
			getParam(0, 0.5),  // room size
			getParam(1, 0.7),  // feedback
			getParam(2, 0.25), // wet
		), nil
	case "chorus":
		return intfx.NewChorus(sampleRate,
			getParam(0, 15),  // delay ms
			getParam(1, 0.3), // feedback
			getParam(2, 3),   // depth ms
			getParam(3, 1.5), // rate Hz
			getParam(4, 0.4), // wet
		), nil
	case "dist", "distortion":
		return intfx.NewDistortion(sampleRate,
			getParam(0, 4),    // pre gain
			getParam(1, 0.6),  // post gain
			getParam(2, 3000), // lowpass Hz
		), nil
	case "eq":
		return intfx.NewEQ3Band(sampleRate,
			getParam(0, 1),    // low gain
			getParam(1, 1),    // mid gain
			getParam(2, 1),    // high gain
			getParam(3, 300),  // low crossover Hz
			getParam(4, 2500), // high crossover Hz
		), nil
	case "comp", "compressor":
		return intfx.NewCompressor(sampleRate,
			getParam(0, -18), // threshold dB
			getParam(1, 4),   // ratio
			getParam(2, 5),   // attack ms
			getParam(3, 80),  // release ms
			getParam(4, 3),   // makeup dB
		), nil
	case "tremolo":
		t, err := intfx.NewTremolo(sampleRate, wave.Sine,
			getParam(0, 5),   // rate Hz
			getParam(1, 0.5), // depth
		)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: unknown effect %q", ErrInvalidConfig, effectType)
	}
}
