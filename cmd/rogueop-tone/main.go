package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rogueop/rogueop-go"
)

func main() {
	var (
		waveName   = flag.String("wave", "pulse", "carrier: pulse|noise|fmnoise|pink|saw|triangle|sine|tan|hemicycle")
		freq       = flag.Float64("freq", 440, "carrier frequency in Hz")
		lfoName    = flag.String("lfo", "", "LFO waveform (empty = no LFO)")
		lfoFreq    = flag.Float64("lfo-freq", 5, "LFO frequency in Hz")
		modName    = flag.String("mod", "none", "modulation: none|amp|freq|phase|duty|ampslide|freqslide|phaseslide|dutyslide")
		depth      = flag.Float64("depth", 1, "LFO depth")
		slideTo    = flag.Float64("slide-to", 0, "slide target (Hz for freqslide, level for the others)")
		slideTime  = flag.Float64("slide-time", 0, "slide length in seconds")
		duty       = flag.Float64("duty", 0.5, "duty cycle 0..1")
		volume     = flag.Float64("volume", 0.5, "oscillator volume")
		seconds    = flag.Float64("seconds", 2, "length to play or render")
		sampleRate = flag.Int("sample-rate", 0, "output sample rate (0 = ROGUEOP_SAMPLE_RATE or 11025)")
		bitDepth   = flag.Int("bit-depth", 0, "WAV bit depth 8|16 (0 = ROGUEOP_BIT_DEPTH or 8)")
		outPath    = flag.String("out", "", "write a WAV file instead of playing")
		backend    = flag.String("backend", "", "audio backend: ebiten|oto|none (empty = ROGUEOP_BACKEND or ebiten)")
		effectDesc = flag.String("effect", "", `effects, e.g. "delay 250,0.4,0.3; reverb"`)
		adshr      = flag.String("env", "", "envelope attack,decay,sustain,hold,release (durations in seconds)")
		freeRun    = flag.Bool("free", false, "free-running envelope")
	)
	flag.Parse()

	cfg, err := rogueop.LoadConfigFromEnv(rogueop.DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}
	if *sampleRate > 0 {
		cfg.SampleRate = *sampleRate
	}
	if *bitDepth > 0 {
		cfg.BitDepth = *bitDepth
	}
	if *backend != "" {
		cfg.Backend = rogueop.Backend(strings.ToLower(*backend))
	}
	if *outPath != "" {
		cfg.Backend = rogueop.BackendNone
	}

	engine, err := rogueop.New(rogueop.WithConfig(cfg))
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	opts, err := patchOptions(cfg.SampleRate, *lfoName, *modName, *adshr, *freeRun,
		float32(*lfoFreq), float32(*depth), float32(*slideTo), float32(*slideTime))
	if err != nil {
		log.Fatal(err)
	}
	carrier, err := rogueop.ParseWaveform(*waveName)
	if err != nil {
		log.Fatal(err)
	}
	opts = append(opts,
		rogueop.WithFrequency(float32(*freq)),
		rogueop.WithDuty(float32(*duty)),
		rogueop.WithVolume(float32(*volume)),
	)
	osc, err := engine.NewOscillator(carrier, opts...)
	if err != nil {
		log.Fatal(err)
	}
	fx, err := rogueop.ParseEffects(*effectDesc, cfg.SampleRate)
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range fx {
		osc.Chain(e)
	}
	osc.SetEnabled(true)

	if *outPath != "" {
		if err := writeWAV(engine, *outPath, *seconds); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %s (%.2fs, %d Hz, %d-bit)\n", *outPath, *seconds, cfg.SampleRate, cfg.BitDepth)
		return
	}

	if err := engine.Start(); err != nil {
		log.Fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(*seconds*float64(time.Second)))
	defer cancel()
	fmt.Printf("playing %s at %.1f Hz through %s\n", carrier, *freq, cfg.Backend)
	if err := engine.Run(ctx, nil); err != nil {
		log.Fatal(err)
	}
	<-ctx.Done()
	fmt.Println("playback completed")
}

func patchOptions(sampleRate int, lfoName, modName, adshr string, freeRun bool, lfoFreq, depth, slideTo, slideTime float32) ([]rogueop.OscillatorOption, error) {
	var opts []rogueop.OscillatorOption
	if strings.TrimSpace(lfoName) != "" {
		kind, err := rogueop.ParseWaveform(lfoName)
		if err != nil {
			return nil, fmt.Errorf("invalid -lfo: %w", err)
		}
		opts = append(opts, rogueop.WithLFO(kind, lfoFreq))
	}
	mod, err := rogueop.ParseModulation(modName)
	if err != nil {
		return nil, fmt.Errorf("invalid -mod: %w", err)
	}
	opts = append(opts,
		rogueop.WithModulation(mod, depth),
		rogueop.WithSlide(slideTo, slideTime*float32(sampleRate)),
	)
	if strings.TrimSpace(adshr) != "" {
		env, err := parseEnvelope(adshr, sampleRate, freeRun)
		if err != nil {
			return nil, err
		}
		opts = append(opts, rogueop.WithEnvelope(env))
	}
	return opts, nil
}

func parseEnvelope(desc string, sampleRate int, freeRun bool) (*rogueop.Envelope, error) {
	parts := strings.Split(desc, ",")
	if len(parts) != 5 {
		return nil, fmt.Errorf("invalid -env %q (expected attack,decay,sustain,hold,release)", desc)
	}
	var v [5]float64
	for i, p := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%g", &v[i]); err != nil {
			return nil, fmt.Errorf("invalid -env value %q: %w", p, err)
		}
	}
	samples := func(sec float64) int { return int(sec * float64(sampleRate)) }
	mode := rogueop.Gated
	if freeRun {
		mode = rogueop.FreeRunning
	}
	return rogueop.NewEnvelope(samples(v[0]), samples(v[1]), float32(v[2]), samples(v[3]), samples(v[4]), mode), nil
}

func writeWAV(engine *rogueop.Engine, path string, seconds float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := engine.WriteWAV(f, seconds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
