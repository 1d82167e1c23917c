package main

import "testing"

func TestParseEnvelope(t *testing.T) {
	env, err := parseEnvelope("0.01, 0.02, 0.5, 0, 0.1", 1000, false)
	if err != nil {
		t.Fatalf("parseEnvelope: %v", err)
	}
	if env == nil {
		t.Fatal("expected envelope")
	}
	for _, bad := range []string{"1,2,3", "a,b,c,d,e"} {
		if _, err := parseEnvelope(bad, 1000, false); err == nil {
			t.Errorf("parseEnvelope(%q) accepted", bad)
		}
	}
}

func TestPatchOptions(t *testing.T) {
	opts, err := patchOptions(11025, "sine", "freq", "", false, 5, 1, 0, 0)
	if err != nil {
		t.Fatalf("patchOptions: %v", err)
	}
	if len(opts) != 3 {
		t.Fatalf("got %d options, want 3", len(opts))
	}
	if _, err := patchOptions(11025, "organ", "none", "", false, 5, 1, 0, 0); err == nil {
		t.Error("unknown LFO accepted")
	}
	if _, err := patchOptions(11025, "", "wobble", "", false, 5, 1, 0, 0); err == nil {
		t.Error("unknown modulation accepted")
	}
}
