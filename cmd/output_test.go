package cmd

import "testing"

func TestSuffixed(t *testing.T) {
	tcs := []struct{ in, suffix, want string }{
		{"out.png", "moment", "out_moment.png"},
		{"dir/beam.svg", "shear", "dir/beam_shear.svg"},
		{"plain", "moment", "plain_moment"},
	}
	for _, tc := range tcs {
		if got := suffixed(tc.in, tc.suffix); got != tc.want {
			t.Errorf("suffixed(%q, %q) = %q, want %q", tc.in, tc.suffix, got, tc.want)
		}
	}
}

func TestResample(t *testing.T) {
	ys := make([]float64, 101)
	for k := range ys {
		ys[k] = float64(k)
	}
	out := resample(ys, 11)
	if len(out) != 11 || out[0] != 0 || out[10] != 100 || out[5] != 50 {
		t.Fatalf("resample = %v", out)
	}
	if short := resample(ys[:5], 11); len(short) != 5 {
		t.Fatalf("short series resampled to %d values", len(short))
	}
}

func TestSelectedCombo(t *testing.T) {
	solveTable, solveCombo = "simplified", "2"
	defer func() { solveTable, solveCombo = "nscp", "" }()

	lc, err := selectedCombo()
	if err != nil || lc.Description != "1.2D + 1.6L" {
		t.Fatalf("selectedCombo = %+v, %v", lc, err)
	}
	solveCombo = "9"
	if _, err := selectedCombo(); err == nil {
		t.Fatal("unknown combination accepted")
	}
	solveTable = "eurocode"
	if _, err := comboTable(); err == nil {
		t.Fatal("unknown table accepted")
	}
}
