package modulation

import (
	"math"
	"testing"
)

func TestWaveformValue(t *testing.T) {
	tests := []struct {
		w     Waveform
		phase float64
		want  float64
	}{
		{WaveSine, 0, 0},
		{WaveSine, 0.25, 1},
		{WaveSine, 0.75, -1},
		{WaveTriangle, 0, -1},
		{WaveTriangle, 0.25, 0},
		{WaveTriangle, 0.5, 1},
		{WaveSquare, 0.1, 1},
		{WaveSquare, 0.6, -1},
		{WaveSawtooth, 0, -1},
		{WaveSawtooth, 0.5, 0},
		{WaveSawtooth, 1.5, 0},
	}

	for _, tt := range tests {
		if got := tt.w.Value(tt.phase); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s.Value(%v) = %v, want %v", tt.w, tt.phase, got, tt.want)
		}
	}
}

func TestWaveformBounded(t *testing.T) {
	for w := WaveSine; w <= WaveSawtooth; w++ {
		for i := range 1000 {
			v := w.Value(float64(i) / 1000)
			if v < -1 || v > 1 {
				t.Fatalf("%s out of range at %d: %v", w, i, v)
			}
		}
	}
}

func TestParseWaveform(t *testing.T) {
	for _, name := range []string{"sine", "triangle", "square", "sawtooth"} {
		w, ok := ParseWaveform(name)
		if !ok || w.String() != name {
			t.Fatalf("ParseWaveform(%q) = %v, %v", name, w, ok)
		}
	}

	if w, ok := ParseWaveform("noise"); ok || w != WaveSine {
		t.Fatalf("unknown waveform = %v, %v", w, ok)
	}
}

func TestPhaseOffset(t *testing.T) {
	if got := PhaseOffset(0, 90); got != 0 {
		t.Fatalf("channel 0 = %v", got)
	}
	if got := PhaseOffset(1, 90); got != 0.25 {
		t.Fatalf("channel 1 = %v", got)
	}
	if got := PhaseOffset(3, 180); got != 0.5 {
		t.Fatalf("channel 3 = %v", got)
	}
}

func TestLFOAdvancesAndWraps(t *testing.T) {
	lfo := NewLFO(WaveSawtooth, 1000, 4000, 0)

	want := []float64{-1, -0.5, 0, 0.5, -1}
	for i, w := range want {
		if got := lfo.Next(); math.Abs(got-w) > 1e-12 {
			t.Fatalf("sample %d = %v, want %v", i, got, w)
		}
	}

	if p := lfo.Phase(); p < 0 || p >= 1 {
		t.Fatalf("phase = %v", p)
	}
}

func TestAllPassStageUnityMagnitude(t *testing.T) {
	const sr = 48000
	a1 := AllPassCoefficient(1000, sr)

	var stage AllPassStage
	energyIn, energyOut := 0.0, 0.0
	for i := range 1 << 16 {
		x := 0.0
		if i == 0 {
			x = 1
		}
		y := stage.Process(x, a1)
		energyIn += x * x
		energyOut += y * y
	}

	if math.Abs(energyOut-energyIn) > 1e-9 {
		t.Fatalf("impulse energy out = %v, want %v", energyOut, energyIn)
	}

	stage.Reset()
	if y := stage.Process(0, a1); y != 0 {
		t.Fatalf("reset stage output = %v", y)
	}
}
