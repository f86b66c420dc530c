package sfx

import (
	"math"
	"testing"
)

func TestGeneratorRejectsBadSampleRate(t *testing.T) {
	p := New()
	p.SampleRate = 0
	if _, err := NewGenerator(p); err == nil {
		t.Error("expected error for zero sample rate")
	}
	p.SampleRate = -44100
	if _, err := NewGenerator(p); err == nil {
		t.Error("expected error for negative sample rate")
	}
}

// TestGeneratorLengthMatchesEnvelope verifies that stage times map to
// sample counts by plain rounding.
func TestGeneratorLengthMatchesEnvelope(t *testing.T) {
	p := New()
	p.SustainTime = 0.2

	g, err := NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	out := g.RenderAll()
	if len(out) != 8820 {
		t.Errorf("0.2s sustain at 44100 Hz: got %d samples, want 8820", len(out))
	}
}

func TestGeneratorDeterministicAndResettable(t *testing.T) {
	p := RandomizePreset(CategoryExplosion, 17) // noise, phaser, retrigger

	g1, err := NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	g2, err := NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	a := g1.RenderAll()
	b := g2.RenderAll()
	if len(a) == 0 {
		t.Fatal("explosion preset rendered no samples")
	}
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("outputs diverge at sample %d: %g vs %g", i, a[i], b[i])
		}
	}

	g1.Reset()
	c := g1.RenderAll()
	if len(c) != len(a) {
		t.Fatalf("reset changed the length: %d vs %d", len(c), len(a))
	}
	for i := range a {
		if a[i] != c[i] {
			t.Fatalf("reset output diverges at sample %d: %g vs %g", i, a[i], c[i])
		}
	}
}

func TestGeneratorNeutralStagesBypassed(t *testing.T) {
	p := New()
	p.SustainTime = 0.1

	g, err := NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	if g.filt.enabled {
		t.Error("filters active on a neutral patch")
	}
	if g.ph.enabled {
		t.Error("phaser active on a neutral patch")
	}
	if g.crusher != nil {
		t.Error("bit crusher active on a neutral patch")
	}
}

// TestGeneratorNeutralChainExactAmplitude renders a plain square wave
// with every effect at neutral. Away from waveform edges each output
// sample must be exactly the oscillator level times the squared
// master volume.
func TestGeneratorNeutralChainExactAmplitude(t *testing.T) {
	p := New()
	p.BaseFreq = 0.5
	p.SustainTime = 0.1

	g, err := NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	out := g.RenderAll()

	const want = 0.125 // 0.5 square level * 0.5^2 master gain
	exact := 0
	for i, s := range out {
		abs := math.Abs(float64(s))
		if abs > want {
			t.Fatalf("sample %d exceeds the clean square level: %g", i, s)
		}
		if float32(abs) == want {
			exact++
		}
	}
	if exact < len(out)*9/10 {
		t.Errorf("only %d of %d samples at the exact square level", exact, len(out))
	}
}

func TestGeneratorFreqLimitStopsSound(t *testing.T) {
	p := New()
	p.BaseFreq = 0.8
	p.FreqSlide = -0.4
	p.SustainTime = 1.0

	full, err := NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	unlimited := len(full.RenderAll())
	if unlimited != 44100 {
		t.Fatalf("without a limit the envelope sets the length: got %d, want 44100", unlimited)
	}

	p.FreqLimit = 0.5
	limited, err := NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	got := len(limited.RenderAll())
	if got == 0 {
		t.Fatal("limited render produced nothing")
	}
	if got >= unlimited {
		t.Errorf("frequency floor did not cut the sound: %d >= %d", got, unlimited)
	}
	if !limited.Finished() {
		t.Error("generator not finished after draining")
	}
}

func TestGeneratorRepeatRewindsPitch(t *testing.T) {
	p := New()
	p.WaveShape = WaveSine
	p.BaseFreq = 0.7
	p.FreqSlide = -0.35
	p.SustainTime = 1.0

	plain, err := NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	withoutRepeat := plain.RenderAll()

	p.RepeatSpeed = 0.9
	repeating, err := NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	withRepeat := repeating.RenderAll()

	// By the last quarter the un-retriggered slide has collapsed to a
	// sub-audio rumble, while retriggering keeps rewinding the pitch.
	tail := len(withoutRepeat) * 3 / 4
	fPlain := measureFundamentalFreq(withoutRepeat[tail:], float32(p.SampleRate))
	fRepeat := measureFundamentalFreq(withRepeat[tail:], float32(p.SampleRate))
	if fRepeat < fPlain*5 {
		t.Errorf("retrigger tail at %.1f Hz, plain tail at %.1f Hz; expected a clear rewind", fRepeat, fPlain)
	}
}

func TestGeneratorOutputClamped(t *testing.T) {
	p := New()
	p.WaveShape = WaveSine
	p.BaseFreq = 0.3
	p.SustainTime = 0.2
	p.SustainPunch = 1.0
	p.MasterVolume = 1.0

	g, err := NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	out := g.RenderAll()

	railed := false
	for i, s := range out {
		if s < -1 || s > 1 {
			t.Fatalf("sample %d outside [-1,1]: %g", i, s)
		}
		if s == 1 || s == -1 {
			railed = true
		}
	}
	if !railed {
		t.Error("punched full-volume sine never reached the clamp rail")
	}
}

func TestGeneratorGenerateDrains(t *testing.T) {
	p := New()
	p.SustainTime = 0.1

	g, err := NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	buf := make([]float32, 8000)
	n := g.Generate(buf)
	if n != 4410 {
		t.Errorf("first fill: got %d samples, want 4410", n)
	}
	if m := g.Generate(buf); m != 0 {
		t.Errorf("drained generator still produced %d samples", m)
	}
	if _, ok := g.NextSample(); ok {
		t.Error("NextSample after drain reported more samples")
	}
	if !g.Finished() {
		t.Error("Finished false after drain")
	}
}

func TestGeneratorBitCrushQuantizes(t *testing.T) {
	p := New()
	p.WaveShape = WaveSine
	p.BaseFreq = 0.3
	p.SustainTime = 0.1
	p.SampleSize = 8

	g, err := NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	out := g.RenderAll()

	// 8 bit depth quantizes to steps of 1/128 before the master gain
	// of 0.25, so every sample is a multiple of 1/512.
	for i, s := range out {
		scaled := float64(s) * 512.0
		if math.Abs(scaled-math.Round(scaled)) > 1e-3 {
			t.Fatalf("sample %d not on the 8 bit grid: %g", i, s)
		}
	}
}

func TestGeneratorSampleHoldFlattens(t *testing.T) {
	p := New()
	p.WaveShape = WaveSine
	p.BaseFreq = 0.3
	p.SustainTime = 0.1
	p.SampleHold = 4

	g, err := NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	out := g.RenderAll()

	transitions := 0
	for i := 1; i < len(out); i++ {
		if out[i] != out[i-1] {
			transitions++
		}
	}
	if max := len(out)/4 + 1; transitions > max {
		t.Errorf("hold factor 4 left %d transitions, want at most %d", transitions, max)
	}
}

// TestGeneratorSurvivesRandomPatches renders a batch of random and
// mutated patches and checks for non-finite samples.
func TestGeneratorSurvivesRandomPatches(t *testing.T) {
	for seed := int64(0); seed < 40; seed++ {
		p := Randomize(seed)
		if seed%2 == 1 {
			p = Mutate(p, seed, 1.0)
		}
		g, err := NewGenerator(p)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for i, s := range g.RenderAll() {
			f := float64(s)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				t.Fatalf("seed %d: non-finite sample at %d: %g", seed, i, s)
			}
		}
	}
}

func TestTransposeOctaveDoublesPitch(t *testing.T) {
	p := New()
	p.WaveShape = WaveSine
	p.BaseFreq = 0.4
	p.SustainTime = 0.5

	base, err := NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	up, err := NewGenerator(Transpose(p, 12))
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	f0 := measureFundamentalFreq(base.RenderAll(), float32(p.SampleRate))
	f1 := measureFundamentalFreq(up.RenderAll(), float32(p.SampleRate))
	ratio := float64(f1 / f0)
	if math.Abs(ratio-2.0) > 0.06 {
		t.Errorf("octave transpose ratio %.4f, want close to 2", ratio)
	}

	down := Transpose(p, -12)
	if down.BaseFreq >= p.BaseFreq {
		t.Errorf("downward transpose did not lower base_freq: %g -> %g", p.BaseFreq, down.BaseFreq)
	}
}

// measureFundamentalFreq estimates the dominant frequency by counting
// zero crossings.
func measureFundamentalFreq(samples []float32, sampleRate float32) float32 {
	if len(samples) < 2 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] < 0 && samples[i] >= 0) || (samples[i-1] >= 0 && samples[i] < 0) {
			crossings++
		}
	}
	duration := float32(len(samples)) / sampleRate
	return float32(crossings) / 2.0 / duration
}

func windowRMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}
