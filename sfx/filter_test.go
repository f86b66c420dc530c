package sfx

import (
	"math"
	"testing"
)

func TestFilterNeutralIsBypassed(t *testing.T) {
	p := New() // lowpass open, highpass off

	var f filterPair
	f.reset(&p)
	if f.enabled {
		t.Fatal("neutral filter should be disabled")
	}
	for i := 0; i < 100; i++ {
		in := math.Sin(float64(i) * 0.3)
		if out := f.process(in); out != in {
			t.Fatalf("bypass altered sample %d: %g -> %g", i, in, out)
		}
	}
}

func TestLowpassAttenuatesAlternation(t *testing.T) {
	p := New()
	p.LowpassCutoff = 0.2

	var f filterPair
	f.reset(&p)
	if !f.enabled || !f.lpOn {
		t.Fatal("lowpass should be active")
	}

	// Fastest possible alternation; a lowpass must squash it.
	var inPow, outPow float64
	sign := 1.0
	for i := 0; i < 4000; i++ {
		out := f.process(sign)
		inPow += 1
		outPow += out * out
		sign = -sign
	}
	if outPow > inPow*0.25 {
		t.Errorf("alternating input passed nearly unattenuated: out/in power %g", outPow/inPow)
	}
}

func TestLowpassPassesConstant(t *testing.T) {
	p := New()
	p.LowpassCutoff = 0.5

	var f filterPair
	f.reset(&p)

	var out float64
	for i := 0; i < 100000; i++ {
		out = f.process(1.0)
	}
	if math.Abs(out-1.0) > 0.05 {
		t.Errorf("constant input settled at %g, want close to 1", out)
	}
}

func TestHighpassRemovesConstant(t *testing.T) {
	p := New()
	p.HighpassCutoff = 0.3

	var f filterPair
	f.reset(&p)
	if !f.enabled {
		t.Fatal("highpass should enable the filter stage")
	}
	if f.lpOn {
		t.Fatal("lowpass should stay open")
	}

	var out float64
	for i := 0; i < 20000; i++ {
		out = f.process(1.0)
	}
	if math.Abs(out) > 0.01 {
		t.Errorf("constant input leaked through highpass: %g", out)
	}
}

func TestLowpassSweepMovesCutoff(t *testing.T) {
	p := New()
	p.LowpassCutoff = 0.3
	p.LowpassSweep = 1.0

	var f filterPair
	f.reset(&p)
	start := f.w
	for i := 0; i < 10000; i++ {
		f.process(0)
	}
	if f.w <= start {
		t.Errorf("upward sweep did not raise the cutoff: %g -> %g", start, f.w)
	}
	if f.w > 0.1 {
		t.Errorf("cutoff escaped its cap: %g", f.w)
	}
}

func TestHighpassSweepClamps(t *testing.T) {
	p := New()
	p.HighpassCutoff = 0.9
	p.HighpassSweep = 1.0

	var f filterPair
	f.reset(&p)
	for i := 0; i < 100000; i++ {
		f.sweepHighpass()
	}
	if f.hp != 0.1 {
		t.Errorf("highpass sweep should saturate at 0.1, got %g", f.hp)
	}
}

func TestPhaserNeutralIsBypassed(t *testing.T) {
	p := New()
	ph := newPhaser()
	ph.reset(&p)
	if ph.enabled {
		t.Fatal("neutral phaser should be disabled")
	}
	for i := 0; i < 100; i++ {
		in := float64(i) * 0.01
		if out := ph.process(in); out != in {
			t.Fatalf("bypass altered sample %d: %g -> %g", i, in, out)
		}
	}
}

func TestPhaserAddsDelayedCopy(t *testing.T) {
	p := New()
	p.PhaserOffset = 0.1 // 0.1^2 * 1020 = 10.2, so a 10 step delay

	ph := newPhaser()
	ph.reset(&p)
	if !ph.enabled {
		t.Fatal("phaser should be active")
	}
	if ph.offset != 10 {
		t.Fatalf("offset: got %d, want 10", ph.offset)
	}

	// An impulse must echo exactly offset steps later.
	out0 := ph.process(1.0)
	if out0 != 1.0 {
		t.Errorf("impulse passthrough: got %g, want 1", out0)
	}
	for i := 1; i < 30; i++ {
		out := ph.process(0.0)
		switch {
		case i == 10 && out != 1.0:
			t.Errorf("echo at step %d: got %g, want 1", i, out)
		case i != 10 && out != 0.0:
			t.Errorf("unexpected output at step %d: %g", i, out)
		}
	}
}

func TestPhaserNegativeOffsetMirrors(t *testing.T) {
	pos := New()
	pos.PhaserOffset = 0.25
	neg := New()
	neg.PhaserOffset = -0.25

	a := newPhaser()
	a.reset(&pos)
	b := newPhaser()
	b.reset(&neg)

	// The read offset is the magnitude either way; the sign only
	// matters once the sweep moves the phase through zero.
	if a.offset != b.offset {
		t.Errorf("offsets differ: %d vs %d", a.offset, b.offset)
	}
	if a.fphase != -b.fphase {
		t.Errorf("phases should mirror: %g vs %g", a.fphase, b.fphase)
	}
}
