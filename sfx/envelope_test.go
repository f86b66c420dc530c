package sfx

import "testing"

func TestEnvelopeStageLengths(t *testing.T) {
	tests := []struct {
		attack, sustain, decay float64
		rate                   int
		want                   int
	}{
		{0, 0.2, 0, 44100, 8820},
		{0.1, 0, 0, 44100, 4410},
		{0, 0, 0.5, 22050, 11025},
		{0.1, 0.05, 0.025, 8000, 800 + 400 + 200},
		{0.0001, 0, 0, 44100, 4},
		{0, 0, 0, 44100, 0},
	}

	for _, tt := range tests {
		p := New()
		p.AttackTime = tt.attack
		p.SustainTime = tt.sustain
		p.DecayTime = tt.decay
		p.SampleRate = tt.rate

		var e envelope
		e.reset(&p)
		if got := e.totalTicks(); got != tt.want {
			t.Errorf("a=%g s=%g d=%g @%d: total %d, want %d",
				tt.attack, tt.sustain, tt.decay, tt.rate, got, tt.want)
		}

		n := 0
		for {
			if _, ok := e.tick(); !ok {
				break
			}
			n++
		}
		if n != tt.want {
			t.Errorf("a=%g s=%g d=%g @%d: emitted %d ticks, want %d",
				tt.attack, tt.sustain, tt.decay, tt.rate, n, tt.want)
		}
	}
}

func TestEnvelopeAttackRampsUp(t *testing.T) {
	p := New()
	p.AttackTime = 0.01
	var e envelope
	e.reset(&p)

	prev := -1.0
	for i := 0; i < e.totalTicks(); i++ {
		vol, ok := e.tick()
		if !ok {
			t.Fatalf("envelope ended early at tick %d", i)
		}
		if vol < prev {
			t.Fatalf("attack not monotonic at tick %d: %g < %g", i, vol, prev)
		}
		prev = vol
	}
	if prev < 0.99 {
		t.Errorf("attack peaked at %g, want close to 1", prev)
	}
}

func TestEnvelopeSustainPunch(t *testing.T) {
	p := New()
	p.SustainTime = 0.1
	p.SustainPunch = 0.8
	var e envelope
	e.reset(&p)

	first, ok := e.tick()
	if !ok {
		t.Fatal("envelope empty")
	}
	if want := 1.0 + 2.0*0.8; first != want {
		t.Errorf("punch onset: got %g, want %g", first, want)
	}

	prev := first
	last := first
	for {
		vol, ok := e.tick()
		if !ok {
			break
		}
		if vol > prev {
			t.Fatalf("punch did not decay monotonically: %g > %g", vol, prev)
		}
		prev = vol
		last = vol
	}
	if last > 1.01 {
		t.Errorf("punch tail ended at %g, want close to 1", last)
	}
}

func TestEnvelopeSkipsZeroStages(t *testing.T) {
	p := New()
	p.DecayTime = 0.25

	var e envelope
	e.reset(&p)

	// With attack and sustain empty the first tick is already decay,
	// starting from full volume.
	vol, ok := e.tick()
	if !ok {
		t.Fatal("envelope empty")
	}
	if vol != 1.0 {
		t.Errorf("decay onset: got %g, want 1", vol)
	}
}
