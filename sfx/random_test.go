package sfx

import (
	"testing"
)

func TestRandomizeDeterministic(t *testing.T) {
	a := Randomize(42)
	b := Randomize(42)
	if a != b {
		t.Errorf("same seed produced different patches:\n%+v\n%+v", a, b)
	}

	c := Randomize(43)
	if a == c {
		t.Error("different seeds produced identical patches")
	}
}

func TestRandomizeStaysInRange(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		p := Randomize(seed)
		if err := p.Validate(); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if p.AttackTime == 0 && p.SustainTime == 0 && p.DecayTime == 0 {
			t.Fatalf("seed %d: degenerate envelope", seed)
		}
	}
}

func TestRandomizePresetDeterministic(t *testing.T) {
	for _, c := range Categories() {
		a := RandomizePreset(c, 7)
		b := RandomizePreset(c, 7)
		if a != b {
			t.Errorf("%v: same seed produced different patches", c)
		}
	}
}

func TestRandomizePresetStaysInRange(t *testing.T) {
	for _, c := range Categories() {
		for seed := int64(0); seed < 100; seed++ {
			p := RandomizePreset(c, seed)
			if err := p.Validate(); err != nil {
				t.Fatalf("%v seed %d: %v", c, seed, err)
			}
		}
	}
}

// TestPresetCategoryCharacter checks the properties that give each
// category its recognizable sound.
func TestPresetCategoryCharacter(t *testing.T) {
	const seeds = 50

	tests := []struct {
		category Category
		check    func(Patch) bool
		desc     string
	}{
		{CategoryPickup, func(p Patch) bool { return p.SustainPunch >= 0.3 && p.AttackTime == 0 },
			"instant attack with punch"},
		{CategoryLaser, func(p Patch) bool { return p.FreqSlide < 0 },
			"downward pitch slide"},
		{CategoryExplosion, func(p Patch) bool { return p.WaveShape == WaveNoise },
			"noise waveform"},
		{CategoryPowerup, func(p Patch) bool { return p.FreqSlide > 0 },
			"upward pitch slide"},
		{CategoryHit, func(p Patch) bool { return p.FreqSlide < 0 && p.DecayTime >= 0.1 },
			"falling pitch with decay tail"},
		{CategoryJump, func(p Patch) bool { return p.WaveShape == WaveSquare && p.FreqSlide > 0 },
			"square wave sliding up"},
		{CategoryBlip, func(p Patch) bool {
			return p.HighpassCutoff == 0.1 && (p.WaveShape == WaveSquare || p.WaveShape == WaveSine)
		}, "thin short square or sine"},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			for seed := int64(0); seed < seeds; seed++ {
				p := RandomizePreset(tt.category, seed)
				if !tt.check(p) {
					t.Fatalf("seed %d: missing %s: %+v", seed, tt.desc, p)
				}
			}
		})
	}
}

func TestMutateDeterministicAndBounded(t *testing.T) {
	base := RandomizePreset(CategoryLaser, 11)

	a := Mutate(base, 99, 0.1)
	b := Mutate(base, 99, 0.1)
	if a != b {
		t.Error("same seed produced different mutations")
	}

	if a.WaveShape != base.WaveShape {
		t.Errorf("mutation changed wave shape: %v -> %v", base.WaveShape, a.WaveShape)
	}
	if a.FreqLimit != base.FreqLimit {
		t.Errorf("mutation changed freq_limit: %g -> %g", base.FreqLimit, a.FreqLimit)
	}
	if a.MasterVolume != base.MasterVolume {
		t.Errorf("mutation changed master_volume: %g -> %g", base.MasterVolume, a.MasterVolume)
	}
	if a.SampleRate != base.SampleRate || a.SampleSize != base.SampleSize || a.SampleHold != base.SampleHold {
		t.Error("mutation changed output settings")
	}
	if err := a.Validate(); err != nil {
		t.Errorf("mutated patch out of range: %v", err)
	}

	if a == base {
		t.Error("mutation with nonzero amount left the patch unchanged")
	}
}

func TestMutateAmountZeroIsIdentity(t *testing.T) {
	base := Randomize(5)
	if got := Mutate(base, 123, 0); got != base {
		t.Errorf("amount 0 changed the patch:\n%+v\n%+v", base, got)
	}
}

func TestMutateChainStaysInRange(t *testing.T) {
	p := RandomizePreset(CategoryExplosion, 3)
	for i := int64(0); i < 50; i++ {
		p = Mutate(p, i, 1.0)
		if err := p.Validate(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func TestCategoryNames(t *testing.T) {
	for _, c := range Categories() {
		parsed, err := ParseCategory(c.String())
		if err != nil {
			t.Fatalf("ParseCategory(%q): %v", c.String(), err)
		}
		if parsed != c {
			t.Errorf("round trip: got %v, want %v", parsed, c)
		}
	}
	if _, err := ParseCategory("kaboom"); err == nil {
		t.Error("expected error for unknown category name")
	}
}
