package sfx

import (
	"fmt"
	"math"
	"math/rand"
)

// Category identifies one of the classic effect recipes used by
// RandomizePreset.
type Category int

const (
	CategoryPickup Category = iota
	CategoryLaser
	CategoryExplosion
	CategoryPowerup
	CategoryHit
	CategoryJump
	CategoryBlip

	numCategories
)

var categoryNames = [...]string{
	CategoryPickup:    "pickup",
	CategoryLaser:     "laser",
	CategoryExplosion: "explosion",
	CategoryPowerup:   "powerup",
	CategoryHit:       "hit",
	CategoryJump:      "jump",
	CategoryBlip:      "blip",
}

func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory maps a category name to its Category value.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}

// Categories returns all preset categories in declaration order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Randomize returns a fully random patch. The same seed always yields
// the same patch. Draws are shaped so that extreme settings are rare:
// odd powers bias toward zero while keeping sign, even powers bias
// toward zero on one-sided fields.
func Randomize(seed int64) Patch {
	rng := rand.New(rand.NewSource(seed))
	p := New()

	p.WaveShape = randShape(rng, []WaveShape{WaveSquare, WaveSawtooth, WaveSine, WaveNoise, WaveTriangle})

	p.BaseFreq = math.Pow(randRange(rng, 0, 2)-1, 2)
	if randBool(rng, 1, 1) {
		p.BaseFreq = math.Pow(randRange(rng, 0, 2)-1, 3) + 0.5
	}
	p.FreqLimit = 0
	p.FreqSlide = math.Pow(randRange(rng, 0, 2)-1, 5)
	if p.BaseFreq > 0.7 && p.FreqSlide > 0.2 {
		p.FreqSlide = -p.FreqSlide
	}
	if p.BaseFreq < 0.2 && p.FreqSlide < -0.05 {
		p.FreqSlide = -p.FreqSlide
	}
	p.DeltaSlide = math.Pow(randRange(rng, 0, 2)-1, 3)

	p.Duty = randRange(rng, 0, 2) - 1
	p.DutySweep = math.Pow(randRange(rng, 0, 2)-1, 3)

	p.VibratoDepth = math.Pow(randRange(rng, 0, 2)-1, 3)
	p.VibratoSpeed = randRange(rng, 0, 2) - 1
	p.VibratoDelay = randRange(rng, 0, 2) - 1

	p.AttackTime = math.Pow(randRange(rng, 0, 2)-1, 3)
	p.SustainTime = math.Pow(randRange(rng, 0, 2)-1, 2)
	p.DecayTime = randRange(rng, 0, 2) - 1
	p.SustainPunch = math.Pow(randRange(rng, 0, 0.8), 2)
	// Guarantee an audible envelope before the negative draws clamp to zero.
	if p.AttackTime+p.SustainTime+p.DecayTime < 0.2 {
		p.SustainTime += 0.2 + randRange(rng, 0, 0.3)
		p.DecayTime += 0.2 + randRange(rng, 0, 0.3)
	}

	p.LowpassResonance = randRange(rng, 0, 2) - 1
	p.LowpassCutoff = 1 - math.Pow(rng.Float64(), 3)
	p.LowpassSweep = math.Pow(randRange(rng, 0, 2)-1, 3)
	if p.LowpassCutoff < 0.1 && p.LowpassSweep < -0.05 {
		p.LowpassSweep = -p.LowpassSweep
	}
	p.HighpassCutoff = math.Pow(rng.Float64(), 5)
	p.HighpassSweep = math.Pow(randRange(rng, 0, 2)-1, 5)

	p.PhaserOffset = math.Pow(randRange(rng, 0, 2)-1, 3)
	p.PhaserSweep = math.Pow(randRange(rng, 0, 2)-1, 3)

	p.RepeatSpeed = randRange(rng, 0, 2) - 1

	p.ChangeSpeed = randRange(rng, 0, 2) - 1
	p.ChangeAmount = randRange(rng, 0, 2) - 1

	p.Clamp()
	return p
}

// RandomizePreset returns a random patch shaped like one of the
// classic effect categories. The same category and seed always yield
// the same patch.
func RandomizePreset(c Category, seed int64) Patch {
	rng := rand.New(rand.NewSource(seed))
	p := NewDefault()

	switch c {
	case CategoryPickup:
		p.BaseFreq = randRange(rng, 0.4, 0.9)
		p.AttackTime = 0
		p.SustainTime = randRange(rng, 0.0, 0.1)
		p.DecayTime = randRange(rng, 0.1, 0.5)
		p.SustainPunch = randRange(rng, 0.3, 0.6)
		if randBool(rng, 1, 1) {
			p.ChangeSpeed = randRange(rng, 0.5, 0.7)
			p.ChangeAmount = randRange(rng, 0.2, 0.6)
		}

	case CategoryLaser:
		p.WaveShape = randShape(rng, []WaveShape{WaveSquare, WaveSquare, WaveSine, WaveSine, WaveSawtooth})
		if randBool(rng, 1, 2) {
			p.BaseFreq = randRange(rng, 0.3, 0.9)
			p.FreqLimit = randRange(rng, 0.0, 0.1)
			p.FreqSlide = randRange(rng, -0.35, -0.65)
		} else {
			p.BaseFreq = randRange(rng, 0.5, 1.0)
			p.FreqLimit = math.Max(p.BaseFreq-randRange(rng, 0.2, 0.8), 0.2)
			p.FreqSlide = randRange(rng, -0.15, -0.35)
		}
		if randBool(rng, 1, 1) {
			p.Duty = randRange(rng, 0.0, 0.5)
			p.DutySweep = randRange(rng, 0.0, 0.2)
		} else {
			p.Duty = randRange(rng, 0.4, 0.9)
			p.DutySweep = randRange(rng, 0.0, -0.7)
		}
		p.AttackTime = 0
		p.SustainTime = randRange(rng, 0.1, 0.3)
		p.DecayTime = randRange(rng, 0.0, 0.4)
		if randBool(rng, 1, 1) {
			p.SustainPunch = randRange(rng, 0.0, 0.3)
		}
		if randBool(rng, 1, 2) {
			p.PhaserOffset = randRange(rng, 0.0, 0.2)
			p.PhaserSweep = -randRange(rng, 0.0, 0.2)
		}
		if randBool(rng, 1, 1) {
			p.HighpassCutoff = randRange(rng, 0.0, 0.3)
		}

	case CategoryExplosion:
		p.WaveShape = WaveNoise
		if randBool(rng, 1, 1) {
			p.BaseFreq = randRange(rng, 0.1, 0.5)
			p.FreqSlide = randRange(rng, -0.1, 0.3)
		} else {
			p.BaseFreq = randRange(rng, 0.2, 0.9)
			p.FreqSlide = randRange(rng, -0.2, -0.4)
		}
		p.BaseFreq *= p.BaseFreq
		if randBool(rng, 1, 4) {
			p.FreqSlide = 0
		}
		if randBool(rng, 1, 2) {
			p.RepeatSpeed = randRange(rng, 0.3, 0.8)
		}
		p.AttackTime = 0
		p.SustainTime = randRange(rng, 0.1, 0.4)
		p.DecayTime = randRange(rng, 0.0, 0.5)
		if randBool(rng, 1, 1) {
			p.PhaserOffset = randRange(rng, -0.3, 0.6)
			p.PhaserSweep = randRange(rng, -0.3, 0.0)
		}
		p.SustainPunch = randRange(rng, 0.2, 0.8)
		if randBool(rng, 1, 1) {
			p.VibratoDepth = randRange(rng, 0.0, 0.7)
			p.VibratoSpeed = randRange(rng, 0.0, 0.6)
		}
		if randBool(rng, 1, 2) {
			p.ChangeSpeed = randRange(rng, 0.6, 0.9)
			p.ChangeAmount = randRange(rng, -0.8, 0.8)
		}

	case CategoryPowerup:
		if randBool(rng, 1, 1) {
			p.WaveShape = WaveSine
		} else {
			p.Duty = randRange(rng, 0.0, 0.6)
		}
		p.BaseFreq = randRange(rng, 0.2, 0.5)
		if randBool(rng, 1, 1) {
			p.FreqSlide = randRange(rng, 0.1, 0.5)
			p.RepeatSpeed = randRange(rng, 0.4, 0.8)
		} else {
			p.FreqSlide = randRange(rng, 0.05, 0.25)
			if randBool(rng, 1, 1) {
				p.VibratoDepth = randRange(rng, 0.0, 0.7)
				p.VibratoSpeed = randRange(rng, 0.0, 0.6)
			}
		}
		p.AttackTime = 0
		p.SustainTime = randRange(rng, 0.0, 0.4)
		p.DecayTime = randRange(rng, 0.1, 0.5)

	case CategoryHit:
		p.WaveShape = randShape(rng, []WaveShape{WaveSquare, WaveSine, WaveNoise})
		if p.WaveShape == WaveSquare {
			p.Duty = randRange(rng, 0.0, 0.6)
		}
		p.BaseFreq = randRange(rng, 0.2, 0.8)
		p.FreqSlide = randRange(rng, -0.3, -0.7)
		p.AttackTime = 0
		p.SustainTime = randRange(rng, 0.0, 0.1)
		p.DecayTime = randRange(rng, 0.1, 0.3)
		if randBool(rng, 1, 1) {
			p.HighpassCutoff = randRange(rng, 0.0, 0.3)
		}

	case CategoryJump:
		p.WaveShape = WaveSquare
		p.Duty = randRange(rng, 0.0, 0.6)
		p.BaseFreq = randRange(rng, 0.3, 0.6)
		p.FreqSlide = randRange(rng, 0.1, 0.3)
		p.AttackTime = 0
		p.SustainTime = randRange(rng, 0.1, 0.4)
		p.DecayTime = randRange(rng, 0.1, 0.3)
		if randBool(rng, 1, 1) {
			p.HighpassCutoff = randRange(rng, 0.0, 0.3)
		}
		if randBool(rng, 1, 1) {
			p.LowpassCutoff = randRange(rng, 0.4, 1.0)
		}

	case CategoryBlip:
		p.WaveShape = randShape(rng, []WaveShape{WaveSquare, WaveSine})
		if p.WaveShape == WaveSquare {
			p.Duty = randRange(rng, 0.0, 0.6)
		}
		p.BaseFreq = randRange(rng, 0.2, 0.6)
		p.AttackTime = 0
		p.SustainTime = randRange(rng, 0.1, 0.2)
		p.DecayTime = randRange(rng, 0.0, 0.2)
		p.HighpassCutoff = 0.1
	}

	p.Clamp()
	return p
}

// Mutate returns a copy of p with every mutable numeric field nudged
// by a random offset of up to amount times half the field's range.
// WaveShape and the integer output settings are never touched, so a
// mutated patch always keeps the original's basic character. The same
// patch, seed and amount always yield the same result.
func Mutate(p Patch, seed int64, amount float64) Patch {
	amount = clampFloat(amount, 0, 1)
	rng := rand.New(rand.NewSource(seed))
	out := p
	for _, f := range numericFields {
		if f.noMutate {
			continue
		}
		delta := randRange(rng, -1, 1) * amount * (f.max - f.min) * 0.5
		f.set(&out, clampFloat(f.get(&out)+delta, f.min, f.max))
	}
	return out
}

// randRange draws uniformly from [from,until). The bounds may be
// given in either order.
func randRange(rng *rand.Rand, from, until float64) float64 {
	return from + (until-from)*rng.Float64()
}

// randBool returns true with probability chanceTrue out of
// chanceTrue+chanceFalse.
func randBool(rng *rand.Rand, chanceTrue, chanceFalse uint32) bool {
	return rng.Uint32()%(chanceTrue+chanceFalse) < chanceTrue
}

func randShape(rng *rand.Rand, shapes []WaveShape) WaveShape {
	return shapes[int(rng.Uint32())%len(shapes)]
}
