package sfx

import (
	"math"

	"github.com/cwbudde/algo-approx"
)

func pow2Approx(x float32) float32 {
	const ln2 = 0.69314718055994530942
	return approx.FastExp(x * ln2)
}

// Transpose returns a copy of p with the base frequency shifted by
// the given number of semitones. The oscillator's output frequency is
// proportional to BaseFreq squared plus a small offset, so the ratio
// is applied in that domain and mapped back through the square root.
// The result saturates at the ends of the control range.
func Transpose(p Patch, semitones float64) Patch {
	ratio := float64(pow2Approx(float32(semitones) / 12.0))
	f := (p.BaseFreq*p.BaseFreq+0.001)*ratio - 0.001
	if f < 0 {
		f = 0
	}
	p.BaseFreq = clampFloat(math.Sqrt(f), 0, 1)
	return p
}
