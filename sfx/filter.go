package sfx

import (
	"math"

	"github.com/cwbudde/algo-sfx/dsp"
)

// filterPair chains the swept one-pole lowpass and highpass sections.
// Both stay fully bypassed while the patch keeps them at their
// neutral positions (lowpass cutoff 1, highpass cutoff 0), so a
// neutral patch passes the oscillator signal through bit-exact.
type filterPair struct {
	enabled bool
	lpOn    bool

	pos   float64
	delta float64
	w     float64
	wd    float64
	damp  float64

	hpPos float64
	hp    float64
	hpd   float64
}

func (f *filterPair) reset(p *Patch) {
	f.enabled = p.LowpassCutoff != 1.0 || p.HighpassCutoff != 0.0
	f.lpOn = p.LowpassCutoff != 1.0

	f.pos = 0
	f.delta = 0
	f.w = math.Pow(p.LowpassCutoff, 3) * 0.1
	f.wd = 1.0 + p.LowpassSweep*0.0001
	f.damp = 5.0 / (1.0 + math.Pow(p.LowpassResonance, 2)*20.0) * (0.01 + f.w)
	if f.damp > 0.8 {
		f.damp = 0.8
	}

	f.hpPos = 0
	f.hp = math.Pow(p.HighpassCutoff, 2) * 0.1
	f.hpd = 1.0 + p.HighpassSweep*0.0003
}

// sweepHighpass moves the highpass cutoff once per output sample. The
// lowpass cutoff sweeps per sub-sample inside process instead.
func (f *filterPair) sweepHighpass() {
	if !f.enabled || f.hpd == 1.0 {
		return
	}
	f.hp *= f.hpd
	f.hp = clampFloat(f.hp, 0.00001, 0.1)
}

// process runs one sub-sample through both sections.
func (f *filterPair) process(sample float64) float64 {
	if !f.enabled {
		return sample
	}

	prevPos := f.pos
	f.w *= f.wd
	f.w = clampFloat(f.w, 0.0, 0.1)
	if f.lpOn {
		f.delta += (sample - f.pos) * f.w
		f.delta -= f.delta * f.damp
	} else {
		f.pos = sample
		f.delta = 0
	}
	f.pos += f.delta
	f.pos = dsp.FlushDenormals(f.pos)

	f.hpPos += f.pos - prevPos
	f.hpPos -= f.hpPos * f.hp
	f.hpPos = dsp.FlushDenormals(f.hpPos)
	return f.hpPos
}
