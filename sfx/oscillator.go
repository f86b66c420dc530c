package sfx

import (
	"math"
	"math/rand"
)

// oscillator tracks the pitch state machine and produces raw waveform
// sub-samples. Pitch is expressed as a fractional period in
// sub-sample units; smaller periods mean higher frequencies.
type oscillator struct {
	shape WaveShape
	noise *rand.Rand

	phase  int
	period int

	fperiod    float64
	fmaxperiod float64
	fslide     float64
	fdslide    float64

	duty      float64
	dutySlide float64

	vibPhase float64
	vibSpeed float64
	vibAmp   float64

	changeTime  int
	changeLimit int
	changeMod   float64

	noiseTable [32]float64
}

// resetPitch derives the pitch state from the patch. It is used both
// at start and on retrigger, which rewinds pitch, duty, vibrato and
// the change countdown without touching phase, envelope or effects.
func (o *oscillator) resetPitch(p *Patch) {
	o.shape = p.WaveShape

	o.fperiod = 100.0 / (p.BaseFreq*p.BaseFreq + 0.001)
	o.fmaxperiod = 100.0 / (p.FreqLimit*p.FreqLimit + 0.001)
	o.period = int(o.fperiod)
	if o.period < 8 {
		o.period = 8
	}
	o.fslide = 1.0 - math.Pow(p.FreqSlide, 3)*0.01
	o.fdslide = -math.Pow(p.DeltaSlide, 3) * 0.000001

	o.duty = 0.5 - p.Duty*0.5
	o.dutySlide = -p.DutySweep * 0.00005

	o.vibPhase = 0
	o.vibSpeed = math.Pow(p.VibratoSpeed, 2) * 0.01
	o.vibAmp = p.VibratoDepth * 0.5

	if p.ChangeAmount >= 0 {
		o.changeMod = 1.0 - math.Pow(p.ChangeAmount, 2)*0.9
	} else {
		o.changeMod = 1.0 + math.Pow(p.ChangeAmount, 2)*10.0
	}
	o.changeTime = 0
	o.changeLimit = int(math.Pow(1.0-p.ChangeSpeed, 2)*20000.0 + 32.0)
	if p.ChangeSpeed == 1.0 {
		o.changeLimit = 0
	}
}

// advance steps the per-sample pitch state: the one-shot pitch change,
// the frequency slide, vibrato and the duty sweep. It reports whether
// the slide crossed the frequency floor while a limit is active.
func (o *oscillator) advance(limitActive bool) (hitLimit bool) {
	if o.changeLimit != 0 {
		o.changeTime++
		if o.changeTime >= o.changeLimit {
			o.changeLimit = 0
			o.fperiod *= o.changeMod
		}
	}

	o.fslide += o.fdslide
	o.fperiod *= o.fslide
	if o.fperiod > o.fmaxperiod {
		o.fperiod = o.fmaxperiod
		hitLimit = limitActive
	}

	rfperiod := o.fperiod
	if o.vibAmp > 0 {
		o.vibPhase += o.vibSpeed
		rfperiod = o.fperiod * (1.0 + math.Sin(o.vibPhase)*o.vibAmp)
	}
	o.period = int(rfperiod)
	if o.period < 8 {
		o.period = 8
	}

	o.duty += o.dutySlide
	o.duty = clampFloat(o.duty, 0.0, 0.5)

	return hitLimit
}

// next produces one waveform sub-sample and advances the phase.
func (o *oscillator) next() float64 {
	o.phase++
	if o.phase >= o.period {
		o.phase %= o.period
		if o.shape == WaveNoise {
			o.refreshNoise()
		}
	}

	fp := float64(o.phase) / float64(o.period)
	switch o.shape {
	case WaveSquare:
		if fp < o.duty {
			return 0.5
		}
		return -0.5
	case WaveSawtooth:
		return 1.0 - fp*2.0
	case WaveSine:
		return math.Sin(fp * 2.0 * math.Pi)
	case WaveNoise:
		return o.noiseTable[int(fp*32)]
	case WaveTriangle:
		return 2.0*math.Abs(2.0*fp-1.0) - 1.0
	}
	return 0
}

// refreshNoise refills the noise table. The table holds one period's
// worth of values so the pitch controls shape noise like any other
// waveform.
func (o *oscillator) refreshNoise() {
	for i := range o.noiseTable {
		o.noiseTable[i] = o.noise.Float64()*2.0 - 1.0
	}
}
