package sfx

import (
	"math"

	"github.com/cwbudde/algo-sfx/dsp"
)

const phaserBufferSize = 1024

// phaser mixes the signal with a delayed copy of itself. The delay
// offset sweeps over time, producing the classic comb-filter whoosh.
// At neutral settings (offset and sweep both zero) the stage is fully
// bypassed rather than adding a zero-delay copy, which would double
// the amplitude.
type phaser struct {
	enabled bool
	line    *dsp.DelayLine
	fphase  float64
	fdphase float64
	offset  int
}

func newPhaser() *phaser {
	return &phaser{line: dsp.NewDelayLine(phaserBufferSize)}
}

func (ph *phaser) reset(p *Patch) {
	ph.enabled = p.PhaserOffset != 0 || p.PhaserSweep != 0
	ph.line.Reset()

	ph.fphase = math.Pow(p.PhaserOffset, 2) * 1020.0
	if p.PhaserOffset < 0 {
		ph.fphase = -ph.fphase
	}
	ph.fdphase = math.Pow(p.PhaserSweep, 2)
	if p.PhaserSweep < 0 {
		ph.fdphase = -ph.fdphase
	}
	ph.offset = ph.clampOffset()
}

// advance sweeps the read offset once per output sample.
func (ph *phaser) advance() {
	if !ph.enabled {
		return
	}
	ph.fphase += ph.fdphase
	ph.offset = ph.clampOffset()
}

func (ph *phaser) clampOffset() int {
	off := int(math.Abs(ph.fphase))
	if off > phaserBufferSize-1 {
		off = phaserBufferSize - 1
	}
	return off
}

// process writes the current sub-sample into the delay line and adds
// back the sample from offset positions ago. Read(offset+1) reaches
// the sample just written when the offset is zero.
func (ph *phaser) process(sample float64) float64 {
	if !ph.enabled {
		return sample
	}
	ph.line.Write(sample)
	return sample + ph.line.Read(ph.offset+1)
}
