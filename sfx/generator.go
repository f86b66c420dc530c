package sfx

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-dsp/dsp/effects"
)

// noiseSeed fixes the noise waveform's random source so that the same
// patch always renders the same samples.
const noiseSeed = 0

// Generator renders a patch into samples. It is a pull-based source:
// call NextSample until it reports done, or drain it with Generate or
// RenderAll. A Generator is not safe for concurrent use.
type Generator struct {
	patch Patch

	osc     oscillator
	env     envelope
	filt    filterPair
	ph      *phaser
	crusher *effects.BitCrusher

	volume   float64
	repTime  int
	repLimit int
	finished bool
}

// NewGenerator snapshots the patch (after clamping) and prepares it
// for rendering. Later changes to p do not affect the generator.
func NewGenerator(p Patch) (*Generator, error) {
	p.Clamp()
	if p.SampleRate <= 0 {
		return nil, fmt.Errorf("sample_rate must be positive: %d", p.SampleRate)
	}

	g := &Generator{patch: p, ph: newPhaser()}
	if p.SampleSize < 16 || p.SampleHold > 1 {
		crusher, err := effects.NewBitCrusher(float64(p.SampleRate),
			effects.WithBitCrusherBitDepth(float64(p.SampleSize)),
			effects.WithBitCrusherDownsample(p.SampleHold))
		if err != nil {
			return nil, fmt.Errorf("bit crusher: %w", err)
		}
		g.crusher = crusher
	}
	g.start()
	return g, nil
}

// start rewinds every stage to the beginning of the sound.
func (g *Generator) start() {
	p := &g.patch

	g.osc.resetPitch(p)
	g.osc.phase = 0
	g.osc.noise = rand.New(rand.NewSource(noiseSeed))
	g.osc.refreshNoise()

	g.env.reset(p)
	g.filt.reset(p)
	g.ph.reset(p)
	if g.crusher != nil {
		g.crusher.Reset()
	}

	g.volume = p.MasterVolume * p.MasterVolume
	g.repTime = 0
	rs := 1.0 - p.RepeatSpeed
	g.repLimit = int(rs * rs * 20000.0 * 32.0)
	if p.RepeatSpeed == 0 {
		g.repLimit = 0
	}
	g.finished = false
}

// Reset rewinds the generator so the sound plays again from the
// start. Rendering after Reset yields the same samples as the first
// pass.
func (g *Generator) Reset() {
	g.start()
}

// Patch returns the clamped snapshot the generator renders.
func (g *Generator) Patch() Patch {
	return g.patch
}

// SampleRate returns the output rate in Hz.
func (g *Generator) SampleRate() int {
	return g.patch.SampleRate
}

// Finished reports whether the sound has ended. NextSample returns no
// further samples once this is true.
func (g *Generator) Finished() bool {
	return g.finished
}

// NextSample produces the next output sample. The second result is
// false when the sound has ended, either because the envelope ran out
// or because the frequency slide crossed an active limit.
func (g *Generator) NextSample() (float32, bool) {
	if g.finished {
		return 0, false
	}

	// Retrigger rewinds pitch state only; envelope and effects keep
	// running so the sound stutters without restarting.
	g.repTime++
	if g.repLimit != 0 && g.repTime >= g.repLimit {
		g.repTime = 0
		g.osc.resetPitch(&g.patch)
	}

	if g.osc.advance(g.patch.FreqLimit > 0) {
		// Emit this last sample, then stop.
		g.finished = true
	}

	vol, ok := g.env.tick()
	if !ok {
		g.finished = true
		return 0, false
	}

	g.ph.advance()
	g.filt.sweepHighpass()

	// Supersampling: eight sub-samples per output sample, averaged.
	var sum float64
	for i := 0; i < 8; i++ {
		sub := g.osc.next()
		sub = g.filt.process(sub)
		sub = g.ph.process(sub)
		sum += sub
	}

	out := sum * 0.125 * vol
	if g.crusher != nil {
		out = g.crusher.ProcessSample(out)
	}
	out *= g.volume
	out = clampFloat(out, -1.0, 1.0)
	return float32(out), true
}

// Generate fills buf with up to len(buf) samples and returns how many
// were produced. It returns less than len(buf) only when the sound
// ended.
func (g *Generator) Generate(buf []float32) int {
	n := 0
	for n < len(buf) {
		s, ok := g.NextSample()
		if !ok {
			break
		}
		buf[n] = s
		n++
	}
	return n
}

// RenderAll drains the generator into a freshly allocated buffer
// holding the remainder of the sound.
func (g *Generator) RenderAll() []float32 {
	out := make([]float32, 0, g.env.totalTicks())
	for {
		s, ok := g.NextSample()
		if !ok {
			return out
		}
		out = append(out, s)
	}
}
