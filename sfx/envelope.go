package sfx

import "math"

type envelopeStage int

const (
	stageAttack envelopeStage = iota
	stageSustain
	stageDecay
	stageEnd
)

// envelope is the attack/sustain/decay amplitude state machine. Each
// stage emits exactly round(time*rate) samples, so the total length
// of a sound without retrigger kill is the sum of the three stages.
type envelope struct {
	stage   envelopeStage
	left    int
	lengths [3]int
	punch   float64
}

func (e *envelope) reset(p *Patch) {
	rate := float64(p.SampleRate)
	e.lengths[stageAttack] = int(math.Round(p.AttackTime * rate))
	e.lengths[stageSustain] = int(math.Round(p.SustainTime * rate))
	e.lengths[stageDecay] = int(math.Round(p.DecayTime * rate))
	e.punch = p.SustainPunch
	e.stage = stageAttack
	e.left = e.lengths[stageAttack]
	e.skipEmpty()
}

// skipEmpty jumps over zero-length stages so they emit nothing and
// never divide by zero.
func (e *envelope) skipEmpty() {
	for e.stage < stageEnd && e.left == 0 {
		e.stage++
		if e.stage < stageEnd {
			e.left = e.lengths[e.stage]
		}
	}
}

// tick returns the amplitude for the current sample and advances one
// step. The second result is false once all stages are exhausted.
func (e *envelope) tick() (float64, bool) {
	if e.stage == stageEnd {
		return 0, false
	}

	// dt runs from 1 down to 1/length across the stage.
	dt := float64(e.left) / float64(e.lengths[e.stage])
	var vol float64
	switch e.stage {
	case stageAttack:
		vol = 1.0 - dt
	case stageSustain:
		vol = 1.0 + dt*2.0*e.punch
	case stageDecay:
		vol = dt
	}

	e.left--
	if e.left <= 0 {
		e.stage++
		if e.stage < stageEnd {
			e.left = e.lengths[e.stage]
			e.skipEmpty()
		}
	}
	return vol, true
}

// totalTicks is the number of samples the envelope will emit.
func (e *envelope) totalTicks() int {
	return e.lengths[stageAttack] + e.lengths[stageSustain] + e.lengths[stageDecay]
}
