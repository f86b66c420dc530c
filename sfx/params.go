package sfx

import "fmt"

// Patch holds every synthesis parameter for one sound effect. The
// float fields are normalized control values, not physical units; the
// mapping to oscillator periods, envelope lengths and filter
// coefficients happens when a Generator is started.
//
// The zero value is not a usable patch. Use New or NewDefault.
type Patch struct {
	WaveShape WaveShape

	// Frequency
	BaseFreq   float64 // [0,1] period control, higher is higher pitch
	FreqLimit  float64 // [0,1] slide floor, >0 stops the sound when crossed
	FreqSlide  float64 // [-1,1] per-sample pitch slide
	DeltaSlide float64 // [-1,1] slide acceleration

	// Vibrato
	VibratoDepth float64 // [0,1]
	VibratoSpeed float64 // [0,1]
	VibratoDelay float64 // [0,1] kept for preset compatibility, unused

	// Pitch change (arpeggio-style one-shot jump)
	ChangeAmount float64 // [-1,1] jump size, negative jumps down
	ChangeSpeed  float64 // [0,1] countdown before the jump

	// Square duty
	Duty      float64 // [0,1]
	DutySweep float64 // [-1,1]

	// Retrigger
	RepeatSpeed float64 // [0,1] 0 disables

	// Envelope
	AttackTime   float64 // [0,1] seconds
	SustainTime  float64 // [0,1] seconds
	SustainPunch float64 // [0,1] extra sustain gain, decays to 1
	DecayTime    float64 // [0,1] seconds

	// Filters
	LowpassResonance float64 // [0,1]
	LowpassCutoff    float64 // [0,1] 1 leaves the filter open
	LowpassSweep     float64 // [-1,1]
	HighpassCutoff   float64 // [0,1]
	HighpassSweep    float64 // [-1,1]

	// Phaser
	PhaserOffset float64 // [-1,1]
	PhaserSweep  float64 // [-1,1]

	// Output
	SampleRate   int     // Hz, must be positive
	SampleSize   int     // [1,16] crush bit depth, 16 is transparent
	SampleHold   int     // [1,256] crush hold in samples, 1 is transparent
	MasterVolume float64 // [0,1] applied squared
}

// New returns a neutral patch: square wave, all controls at zero and
// the lowpass fully open. Rendering it yields no samples because the
// envelope has zero length.
func New() Patch {
	return Patch{
		WaveShape:     WaveSquare,
		LowpassCutoff: 1.0,
		SampleRate:    44100,
		SampleSize:    16,
		SampleHold:    1,
		MasterVolume:  0.5,
	}
}

// NewDefault returns the patch the category presets start from: a
// short audible square blip around the middle of the pitch range.
func NewDefault() Patch {
	p := New()
	p.BaseFreq = 0.3
	p.AttackTime = 0.4
	p.SustainTime = 0.1
	p.DecayTime = 0.5
	return p
}

type fieldDef struct {
	name     string
	min, max float64
	noMutate bool
	get      func(*Patch) float64
	set      func(*Patch, float64)
}

// numericFields lists the normalized float controls in a stable order.
// WaveShape and the integer output settings are handled separately.
// FreqLimit and MasterVolume are excluded from mutation: nudging the
// slide floor tends to cut sounds short and volume is a mix decision,
// not part of the sound's character.
var numericFields = []fieldDef{
	{name: "base_freq", min: 0, max: 1,
		get: func(p *Patch) float64 { return p.BaseFreq },
		set: func(p *Patch, v float64) { p.BaseFreq = v }},
	{name: "freq_limit", min: 0, max: 1, noMutate: true,
		get: func(p *Patch) float64 { return p.FreqLimit },
		set: func(p *Patch, v float64) { p.FreqLimit = v }},
	{name: "freq_slide", min: -1, max: 1,
		get: func(p *Patch) float64 { return p.FreqSlide },
		set: func(p *Patch, v float64) { p.FreqSlide = v }},
	{name: "delta_slide", min: -1, max: 1,
		get: func(p *Patch) float64 { return p.DeltaSlide },
		set: func(p *Patch, v float64) { p.DeltaSlide = v }},
	{name: "vibrato_depth", min: 0, max: 1,
		get: func(p *Patch) float64 { return p.VibratoDepth },
		set: func(p *Patch, v float64) { p.VibratoDepth = v }},
	{name: "vibrato_speed", min: 0, max: 1,
		get: func(p *Patch) float64 { return p.VibratoSpeed },
		set: func(p *Patch, v float64) { p.VibratoSpeed = v }},
	{name: "vibrato_delay", min: 0, max: 1,
		get: func(p *Patch) float64 { return p.VibratoDelay },
		set: func(p *Patch, v float64) { p.VibratoDelay = v }},
	{name: "change_amount", min: -1, max: 1,
		get: func(p *Patch) float64 { return p.ChangeAmount },
		set: func(p *Patch, v float64) { p.ChangeAmount = v }},
	{name: "change_speed", min: 0, max: 1,
		get: func(p *Patch) float64 { return p.ChangeSpeed },
		set: func(p *Patch, v float64) { p.ChangeSpeed = v }},
	{name: "duty", min: 0, max: 1,
		get: func(p *Patch) float64 { return p.Duty },
		set: func(p *Patch, v float64) { p.Duty = v }},
	{name: "duty_sweep", min: -1, max: 1,
		get: func(p *Patch) float64 { return p.DutySweep },
		set: func(p *Patch, v float64) { p.DutySweep = v }},
	{name: "repeat_speed", min: 0, max: 1,
		get: func(p *Patch) float64 { return p.RepeatSpeed },
		set: func(p *Patch, v float64) { p.RepeatSpeed = v }},
	{name: "attack_time", min: 0, max: 1,
		get: func(p *Patch) float64 { return p.AttackTime },
		set: func(p *Patch, v float64) { p.AttackTime = v }},
	{name: "sustain_time", min: 0, max: 1,
		get: func(p *Patch) float64 { return p.SustainTime },
		set: func(p *Patch, v float64) { p.SustainTime = v }},
	{name: "sustain_punch", min: 0, max: 1,
		get: func(p *Patch) float64 { return p.SustainPunch },
		set: func(p *Patch, v float64) { p.SustainPunch = v }},
	{name: "decay_time", min: 0, max: 1,
		get: func(p *Patch) float64 { return p.DecayTime },
		set: func(p *Patch, v float64) { p.DecayTime = v }},
	{name: "lowpass_resonance", min: 0, max: 1,
		get: func(p *Patch) float64 { return p.LowpassResonance },
		set: func(p *Patch, v float64) { p.LowpassResonance = v }},
	{name: "lowpass_cutoff", min: 0, max: 1,
		get: func(p *Patch) float64 { return p.LowpassCutoff },
		set: func(p *Patch, v float64) { p.LowpassCutoff = v }},
	{name: "lowpass_sweep", min: -1, max: 1,
		get: func(p *Patch) float64 { return p.LowpassSweep },
		set: func(p *Patch, v float64) { p.LowpassSweep = v }},
	{name: "highpass_cutoff", min: 0, max: 1,
		get: func(p *Patch) float64 { return p.HighpassCutoff },
		set: func(p *Patch, v float64) { p.HighpassCutoff = v }},
	{name: "highpass_sweep", min: -1, max: 1,
		get: func(p *Patch) float64 { return p.HighpassSweep },
		set: func(p *Patch, v float64) { p.HighpassSweep = v }},
	{name: "phaser_offset", min: -1, max: 1,
		get: func(p *Patch) float64 { return p.PhaserOffset },
		set: func(p *Patch, v float64) { p.PhaserOffset = v }},
	{name: "phaser_sweep", min: -1, max: 1,
		get: func(p *Patch) float64 { return p.PhaserSweep },
		set: func(p *Patch, v float64) { p.PhaserSweep = v }},
	{name: "master_volume", min: 0, max: 1, noMutate: true,
		get: func(p *Patch) float64 { return p.MasterVolume },
		set: func(p *Patch, v float64) { p.MasterVolume = v }},
}

// FieldNames returns the names of the numeric patch fields in a
// stable order, suitable for enumerating knobs in tools.
func FieldNames() []string {
	names := make([]string, len(numericFields))
	for i, f := range numericFields {
		names[i] = f.name
	}
	return names
}

// FieldRange returns the valid range of a numeric field by name.
func FieldRange(name string) (min, max float64, ok bool) {
	for _, f := range numericFields {
		if f.name == name {
			return f.min, f.max, true
		}
	}
	return 0, 0, false
}

// Field returns the value of a numeric field by name.
func (p *Patch) Field(name string) (float64, bool) {
	for _, f := range numericFields {
		if f.name == name {
			return f.get(p), true
		}
	}
	return 0, false
}

// SetField assigns a numeric field by name, clamping the value into
// the field's range. It reports whether the name is known.
func (p *Patch) SetField(name string, v float64) bool {
	for _, f := range numericFields {
		if f.name == name {
			f.set(p, clampFloat(v, f.min, f.max))
			return true
		}
	}
	return false
}

// Clamp saturates every field into its valid range in place. Unset
// integer output settings (zero values) are promoted to their
// transparent defaults. SampleRate is left alone; a non-positive rate
// is rejected when the generator starts.
func (p *Patch) Clamp() {
	if !p.WaveShape.Valid() {
		p.WaveShape = WaveSquare
	}
	for _, f := range numericFields {
		f.set(p, clampFloat(f.get(p), f.min, f.max))
	}
	if p.SampleSize == 0 {
		p.SampleSize = 16
	}
	p.SampleSize = clampInt(p.SampleSize, 1, 16)
	if p.SampleHold == 0 {
		p.SampleHold = 1
	}
	p.SampleHold = clampInt(p.SampleHold, 1, 256)
}

// Validate reports the first field whose value is outside its range.
func (p *Patch) Validate() error {
	if !p.WaveShape.Valid() {
		return fmt.Errorf("wave_shape out of range: %d", int(p.WaveShape))
	}
	for _, f := range numericFields {
		v := f.get(p)
		if v < f.min || v > f.max {
			return fmt.Errorf("%s out of range: %g (valid range [%g,%g])", f.name, v, f.min, f.max)
		}
	}
	if p.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive: %d", p.SampleRate)
	}
	if p.SampleSize < 1 || p.SampleSize > 16 {
		return fmt.Errorf("sample_size out of range: %d (valid range [1,16])", p.SampleSize)
	}
	if p.SampleHold < 1 || p.SampleHold > 256 {
		return fmt.Errorf("sample_hold out of range: %d (valid range [1,256])", p.SampleHold)
	}
	return nil
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
