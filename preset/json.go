package preset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/algo-sfx/sfx"
)

// File is the JSON schema for sound effect patches. Every field is
// optional; absent fields keep their neutral defaults, so a file can
// describe just the handful of controls a sound actually uses.
type File struct {
	WaveShape *string `json:"wave_shape,omitempty"`

	BaseFreq   *float64 `json:"base_freq,omitempty"`
	FreqLimit  *float64 `json:"freq_limit,omitempty"`
	FreqSlide  *float64 `json:"freq_slide,omitempty"`
	DeltaSlide *float64 `json:"delta_slide,omitempty"`

	VibratoDepth *float64 `json:"vibrato_depth,omitempty"`
	VibratoSpeed *float64 `json:"vibrato_speed,omitempty"`
	VibratoDelay *float64 `json:"vibrato_delay,omitempty"`

	ChangeAmount *float64 `json:"change_amount,omitempty"`
	ChangeSpeed  *float64 `json:"change_speed,omitempty"`

	Duty      *float64 `json:"duty,omitempty"`
	DutySweep *float64 `json:"duty_sweep,omitempty"`

	RepeatSpeed *float64 `json:"repeat_speed,omitempty"`

	AttackTime   *float64 `json:"attack_time,omitempty"`
	SustainTime  *float64 `json:"sustain_time,omitempty"`
	SustainPunch *float64 `json:"sustain_punch,omitempty"`
	DecayTime    *float64 `json:"decay_time,omitempty"`

	LowpassResonance *float64 `json:"lowpass_resonance,omitempty"`
	LowpassCutoff    *float64 `json:"lowpass_cutoff,omitempty"`
	LowpassSweep     *float64 `json:"lowpass_sweep,omitempty"`
	HighpassCutoff   *float64 `json:"highpass_cutoff,omitempty"`
	HighpassSweep    *float64 `json:"highpass_sweep,omitempty"`

	PhaserOffset *float64 `json:"phaser_offset,omitempty"`
	PhaserSweep  *float64 `json:"phaser_sweep,omitempty"`

	SampleRate   *int     `json:"sample_rate,omitempty"`
	SampleSize   *int     `json:"sample_size,omitempty"`
	SampleHold   *int     `json:"sample_hold,omitempty"`
	MasterVolume *float64 `json:"master_volume,omitempty"`
}

// LoadJSON loads a patch JSON file and applies it on top of the
// neutral patch.
func LoadJSON(path string) (sfx.Patch, error) {
	p := sfx.New()

	b, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return p, err
	}

	if err := ApplyFile(&p, &f); err != nil {
		return p, err
	}
	return p, nil
}

// SaveJSON writes a fully specified patch file.
func SaveJSON(path string, p sfx.Patch) error {
	b, err := json.MarshalIndent(FromPatch(p), "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}

// ApplyFile applies a parsed patch file onto an existing patch.
// Values outside their documented range are rejected rather than
// clamped, so a typo in a hand-edited file surfaces as an error.
func ApplyFile(dst *sfx.Patch, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination patch")
	}
	if f == nil {
		return nil
	}

	if f.WaveShape != nil {
		w, err := sfx.ParseWaveShape(*f.WaveShape)
		if err != nil {
			return err
		}
		dst.WaveShape = w
	}

	for _, fld := range []struct {
		name string
		val  *float64
	}{
		{"base_freq", f.BaseFreq},
		{"freq_limit", f.FreqLimit},
		{"freq_slide", f.FreqSlide},
		{"delta_slide", f.DeltaSlide},
		{"vibrato_depth", f.VibratoDepth},
		{"vibrato_speed", f.VibratoSpeed},
		{"vibrato_delay", f.VibratoDelay},
		{"change_amount", f.ChangeAmount},
		{"change_speed", f.ChangeSpeed},
		{"duty", f.Duty},
		{"duty_sweep", f.DutySweep},
		{"repeat_speed", f.RepeatSpeed},
		{"attack_time", f.AttackTime},
		{"sustain_time", f.SustainTime},
		{"sustain_punch", f.SustainPunch},
		{"decay_time", f.DecayTime},
		{"lowpass_resonance", f.LowpassResonance},
		{"lowpass_cutoff", f.LowpassCutoff},
		{"lowpass_sweep", f.LowpassSweep},
		{"highpass_cutoff", f.HighpassCutoff},
		{"highpass_sweep", f.HighpassSweep},
		{"phaser_offset", f.PhaserOffset},
		{"phaser_sweep", f.PhaserSweep},
		{"master_volume", f.MasterVolume},
	} {
		if fld.val == nil {
			continue
		}
		min, max, ok := sfx.FieldRange(fld.name)
		if !ok {
			return fmt.Errorf("unknown field %q", fld.name)
		}
		if *fld.val < min || *fld.val > max {
			return fmt.Errorf("%s must be in [%g,%g], got %g", fld.name, min, max, *fld.val)
		}
		dst.SetField(fld.name, *fld.val)
	}

	if f.SampleRate != nil {
		if *f.SampleRate <= 0 {
			return fmt.Errorf("sample_rate must be > 0, got %d", *f.SampleRate)
		}
		dst.SampleRate = *f.SampleRate
	}
	if f.SampleSize != nil {
		if *f.SampleSize < 1 || *f.SampleSize > 16 {
			return fmt.Errorf("sample_size must be in [1,16], got %d", *f.SampleSize)
		}
		dst.SampleSize = *f.SampleSize
	}
	if f.SampleHold != nil {
		if *f.SampleHold < 1 || *f.SampleHold > 256 {
			return fmt.Errorf("sample_hold must be in [1,256], got %d", *f.SampleHold)
		}
		dst.SampleHold = *f.SampleHold
	}
	return nil
}

// FromPatch builds a fully specified preset file from a patch, with
// every field present so saved files round-trip exactly.
func FromPatch(p sfx.Patch) *File {
	shape := p.WaveShape.String()
	f := &File{
		WaveShape:  &shape,
		SampleRate: &p.SampleRate,
		SampleSize: &p.SampleSize,
		SampleHold: &p.SampleHold,
	}
	for _, set := range []struct {
		dst **float64
		val float64
	}{
		{&f.BaseFreq, p.BaseFreq},
		{&f.FreqLimit, p.FreqLimit},
		{&f.FreqSlide, p.FreqSlide},
		{&f.DeltaSlide, p.DeltaSlide},
		{&f.VibratoDepth, p.VibratoDepth},
		{&f.VibratoSpeed, p.VibratoSpeed},
		{&f.VibratoDelay, p.VibratoDelay},
		{&f.ChangeAmount, p.ChangeAmount},
		{&f.ChangeSpeed, p.ChangeSpeed},
		{&f.Duty, p.Duty},
		{&f.DutySweep, p.DutySweep},
		{&f.RepeatSpeed, p.RepeatSpeed},
		{&f.AttackTime, p.AttackTime},
		{&f.SustainTime, p.SustainTime},
		{&f.SustainPunch, p.SustainPunch},
		{&f.DecayTime, p.DecayTime},
		{&f.LowpassResonance, p.LowpassResonance},
		{&f.LowpassCutoff, p.LowpassCutoff},
		{&f.LowpassSweep, p.LowpassSweep},
		{&f.HighpassCutoff, p.HighpassCutoff},
		{&f.HighpassSweep, p.HighpassSweep},
		{&f.PhaserOffset, p.PhaserOffset},
		{&f.PhaserSweep, p.PhaserSweep},
		{&f.MasterVolume, p.MasterVolume},
	} {
		v := set.val
		*set.dst = &v
	}
	return f
}
