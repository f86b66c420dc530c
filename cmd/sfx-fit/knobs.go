package main

import (
	"encoding/json"
	"errors"
	"math"
	"os"

	"github.com/cwbudde/algo-sfx/internal/wavio"
	"github.com/cwbudde/algo-sfx/sfx"
)

type knobDef struct {
	Name  string
	Min   float64
	Max   float64
	IsInt bool
}

type candidate struct {
	Vals []float64
}

// initCandidate builds one knob per patch control: the wave shape as
// an integer knob unless locked, then every numeric field in patch
// order. The initial candidate carries the base patch's values.
func initCandidate(base sfx.Patch, lockWave bool) ([]knobDef, candidate) {
	names := sfx.FieldNames()
	defs := make([]knobDef, 0, len(names)+1)
	vals := make([]float64, 0, len(names)+1)

	if !lockWave {
		defs = append(defs, knobDef{Name: "wave_shape", Min: 0, Max: float64(sfx.WaveTriangle), IsInt: true})
		vals = append(vals, float64(base.WaveShape))
	}
	for _, name := range names {
		lo, hi, _ := sfx.FieldRange(name)
		v, _ := base.Field(name)
		defs = append(defs, knobDef{Name: name, Min: lo, Max: hi})
		vals = append(vals, clamp(v, lo, hi))
	}
	return defs, candidate{Vals: vals}
}

// applyCandidate writes the knob values onto a copy of the base patch.
// Knobs left out of the defs (locked wave shape, output settings) keep
// the base's values.
func applyCandidate(base sfx.Patch, defs []knobDef, c candidate) sfx.Patch {
	p := base
	for i, def := range defs {
		v := c.Vals[i]
		if def.Name == "wave_shape" {
			p.WaveShape = sfx.WaveShape(int(math.Round(v)))
			continue
		}
		p.SetField(def.Name, v)
	}
	p.Clamp()
	return p
}

func fromNormalized(pos []float64, defs []knobDef) candidate {
	vals := make([]float64, len(defs))
	for i := range defs {
		x := 0.0
		if i < len(pos) {
			x = clamp(pos[i], 0, 1)
		}
		v := defs[i].Min + x*(defs[i].Max-defs[i].Min)
		if defs[i].IsInt {
			v = math.Round(v)
		}
		vals[i] = v
	}
	return candidate{Vals: vals}
}

func loadCandidateFromReport(path string, defs []knobDef, fallback candidate) (candidate, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fallback, false, nil
		}
		return fallback, false, err
	}
	var rep runReport
	if err := json.Unmarshal(b, &rep); err != nil {
		return fallback, false, err
	}
	if len(rep.BestKnobs) == 0 {
		return fallback, false, nil
	}

	vals := make([]float64, len(fallback.Vals))
	copy(vals, fallback.Vals)
	updated := false
	for i, d := range defs {
		if v, ok := rep.BestKnobs[d.Name]; ok {
			vals[i] = clamp(v, d.Min, d.Max)
			if d.IsInt {
				vals[i] = math.Round(vals[i])
			}
			updated = true
		}
	}
	if !updated {
		return fallback, false, nil
	}
	return candidate{Vals: vals}, true, nil
}

// renderPatch synthesizes the patch at its own rate and resamples the
// result to the analysis rate.
func renderPatch(p sfx.Patch, analysisRate int) ([]float64, error) {
	g, err := sfx.NewGenerator(p)
	if err != nil {
		return nil, err
	}
	mono := wavio.ToFloat64(g.RenderAll())
	return wavio.Resample(mono, p.SampleRate, analysisRate)
}
