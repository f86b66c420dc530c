package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-sfx/analysis"
	"github.com/cwbudde/algo-sfx/internal/wavio"
	"github.com/cwbudde/algo-sfx/preset"
	"github.com/cwbudde/algo-sfx/sfx"
)

type runReport struct {
	ReferencePath   string             `json:"reference_path"`
	PresetPath      string             `json:"preset_path,omitempty"`
	OutputPreset    string             `json:"output_preset"`
	SampleRate      int                `json:"sample_rate"`
	DurationSec     float64            `json:"elapsed_seconds"`
	Evaluations     int                `json:"evaluations"`
	MayflyVariant   string             `json:"mayfly_variant"`
	Workers         int                `json:"workers"`
	BestScore       float64            `json:"best_score"`
	BestSimilarity  float64            `json:"best_similarity"`
	BestMetrics     analysis.Metrics   `json:"best_metrics"`
	BestKnobs       map[string]float64 `json:"best_knobs"`
	CheckpointCount int                `json:"checkpoint_count"`
}

// writeOutputs persists the best patch as a preset JSON and the run
// report next to it. Called from checkpoints and at the end of the
// run, so it must tolerate being called repeatedly.
func writeOutputs(cfg *optimizationConfig, elapsed float64, evals int, best candidate, bestM analysis.Metrics, checkpoints int) error {
	p := applyCandidate(cfg.base, cfg.defs, best)
	if dir := filepath.Dir(cfg.outputPreset); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := preset.SaveJSON(cfg.outputPreset, p); err != nil {
		return err
	}

	knobs := make(map[string]float64, len(cfg.defs))
	for i, d := range cfg.defs {
		knobs[d.Name] = best.Vals[i]
	}
	rep := runReport{
		ReferencePath:   cfg.referencePath,
		PresetPath:      cfg.presetPath,
		OutputPreset:    cfg.outputPreset,
		SampleRate:      cfg.sampleRate,
		DurationSec:     elapsed,
		Evaluations:     evals,
		MayflyVariant:   strings.ToLower(cfg.mayflyVariant),
		Workers:         cfg.workers,
		BestScore:       bestM.Score,
		BestSimilarity:  bestM.Similarity,
		BestMetrics:     bestM,
		BestKnobs:       knobs,
		CheckpointCount: checkpoints,
	}

	reportPath := cfg.reportPath
	if reportPath == "" {
		reportPath = cfg.outputPreset + ".report.json"
	}
	return writeJSON(reportPath, rep)
}

func writeBestCandidateSnapshot(path string, base sfx.Patch, defs []knobDef, best candidate, sampleRate int) error {
	p := applyCandidate(base, defs, best)
	mono, err := renderPatch(p, sampleRate)
	if err != nil {
		return err
	}
	return wavio.WriteMono(path, wavio.ToFloat32(mono), sampleRate)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
