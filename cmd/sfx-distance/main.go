package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-sfx/analysis"
	"github.com/cwbudde/algo-sfx/internal/wavio"
	"github.com/cwbudde/algo-sfx/preset"
	"github.com/cwbudde/algo-sfx/sfx"
)

func main() {
	referencePath := flag.String("reference", "reference/target.wav", "Reference WAV path")
	candidatePath := flag.String("candidate", "", "Candidate WAV path; if empty, render candidate from a patch")
	presetPath := flag.String("preset", "", "Patch JSON path for rendered candidate")
	category := flag.String("category", "", "Preset category for rendered candidate when no preset is given")
	seed := flag.Int64("seed", 1, "Seed for generated candidate patches")
	sampleRate := flag.Int("sample-rate", 44100, "Analysis sample rate in Hz")
	writeCandidate := flag.String("write-candidate", "", "Optional path to write rendered candidate WAV")
	jsonOut := flag.Bool("json", false, "Print metrics as JSON")
	flag.Parse()

	ref, refSR, err := wavio.ReadMono(*referencePath)
	if err != nil {
		die("failed to read reference: %v", err)
	}
	ref, err = wavio.Resample(ref, refSR, *sampleRate)
	if err != nil {
		die("failed to resample reference: %v", err)
	}

	var cand []float64
	if *candidatePath != "" {
		candRaw, candSR, err := wavio.ReadMono(*candidatePath)
		if err != nil {
			die("failed to read candidate: %v", err)
		}
		cand, err = wavio.Resample(candRaw, candSR, *sampleRate)
		if err != nil {
			die("failed to resample candidate: %v", err)
		}
	} else {
		cand, err = renderCandidate(*presetPath, *category, *seed, *sampleRate)
		if err != nil {
			die("failed to render candidate: %v", err)
		}
		if *writeCandidate != "" {
			if err := wavio.WriteMono(*writeCandidate, wavio.ToFloat32(cand), *sampleRate); err != nil {
				die("failed to write candidate wav: %v", err)
			}
		}
	}

	metrics := analysis.Compare(ref, cand, *sampleRate)
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(metrics); err != nil {
			die("json encode failed: %v", err)
		}
		return
	}

	fmt.Printf("Reference frames: %d\n", metrics.ReferenceFrames)
	fmt.Printf("Candidate frames: %d\n", metrics.CandidateFrames)
	fmt.Printf("Aligned frames:   %d\n", metrics.AlignedFrames)
	fmt.Printf("Lag:              %d samples (%.3f ms)\n", metrics.LagSamples, 1000.0*float64(metrics.LagSamples)/float64(metrics.SampleRate))
	fmt.Println()
	fmt.Printf("Component        Raw          Norm   Weight  Contribution\n")
	fmt.Printf("─────────────────────────────────────────────────────────\n")
	printComp := func(name string, raw string, norm, weight float64, dominant bool) {
		contrib := norm * weight
		marker := ""
		if dominant {
			marker = " ◄"
		}
		fmt.Printf("%-16s %-12s %5.1f%%  ×%.2f   → %.4f%s\n", name, raw, norm*100, weight, contrib, marker)
	}
	printComp("Time RMSE", fmt.Sprintf("%.6f", metrics.TimeRMSE), metrics.TimeNorm, analysis.WeightTime, metrics.Dominant == "time")
	printComp("Envelope RMSE", fmt.Sprintf("%.1f dB", metrics.EnvelopeRMSEDB), metrics.EnvelopeNorm, analysis.WeightEnvelope, metrics.Dominant == "envelope")
	printComp("Spectral RMSE", fmt.Sprintf("%.1f dB", metrics.SpectralRMSEDB), metrics.SpectralNorm, analysis.WeightSpectral, metrics.Dominant == "spectral")
	printComp("Decay diff", fmt.Sprintf("%.1f dB/s", metrics.DecayDiffDBPerS), metrics.DecayNorm, analysis.WeightDecay, metrics.Dominant == "decay")
	fmt.Printf("─────────────────────────────────────────────────────────\n")
	fmt.Printf("Score:            %.4f  (0 best, 1 worst)\n", metrics.Score)
	fmt.Printf("Similarity:       %.2f%%\n", metrics.Similarity*100.0)
	fmt.Printf("Dominant factor:  %s\n", metrics.Dominant)
	fmt.Printf("\nDecay slopes: ref=%.1f dB/s  cand=%.1f dB/s\n", metrics.RefDecayDBPerS, metrics.CandDecayDBPerS)
}

func renderCandidate(presetPath, category string, seed int64, sampleRate int) ([]float64, error) {
	var (
		p   sfx.Patch
		err error
	)
	switch {
	case presetPath != "":
		p, err = preset.LoadJSON(presetPath)
		if err != nil {
			return nil, err
		}
	case category != "":
		c, err := sfx.ParseCategory(category)
		if err != nil {
			return nil, err
		}
		p = sfx.RandomizePreset(c, seed)
	default:
		p = sfx.Randomize(seed)
	}

	g, err := sfx.NewGenerator(p)
	if err != nil {
		return nil, err
	}
	mono := wavio.ToFloat64(g.RenderAll())
	return wavio.Resample(mono, p.SampleRate, sampleRate)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
