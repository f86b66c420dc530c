package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-sfx/internal/wavio"
	"github.com/cwbudde/algo-sfx/preset"
	"github.com/cwbudde/algo-sfx/sfx"
)

func main() {
	referencePath := flag.String("reference", "reference/target.wav", "Reference WAV path")
	presetPath := flag.String("preset", "", "Base patch JSON path; empty starts from the default patch")
	category := flag.String("category", "", "Seeded category preset as the base when no preset is given")
	outputPreset := flag.String("output-preset", "fitted/best.json", "Path to write best fitted patch JSON")
	reportPath := flag.String("report", "", "Optional report JSON path (default: <output-preset>.report.json)")
	sampleRate := flag.Int("sample-rate", 44100, "Analysis sample rate in Hz")
	seed := flag.Int64("seed", 1, "Random seed")
	timeBudget := flag.Float64("time-budget", 60.0, "Optimization time budget in seconds")
	maxEvals := flag.Int("max-evals", 20000, "Maximum objective evaluations")
	reportEvery := flag.Int("report-every", 200, "Print progress every N evaluations")
	checkpointEvery := flag.Int("checkpoint-every", 1, "Write checkpoint every N best-score improvements")
	writeBestCandidate := flag.String("write-best-candidate", "", "Optional WAV path to write best candidate render")
	resume := flag.Bool("resume", true, "Resume from previous best_knobs report when available")
	resumeReport := flag.String("resume-report", "", "Optional report JSON path to resume from (default: current report path)")
	lockWave := flag.Bool("lock-wave", false, "Keep the base patch's wave shape out of the search")
	workersFlag := flag.String("workers", "auto", "Parallel optimization workers, or \"auto\" for GOMAXPROCS")

	mayflyVariant := flag.String("mayfly-variant", "desma", "Mayfly variant: ma|desma|olce|eobbma|gsasma|mpma|aoblmoa")
	mayflyPop := flag.Int("mayfly-pop", 10, "Male and female population size per Mayfly run")
	mayflyRoundEvals := flag.Int("mayfly-round-evals", 240, "Target eval budget per Mayfly round")
	flag.Parse()

	if *maxEvals < 1 {
		die("max-evals must be >= 1")
	}
	if *timeBudget <= 0 {
		die("time-budget must be > 0")
	}
	if *reportEvery < 1 {
		*reportEvery = 1
	}
	if *checkpointEvery < 1 {
		*checkpointEvery = 1
	}
	if *mayflyPop < 2 {
		*mayflyPop = 2
	}
	if *mayflyRoundEvals < *mayflyPop*2 {
		*mayflyRoundEvals = *mayflyPop * 2
	}
	workers, err := parseWorkersFlag(*workersFlag)
	if err != nil {
		die("%v", err)
	}

	base, err := resolveBase(*presetPath, *category, *seed)
	if err != nil {
		die("%v", err)
	}

	ref, refSR, err := wavio.ReadMono(*referencePath)
	if err != nil {
		die("failed to read reference: %v", err)
	}
	ref, err = wavio.Resample(ref, refSR, *sampleRate)
	if err != nil {
		die("failed to resample reference: %v", err)
	}

	defs, initCand := initCandidate(base, *lockWave)
	if *resume {
		resumePath := *resumeReport
		if resumePath == "" {
			if *reportPath != "" {
				resumePath = *reportPath
			} else {
				resumePath = *outputPreset + ".report.json"
			}
		}
		if resumed, ok, err := loadCandidateFromReport(resumePath, defs, initCand); err != nil {
			fmt.Fprintf(os.Stderr, "resume skipped (%s): %v\n", resumePath, err)
		} else if ok {
			initCand = resumed
			fmt.Printf("Resumed candidate from %s\n", resumePath)
		}
	}

	cfg := &optimizationConfig{
		reference:          ref,
		base:               base,
		defs:               defs,
		initCandidate:      initCand,
		sampleRate:         *sampleRate,
		seed:               *seed,
		timeBudget:         *timeBudget,
		maxEvals:           *maxEvals,
		reportEvery:        *reportEvery,
		checkpointEvery:    *checkpointEvery,
		mayflyVariant:      *mayflyVariant,
		mayflyPop:          *mayflyPop,
		mayflyRoundEvals:   *mayflyRoundEvals,
		workers:            workers,
		outputPreset:       *outputPreset,
		reportPath:         *reportPath,
		referencePath:      *referencePath,
		presetPath:         *presetPath,
		writeBestCandidate: *writeBestCandidate,
	}
	res, err := runOptimization(cfg)
	if err != nil {
		die("%v", err)
	}

	if err := writeOutputs(cfg, res.elapsed, res.evals, res.best, res.bestMetrics, res.checkpoints); err != nil {
		die("failed to write outputs: %v", err)
	}
	if *writeBestCandidate != "" {
		if err := writeBestCandidateSnapshot(*writeBestCandidate, base, defs, res.best, *sampleRate); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write best candidate wav: %v\n", err)
		}
	}

	fmt.Printf("Done evals=%d elapsed=%.1fs best_score=%.4f best_similarity=%.2f%% variant=%s\n",
		res.evals, res.elapsed, res.bestMetrics.Score, res.bestMetrics.Similarity*100.0, strings.ToLower(*mayflyVariant))
}

// resolveBase picks the patch the knob search starts from. The default
// patch keeps the envelope audible so the initial candidate produces
// sound for every knob to pull against.
func resolveBase(presetPath, category string, seed int64) (sfx.Patch, error) {
	switch {
	case presetPath != "":
		p, err := preset.LoadJSON(presetPath)
		if err != nil {
			return p, fmt.Errorf("failed to load preset %q: %w", presetPath, err)
		}
		return p, nil
	case category != "":
		c, err := sfx.ParseCategory(category)
		if err != nil {
			return sfx.Patch{}, err
		}
		return sfx.RandomizePreset(c, seed), nil
	default:
		return sfx.NewDefault(), nil
	}
}
