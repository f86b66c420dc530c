package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-sfx/internal/wavio"
	"github.com/cwbudde/algo-sfx/preset"
	"github.com/cwbudde/algo-sfx/sfx"
)

func main() {
	presetPath := flag.String("preset", "", "Patch JSON file path; empty renders a generated patch")
	category := flag.String("category", "", "Preset category for generated patches (pickup, laser, explosion, powerup, hit, jump, blip)")
	seed := flag.Int64("seed", 1, "Seed for generated patches")
	mutate := flag.Float64("mutate", 0, "Mutation amount in [0,1] applied on top of the patch")
	mutateSeed := flag.Int64("mutate-seed", 1, "Seed for mutation")
	transpose := flag.Float64("transpose", 0, "Pitch shift in semitones")
	count := flag.Int("count", 1, "Number of patches to render (seeds increment per patch)")
	output := flag.String("output", "output.wav", "Output WAV path for a single render")
	outDir := flag.String("out-dir", "out", "Output directory for batch renders")
	rate := flag.Int("rate", 0, "Output WAV sample rate; 0 keeps the patch rate, otherwise the render is resampled")
	noDither := flag.Bool("no-dither", false, "Skip triangular dither before the 16 bit encode")
	savePatch := flag.String("save-patch", "", "Optional path to write the rendered patch JSON (single render only)")
	flag.Parse()

	if *count < 1 {
		die("count must be >= 1, got %d", *count)
	}

	if *count == 1 {
		p, name, err := resolvePatch(*presetPath, *category, *seed, *mutate, *mutateSeed, *transpose)
		if err != nil {
			die("%v", err)
		}
		if *savePatch != "" {
			if err := preset.SaveJSON(*savePatch, p); err != nil {
				die("failed to save patch: %v", err)
			}
		}
		frames, outRate, err := renderToFile(p, *output, *rate, !*noDither, uint64(*seed))
		if err != nil {
			die("%v", err)
		}
		fmt.Printf("Rendered %s (%s) to %s: %d frames at %d Hz (%.3fs)\n",
			name, p.WaveShape, *output, frames, outRate, float64(frames)/float64(outRate))
		return
	}

	if *savePatch != "" {
		die("save-patch only applies to single renders")
	}

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < *count; i++ {
		s := *seed + int64(i)
		ms := *mutateSeed + int64(i)
		g.Go(func() error {
			p, name, err := resolvePatch(*presetPath, *category, s, *mutate, ms, *transpose)
			if err != nil {
				return err
			}
			path := filepath.Join(*outDir, fmt.Sprintf("%s_%04d.wav", name, s))
			frames, outRate, err := renderToFile(p, path, *rate, !*noDither, uint64(s))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Printf("Rendered %s: %d frames at %d Hz\n", path, frames, outRate)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		die("%v", err)
	}
	fmt.Printf("Rendered %d sounds into %s\n", *count, *outDir)
}

// resolvePatch builds the patch to render: an explicit JSON file, a
// seeded category preset, or a fully random patch, with mutation and
// transpose applied on top.
func resolvePatch(presetPath, category string, seed int64, mutate float64, mutateSeed int64, transpose float64) (sfx.Patch, string, error) {
	var (
		p    sfx.Patch
		name string
	)
	switch {
	case presetPath != "":
		loaded, err := preset.LoadJSON(presetPath)
		if err != nil {
			return p, "", fmt.Errorf("failed to load preset %q: %w", presetPath, err)
		}
		p = loaded
		name = strings.TrimSuffix(filepath.Base(presetPath), filepath.Ext(presetPath))
	case category != "":
		c, err := sfx.ParseCategory(category)
		if err != nil {
			return p, "", err
		}
		p = sfx.RandomizePreset(c, seed)
		name = c.String()
	default:
		p = sfx.Randomize(seed)
		name = "random"
	}

	if mutate > 0 {
		p = sfx.Mutate(p, mutateSeed, mutate)
	}
	if transpose != 0 {
		p = sfx.Transpose(p, transpose)
	}
	return p, name, nil
}

// renderToFile synthesizes the patch and writes it as a 16 bit mono
// WAV, resampling when the requested file rate differs from the
// patch's render rate.
func renderToFile(p sfx.Patch, path string, fileRate int, applyDither bool, ditherSeed uint64) (int, int, error) {
	g, err := sfx.NewGenerator(p)
	if err != nil {
		return 0, 0, err
	}
	rendered := g.RenderAll()

	samples := wavio.ToFloat64(rendered)
	outRate := p.SampleRate
	if fileRate > 0 && fileRate != outRate {
		samples, err = wavio.Resample(samples, outRate, fileRate)
		if err != nil {
			return 0, 0, fmt.Errorf("resample to %d Hz: %w", fileRate, err)
		}
		outRate = fileRate
	}
	if applyDither {
		if err := wavio.DitherTo16(samples, outRate, ditherSeed); err != nil {
			return 0, 0, err
		}
	}
	if err := wavio.WriteMono(path, wavio.ToFloat32(samples), outRate); err != nil {
		return 0, 0, err
	}
	return len(samples), outRate, nil
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
