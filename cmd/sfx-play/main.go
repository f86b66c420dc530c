package main

import (
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"golang.org/x/term"

	"github.com/cwbudde/algo-sfx/preset"
	"github.com/cwbudde/algo-sfx/sfx"
)

func main() {
	presetPath := flag.String("preset", "", "Patch JSON file path; empty plays a generated patch")
	category := flag.String("category", "", "Preset category for generated patches (pickup, laser, explosion, powerup, hit, jump, blip)")
	seed := flag.Int64("seed", 1, "Seed for generated patches")
	mutate := flag.Float64("mutate", 0.05, "Mutation amount for the interactive mutate key")
	rate := flag.Int("rate", 44100, "Playback sample rate in Hz")
	interactive := flag.Bool("interactive", false, "Keyboard-driven mode: generate, mutate and audition patches live")
	flag.Parse()

	ctx, err := newAudioContext(*rate)
	if err != nil {
		die("failed to open audio device: %v", err)
	}

	if *interactive {
		if err := runInteractive(ctx, *presetPath, *category, *seed, *mutate, *rate); err != nil {
			die("%v", err)
		}
		return
	}

	p, name, err := resolvePatch(*presetPath, *category, *seed)
	if err != nil {
		die("%v", err)
	}
	fmt.Printf("Playing %s: %s\n", name, describe(p))
	if err := playOnce(ctx, p, *rate); err != nil {
		die("playback failed: %v", err)
	}
}

func resolvePatch(presetPath, category string, seed int64) (sfx.Patch, string, error) {
	switch {
	case presetPath != "":
		p, err := preset.LoadJSON(presetPath)
		if err != nil {
			return p, "", fmt.Errorf("failed to load preset %q: %w", presetPath, err)
		}
		return p, presetPath, nil
	case category != "":
		c, err := sfx.ParseCategory(category)
		if err != nil {
			return sfx.Patch{}, "", err
		}
		return sfx.RandomizePreset(c, seed), c.String(), nil
	default:
		return sfx.Randomize(seed), "random", nil
	}
}

func runInteractive(ctx *oto.Context, presetPath, category string, seed int64, mutateAmount float64, rate int) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("interactive mode needs a terminal")
	}

	current, name, err := resolvePatch(presetPath, category, seed)
	if err != nil {
		return err
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	st := &stream{rate: rate}
	pr := ctx.NewPlayer(st)
	pr.Play()
	defer pr.Close()

	cats := sfx.Categories()
	fmt.Printf("Keys: 1-%d category, r random, m mutate, -/+ transpose, space replay, s save, q quit\r\n", len(cats))
	for i, c := range cats {
		fmt.Printf("  %d %s\r\n", i+1, c)
	}
	fmt.Printf("\r\n%s: %s\r\n", name, describe(current))
	if err := st.trigger(current); err != nil {
		return err
	}

	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return err
		}

		retrigger := true
		switch key := buf[0]; {
		case key == 'q' || key == 0x03:
			fmt.Printf("\r\n")
			return nil
		case key >= '1' && key <= '0'+byte(len(cats)):
			seed++
			c := cats[key-'1']
			current = sfx.RandomizePreset(c, seed)
			name = c.String()
		case key == 'r':
			seed++
			current = sfx.Randomize(seed)
			name = "random"
		case key == 'm':
			seed++
			current = sfx.Mutate(current, seed, mutateAmount)
			name = name + "*"
		case key == '-':
			current = sfx.Transpose(current, -1)
		case key == '+' || key == '=':
			current = sfx.Transpose(current, 1)
		case key == 's':
			path := fmt.Sprintf("sfx-%s.json", time.Now().Format("20060102-150405"))
			if err := preset.SaveJSON(path, current); err != nil {
				return err
			}
			fmt.Printf("Saved %s\r\n", path)
			retrigger = false
		case key == ' ':
		default:
			retrigger = false
		}

		if !retrigger {
			continue
		}
		fmt.Printf("%s: %s\r\n", name, describe(current))
		if err := st.trigger(current); err != nil {
			return err
		}
	}
}

func describe(p sfx.Patch) string {
	return fmt.Sprintf("wave=%s freq=%.3f env=[%.2f %.2f %.2f]",
		p.WaveShape, p.BaseFreq, p.AttackTime, p.SustainTime, p.DecayTime)
}

func newAudioContext(rate int) (*oto.Context, error) {
	op := &oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready
	return ctx, nil
}

// playOnce renders the whole patch up front and blocks until the
// device has consumed it.
func playOnce(ctx *oto.Context, p sfx.Patch, rate int) error {
	p.SampleRate = rate
	g, err := sfx.NewGenerator(p)
	if err != nil {
		return err
	}

	pcm := new(bytes.Buffer)
	if err := binary.Write(pcm, binary.LittleEndian, g.RenderAll()); err != nil {
		return err
	}
	pr := ctx.NewPlayer(pcm)
	pr.Play()
	for pr.IsPlaying() {
		time.Sleep(time.Millisecond)
	}
	return pr.Close()
}

// stream feeds the device by pulling samples from the active
// generator, zero-filling once it finishes. Triggering a new patch
// swaps the generator, so a fresh sound cuts off the previous one the
// way a monophonic preview should.
type stream struct {
	mu   sync.Mutex
	gen  *sfx.Generator
	rate int
	buf  []float32
}

func (s *stream) trigger(p sfx.Patch) error {
	p.SampleRate = s.rate
	g, err := sfx.NewGenerator(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.gen = g
	s.mu.Unlock()
	return nil
}

func (s *stream) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if cap(s.buf) < frames {
		s.buf = make([]float32, frames)
	}
	buf := s.buf[:frames]

	s.mu.Lock()
	n := 0
	if s.gen != nil {
		n = s.gen.Generate(buf)
	}
	s.mu.Unlock()

	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(buf[i]))
	}
	for i := n * 4; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
