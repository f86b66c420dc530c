package sfx

import "fmt"

// WaveShape selects the oscillator waveform.
type WaveShape int

const (
	WaveSquare WaveShape = iota
	WaveSawtooth
	WaveSine
	WaveNoise
	WaveTriangle

	numWaveShapes
)

var waveShapeNames = [...]string{
	WaveSquare:   "square",
	WaveSawtooth: "sawtooth",
	WaveSine:     "sine",
	WaveNoise:    "noise",
	WaveTriangle: "triangle",
}

func (w WaveShape) String() string {
	if !w.Valid() {
		return fmt.Sprintf("wave(%d)", int(w))
	}
	return waveShapeNames[w]
}

// Valid reports whether w is one of the defined waveforms.
func (w WaveShape) Valid() bool {
	return w >= WaveSquare && w < numWaveShapes
}

// ParseWaveShape maps a waveform name to its WaveShape value.
func ParseWaveShape(name string) (WaveShape, error) {
	for i, n := range waveShapeNames {
		if n == name {
			return WaveShape(i), nil
		}
	}
	return 0, fmt.Errorf("unknown wave shape %q", name)
}
