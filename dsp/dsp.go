package dsp

// DelayLine implements a circular buffer for delay
type DelayLine struct {
	buffer   []float64
	writePos int
	size     int
}

// NewDelayLine creates a new delay line with the given size
func NewDelayLine(size int) *DelayLine {
	return &DelayLine{
		buffer: make([]float64, size),
		size:   size,
	}
}

// Write writes a sample to the delay line
func (d *DelayLine) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos = (d.writePos + 1) % d.size
}

// Read reads a sample from the delay line at the given delay (in samples)
func (d *DelayLine) Read(delay int) float64 {
	readPos := (d.writePos - delay + d.size) % d.size
	return d.buffer[readPos]
}

// Reset clears the delay line
func (d *DelayLine) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// FlushDenormals converts denormal numbers to zero to avoid performance issues
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0.0
	}
	return x
}
