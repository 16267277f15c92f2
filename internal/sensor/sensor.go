// Package sensor delivers cumulative step-counter readings. A reading is the
// total number of steps the counter has seen since it was last reset, so
// consumers compute differences against a baseline.
package sensor

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"
)

// ErrNoReading is returned when a payload holds no step value
var ErrNoReading = errors.New("no step reading")

// Reading is one cumulative counter value
type Reading struct {
	Value float64
	At    time.Time
}

// Source is a stream of readings. The channel is closed after Close.
type Source interface {
	Readings() <-chan Reading
	Close() error
}

// ParseReading extracts the cumulative value from a sensor payload: the last
// non-empty line, as a non-negative number.
func ParseReading(data []byte) (float64, error) {
	lines := bytes.Split(data, []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		line := bytes.TrimSpace(lines[i])
		if len(line) == 0 {
			continue
		}
		value, err := strconv.ParseFloat(string(line), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid step reading %q: %w", line, err)
		}
		if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, fmt.Errorf("invalid step reading %q: out of range", line)
		}
		return value, nil
	}
	return 0, ErrNoReading
}

// ChannelSource is a Source fed by Push
type ChannelSource struct {
	readings chan Reading
	once     sync.Once
	mu       sync.RWMutex
	closed   bool
}

// NewChannelSource creates a source buffering up to size readings
func NewChannelSource(size int) *ChannelSource {
	return &ChannelSource{readings: make(chan Reading, size)}
}

// Push delivers a reading, blocking while the buffer is full. It reports
// false once the source is closed.
func (c *ChannelSource) Push(value float64, at time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}
	c.readings <- Reading{Value: value, At: at}
	return true
}

func (c *ChannelSource) Readings() <-chan Reading {
	return c.readings
}

// Close closes the channel; buffered readings can still be drained
func (c *ChannelSource) Close() error {
	c.once.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.readings)
		c.mu.Unlock()
	})
	return nil
}
