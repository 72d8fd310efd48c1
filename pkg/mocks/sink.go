package mocks

import (
	"image"
	"sync"

	"github.com/user/framegrab/pkg/ports"
)

// FrameSink is a mock implementation of ports.FrameSink.
type FrameSink struct {
	mu sync.Mutex

	// Indices lists every saved index in call order.
	Indices []int
	// Frames holds the last image saved under each index.
	Frames map[int]image.Image

	SaveFrameFunc func(index int, img image.Image) error
}

// NewFrameSink creates a new mock FrameSink.
func NewFrameSink() *FrameSink {
	return &FrameSink{
		Frames: make(map[int]image.Image),
	}
}

func (m *FrameSink) SaveFrame(index int, img image.Image) error {
	if m.SaveFrameFunc != nil {
		if err := m.SaveFrameFunc(index, img); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Indices = append(m.Indices, index)
	m.Frames[index] = img
	return nil
}

var _ ports.FrameSink = (*FrameSink)(nil)

// ProgressReporter records progress calls.
type ProgressReporter struct {
	mu sync.Mutex

	ProgressCalls []int
	FinishedCalls []int
}

func (m *ProgressReporter) Progress(stored int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProgressCalls = append(m.ProgressCalls, stored)
}

func (m *ProgressReporter) Finished(stored int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinishedCalls = append(m.FinishedCalls, stored)
}

var _ ports.ProgressReporter = (*ProgressReporter)(nil)
