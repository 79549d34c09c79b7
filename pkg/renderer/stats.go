package renderer

import "time"

// FrameStats describes one completed frame
type FrameStats struct {
	Width   int
	Height  int
	Workers int
	Elapsed time.Duration
}

// PixelCount returns the number of pixels in the frame buffer
func (s FrameStats) PixelCount() int {
	return s.Width * s.Height
}
