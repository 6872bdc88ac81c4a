package renderer

import "time"

type FrameStats struct {
	// The monotonic frame counter value for this frame.
	Frame uint32

	// Accumulated sample count since the last reset.
	Iteration uint32

	// Time spent tracing the sample buffer.
	TraceTime time.Duration

	// Time spent in accumulation/denoising and display resolve.
	FilterTime time.Duration

	// Total render time for the entire frame.
	RenderTime time.Duration
}
