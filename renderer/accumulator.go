package renderer

import (
	"github.com/atul-mourya/RayTracing-sub004/log"
	"github.com/atul-mourya/RayTracing-sub004/tracer"
	"github.com/atul-mourya/RayTracing-sub004/types"
)

const (
	// Default luminance ceiling for firefly suppression.
	DefaultFireflyClamp float32 = 12.0

	// Default coverage threshold for the reconstruction filter's edge test.
	DefaultEdgeThreshold float32 = 0.95
)

// Accumulation stage options.
type AccumulatorOptions struct {
	// Samples whose luminance exceeds this value are scaled down to it,
	// preserving hue. Zero disables clamping.
	FireflyClamp float32

	// Coverage threshold for the edge-aware reconstruction filter.
	EdgeThreshold float32

	// Apply ACES filmic tone-mapping on the display path.
	Tonemap bool
}

// The accumulation stage maintains a running mean of incoming radiance
// samples across frames. It is a two-state machine: Empty (iteration == 0)
// and Accumulating (iteration > 0); Reset forces Empty. The mean is kept in a
// ping-pong buffer pair so a frame's read always sees the prior frame's fully
// written buffer.
type Accumulator struct {
	opts   AccumulatorOptions
	logger log.Logger

	width  int
	height int

	iteration uint32
	buffers   [2]*tracer.Framebuffer
	front     int
}

// Create an accumulation stage for the given render target size.
func NewAccumulator(width, height int, opts AccumulatorOptions) (*Accumulator, error) {
	a := &Accumulator{
		opts:   opts,
		logger: log.New("accumulator"),
	}
	if err := a.Resize(width, height); err != nil {
		return nil, err
	}
	return a, nil
}

// The number of samples accumulated since the last reset.
func (a *Accumulator) Iteration() uint32 {
	return a.iteration
}

// The buffer holding the current running mean.
func (a *Accumulator) Current() *tracer.Framebuffer {
	return a.buffers[a.front]
}

// Clear both buffers and return to the Empty state. Reset is idempotent.
func (a *Accumulator) Reset() {
	a.buffers[0].Clear()
	a.buffers[1].Clear()
	a.iteration = 0
}

// Reallocate the buffer pair for a new render target size. Implies a reset;
// stale samples must never survive a resize.
func (a *Accumulator) Resize(width, height int) error {
	var err error
	if a.buffers[0], err = tracer.NewFramebuffer(width, height); err != nil {
		return err
	}
	if a.buffers[1], err = tracer.NewFramebuffer(width, height); err != nil {
		return err
	}
	a.width = width
	a.height = height
	a.front = 0
	a.iteration = 0
	return nil
}

// Fold one sample buffer into the running mean. For iteration N the update is
//
//	accumulated += (sample - accumulated) / N
//
// which is the numerically stable form of the mean; a naive sum-then-divide
// drifts at high iteration counts.
func (a *Accumulator) Accumulate(sample *tracer.Framebuffer) error {
	if sample.Width != a.width || sample.Height != a.height {
		return ErrResolutionMismatch
	}

	a.iteration++
	read := a.buffers[a.front]
	write := a.buffers[1-a.front]
	invIter := 1.0 / float32(a.iteration)

	for y := 0; y < a.height; y++ {
		for x := 0; x < a.width; x++ {
			c, alpha := sample.At(x, y)
			c = a.clampFirefly(c)

			if a.iteration <= 1 {
				write.Set(x, y, c, alpha)
				continue
			}

			mean, meanA := read.At(x, y)
			mean = mean.Add(c.Sub(mean).Mul(invIter))
			meanA += (alpha - meanA) * invIter
			write.Set(x, y, mean, meanA)
		}
	}

	a.front = 1 - a.front
	return nil
}

// Scale a sample down to the firefly luminance ceiling, preserving hue.
func (a *Accumulator) clampFirefly(c types.Vec3) types.Vec3 {
	if a.opts.FireflyClamp <= 0 {
		return c
	}
	lum := c.Luminance()
	if lum <= a.opts.FireflyClamp {
		return c
	}
	return c.Mul(a.opts.FireflyClamp / lum)
}

// The 8 filter walk directions and the number of steps taken along each; the
// walked neighborhood plus the center pixel covers 37 taps.
var filterDirs = [8]struct {
	dx, dy, steps int
}{
	{1, 0, 5}, {-1, 0, 5}, {0, 1, 5}, {0, -1, 5},
	{1, 1, 4}, {1, -1, 4}, {-1, 1, 4}, {-1, -1, 4},
}

// Produce the display image from the running mean: apply the edge-aware
// reconstruction filter, blend it against the unfiltered pixel depending on
// camera motion and convergence and optionally tone-map. Each pixel's filter
// is independent; no state is shared across pixels.
func (a *Accumulator) Resolve(out *tracer.Framebuffer, cameraMoving bool) error {
	if out.Width != a.width || out.Height != a.height {
		return ErrResolutionMismatch
	}

	src := a.buffers[a.front]
	for y := 0; y < a.height; y++ {
		for x := 0; x < a.width; x++ {
			center, centerAlpha := src.At(x, y)

			filtered := a.filterPixel(src, x, y, center)

			// A moving camera shows the filtered estimate; a static one fades
			// it out as accumulation converges, so a fully converged pixel
			// (alpha == 1) displays unfiltered.
			c := filtered
			if !cameraMoving {
				blend := centerAlpha
				if blend > 1 {
					blend = 1
				}
				c = types.LerpVec3(filtered, center, blend)
			}

			if a.opts.Tonemap {
				c = tonemapACES(c)
			}
			out.Set(x, y, c, centerAlpha)
		}
	}
	return nil
}

// Gather the 37-tap neighborhood around (x, y), walking outward in each of
// the 8 directions while the edge test stays false, and average the walked
// samples.
func (a *Accumulator) filterPixel(src *tracer.Framebuffer, x, y int, center types.Vec3) types.Vec3 {
	threshold := a.opts.EdgeThreshold
	if threshold == 0 {
		threshold = DefaultEdgeThreshold
	}

	sum := center
	count := 1
	for _, dir := range filterDirs {
		for step := 1; step <= dir.steps; step++ {
			sx := x + dir.dx*step
			sy := y + dir.dy*step
			if sx < 0 || sy < 0 || sx >= a.width || sy >= a.height {
				break
			}
			c, alpha := src.At(sx, sy)
			if alpha > threshold {
				break
			}
			sum = sum.Add(c)
			count++
		}
	}
	return sum.Mul(1.0 / float32(count))
}

// The ACES filmic curve approximation, applied per channel.
func tonemapACES(c types.Vec3) types.Vec3 {
	return types.Vec3{acesChannel(c[0]), acesChannel(c[1]), acesChannel(c[2])}
}

func acesChannel(x float32) float32 {
	if x <= 0 {
		return 0
	}
	const a, b, c, d, e = 2.51, 0.03, 2.43, 0.59, 0.14

	v := (x * (a*x + b)) / (x*(c*x+d) + e)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
