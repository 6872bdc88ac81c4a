package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/atul-mourya/RayTracing-sub004/log"
	"github.com/atul-mourya/RayTracing-sub004/tracer"
	"github.com/atul-mourya/RayTracing-sub004/types"
)

const (
	// Default number of à-trous wavelet passes.
	DefaultATrousIterations = 4

	// Variance estimates are floored to this value so edge-stopping weights
	// never divide by zero.
	varianceEpsilon float32 = 1e-4
)

// ASVGF stage options. Zero values select the defaults.
type ASVGFOptions struct {
	// Number of wavelet passes; the step size doubles each pass.
	Iterations int

	// History blend weight at zero reprojection motion.
	TemporalAlpha float32

	// Decay rate of the history weight with reprojection motion magnitude.
	MotionDecay float32

	// Edge-stopping sensitivities for luminance, normal and depth.
	PhiColor  float32
	PhiNormal float32
	PhiDepth  float32
}

func (o ASVGFOptions) withDefaults() ASVGFOptions {
	if o.Iterations == 0 {
		o.Iterations = DefaultATrousIterations
	}
	if o.TemporalAlpha == 0 {
		o.TemporalAlpha = 0.8
	}
	if o.MotionDecay == 0 {
		o.MotionDecay = 64
	}
	if o.PhiColor == 0 {
		o.PhiColor = 4
	}
	if o.PhiNormal == 0 {
		o.PhiNormal = 128
	}
	if o.PhiDepth == 0 {
		o.PhiDepth = 1
	}
	return o
}

// The ASVGF stage denoises raw per-frame radiance by temporally reprojecting
// the previous frame's color through camera motion, estimating per-pixel
// variance and running iterative à-trous wavelet filtering guided by
// normal/depth/variance. When disabled the stage is a transparent
// pass-through.
type ASVGF struct {
	opts   ASVGFOptions
	logger log.Logger

	width   int
	height  int
	enabled bool

	frame    uint32
	history  *tracer.Framebuffer
	variance []float32
	ping     *tracer.Framebuffer
	pong     *tracer.Framebuffer

	prevView types.Mat4
	prevProj types.Mat4
}

// Create an ASVGF stage for the given render target size. The stage starts
// enabled.
func NewASVGF(width, height int, opts ASVGFOptions) (*ASVGF, error) {
	s := &ASVGF{
		opts:    opts.withDefaults(),
		logger:  log.New("asvgf"),
		enabled: true,
	}
	if err := s.Resize(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// Toggle the stage. A disabled stage copies input to output and mutates no
// state.
func (s *ASVGF) SetEnabled(enabled bool) {
	s.enabled = enabled
}

func (s *ASVGF) Enabled() bool {
	return s.enabled
}

// Drop temporal history and restart from the next frame. Reset clears
// history state only, never scene data, and is idempotent.
func (s *ASVGF) Reset() {
	s.history.Clear()
	for i := range s.variance {
		s.variance[i] = 0
	}
	s.frame = 0
}

// Reallocate all buffers for a new render target size. Implies a reset.
func (s *ASVGF) Resize(width, height int) error {
	var err error
	if s.history, err = tracer.NewFramebuffer(width, height); err != nil {
		return err
	}
	if s.ping, err = tracer.NewFramebuffer(width, height); err != nil {
		return err
	}
	if s.pong, err = tracer.NewFramebuffer(width, height); err != nil {
		return err
	}
	s.variance = make([]float32, width*height)
	s.width = width
	s.height = height
	s.frame = 0
	return nil
}

// Run the denoising pipeline for one frame: reprojection, variance
// estimation, wavelet filtering and composite. The filtered result is
// written to out and simultaneously fed back as the next frame's history.
func (s *ASVGF) Process(input *tracer.Framebuffer, gbuf *tracer.GBuffer, view, proj types.Mat4, out *tracer.Framebuffer) error {
	if !s.enabled {
		out.CopyFrom(input)
		return nil
	}
	if input.Width != s.width || input.Height != s.height || out.Width != s.width || out.Height != s.height {
		return ErrResolutionMismatch
	}
	if gbuf == nil {
		return ErrMissingGBuffer
	}

	s.reproject(input, gbuf, view, proj, s.ping)

	cur, alt := s.ping, s.pong
	step := 1
	for i := 0; i < s.opts.Iterations; i++ {
		s.atrous(cur, gbuf, step, alt)
		cur, alt = alt, cur
		step <<= 1
	}

	out.CopyFrom(cur)
	s.history.CopyFrom(cur)
	s.prevView = view
	s.prevProj = proj
	s.frame++
	return nil
}

// Temporal reprojection. Each pixel's view-space position is reconstructed
// from its linear depth and re-projected through the previous frame's
// view/projection matrices; when the result lands in bounds and history
// exists, current and history color are blended with a weight that decays
// with reprojection motion. Out-of-bounds pixels and the first frame pass
// the current color through unmodified.
func (s *ASVGF) reproject(input *tracer.Framebuffer, gbuf *tracer.GBuffer, view, proj types.Mat4, out *tracer.Framebuffer) {
	invProj := proj.Inv()
	invView := view.Inv()
	prevVP := s.prevProj.Mul4(s.prevView)

	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			c, alpha := input.At(x, y)
			depth := gbuf.DepthAt(x, y)

			blended := c
			variance := varianceEpsilon

			if s.frame > 0 && depth > 0 {
				u := (float32(x) + 0.5) / float32(s.width)
				v := (float32(y) + 0.5) / float32(s.height)
				ndc := mgl32.Vec4{2*u - 1, 1 - 2*v, -1, 1}

				// View-space position at the pixel's linear depth.
				near := invProj.Mul4x1(ndc)
				near = near.Mul(1 / near.W())
				scale := depth / -near.Z()
				viewPos := mgl32.Vec4{near.X() * scale, near.Y() * scale, -depth, 1}

				world := invView.Mul4x1(viewPos)
				prevClip := prevVP.Mul4x1(world)
				if prevClip.W() > 0 {
					pu := 0.5*prevClip.X()/prevClip.W() + 0.5
					pv := 0.5 - 0.5*prevClip.Y()/prevClip.W()
					px := int(pu * float32(s.width))
					py := int(pv * float32(s.height))

					if px >= 0 && py >= 0 && px < s.width && py < s.height {
						motion := types.Vec2{pu - u, pv - v}
						hist, _ := s.history.At(px, py)

						weight := s.opts.TemporalAlpha * expf(-float32(math.Hypot(float64(motion[0]), float64(motion[1])))*s.opts.MotionDecay)
						blended = types.LerpVec3(c, hist, weight)

						lumDiff := c.Luminance() - hist.Luminance()
						if est := lumDiff * lumDiff; est > variance {
							variance = est
						}
					}
				}
			}

			out.Set(x, y, blended, alpha)
			s.variance[y*s.width+x] = variance
		}
	}
}

// 1D B3-spline kernel underlying the 5x5 à-trous taps.
var atrousKernel = [5]float32{1.0 / 16, 1.0 / 4, 3.0 / 8, 1.0 / 4, 1.0 / 16}

// One à-trous wavelet pass with the given step size. Tap weights combine the
// fixed spatial kernel with normal, depth and luminance similarity; the
// luminance sigma widens where the estimated variance is high so noisy
// regions receive stronger smoothing.
func (s *ASVGF) atrous(src *tracer.Framebuffer, gbuf *tracer.GBuffer, step int, out *tracer.Framebuffer) {
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			c0, alpha := src.At(x, y)
			n0 := gbuf.NormalAt(x, y)
			d0 := gbuf.DepthAt(x, y)
			lum0 := c0.Luminance()

			sigmaL := s.opts.PhiColor * sqrtf(s.variance[y*s.width+x])
			if sigmaL < varianceEpsilon {
				sigmaL = varianceEpsilon
			}

			var sum types.Vec3
			var weightSum float32
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					sx := x + kx*step
					sy := y + ky*step
					if sx < 0 || sy < 0 || sx >= s.width || sy >= s.height {
						continue
					}

					cj, _ := src.At(sx, sy)
					nj := gbuf.NormalAt(sx, sy)
					dj := gbuf.DepthAt(sx, sy)

					weight := atrousKernel[kx+2] * atrousKernel[ky+2]
					weight *= powf(maxf(0, n0.Dot(nj)), s.opts.PhiNormal)
					weight *= expf(-absf(d0-dj) / s.opts.PhiDepth)
					weight *= expf(-absf(lum0-cj.Luminance()) / sigmaL)

					sum = sum.Add(cj.Mul(weight))
					weightSum += weight
				}
			}

			if weightSum > 0 {
				out.Set(x, y, sum.Mul(1/weightSum), alpha)
			} else {
				out.Set(x, y, c0, alpha)
			}
		}
	}
}

func expf(v float32) float32 {
	return float32(math.Exp(float64(v)))
}

func powf(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}

func sqrtf(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
