package renderer

import "errors"

var (
	ErrNoSnapshot         = errors.New("renderer: no scene snapshot attached")
	ErrNoIntegrator       = errors.New("renderer: no integrator attached")
	ErrResolutionMismatch = errors.New("renderer: buffer resolution does not match render target")
	ErrMissingGBuffer     = errors.New("renderer: denoiser requires a geometry buffer")
)
