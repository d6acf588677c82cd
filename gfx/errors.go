package gfx

import (
	"errors"
	"fmt"
	"strings"
)

// Acquiring the next surface texture can fail in ways that need different
// reactions from the caller, see Render.
var (
	// ErrSurfaceLost means the surface needs to be reconfigured before the
	// next frame. Resize with the current size and retry.
	ErrSurfaceLost = errors.New("surface lost")

	// ErrOutOfMemory is not recoverable, the application must terminate.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrSurfaceOutdated means the configuration no longer matches the
	// window. Resolves itself on the next frame.
	ErrSurfaceOutdated = errors.New("surface outdated")

	// ErrSurfaceTimeout means no texture became available in time.
	// Resolves itself on the next frame.
	ErrSurfaceTimeout = errors.New("surface acquisition timed out")
)

// classifyAcquire maps the error reported by Surface.GetCurrentTexture onto
// the sentinel errors above. The binding surfaces wgpu-native's message
// strings, so classification matches on them. Unknown messages are wrapped
// as is and end up in the log-and-retry branch of the caller.
func classifyAcquire(err error) error {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "out of memory") || strings.Contains(msg, "outofmemory"):
		return fmt.Errorf("%w: %s", ErrOutOfMemory, err)

	case strings.Contains(msg, "lost"):
		return fmt.Errorf("%w: %s", ErrSurfaceLost, err)

	case strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %s", ErrSurfaceOutdated, err)

	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return fmt.Errorf("%w: %s", ErrSurfaceTimeout, err)
	}

	return fmt.Errorf("acquire surface texture: %w", err)
}
