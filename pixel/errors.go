package pixel

import "fmt"

// MaxPixels is the largest buffer, in pixels, that any operation will
// allocate. At four bytes per pixel this is 1 GiB.
const MaxPixels = 1 << 28

// ValidationError reports parameters that would produce a degenerate
// (zero or negative sized) result. It is returned before any allocation.
type ValidationError struct {
	Op     string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid parameters: %s", e.Op, e.Reason)
}

// AllocationError reports a requested output buffer larger than MaxPixels.
// No partial result accompanies it.
type AllocationError struct {
	Op     string
	Width  int
	Height int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("%s: allocation failed: %dx%d exceeds %d pixels", e.Op, e.Width, e.Height, MaxPixels)
}

// CheckSize validates a prospective buffer size on behalf of operation op.
func CheckSize(op string, width, height int) error {
	if width <= 0 || height <= 0 {
		return &ValidationError{Op: op, Reason: fmt.Sprintf("target size %dx%d is empty", width, height)}
	}
	if width > MaxPixels/height {
		return &AllocationError{Op: op, Width: width, Height: height}
	}
	return nil
}
