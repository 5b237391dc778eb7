// Package raster implements the geometric operations of a document-imaging
// pipeline on pixel.Buffer values: Resize, ResizeTo, Crop, Rotate, Deskew,
// Trim and AddBorder.
//
// Every operation is a pure function: it reads its input buffer and returns
// a newly allocated one. Trim's fallback path returns a clone, never the
// input itself.
//
// # Coordinate System
//
// Coordinates are 0-based with (0,0) at the top-left pixel. Rectangles are
// given by their top-left corner and extent in pixel units; a rectangle in
// any other unit must be converted with geometry.Rect.ToPixels first.
//
// # Error Handling
//
// Operations return either a valid buffer or one of two typed errors:
//   - *pixel.ValidationError: parameters that would produce an empty result,
//     detected before anything is allocated
//   - *pixel.AllocationError: a result larger than pixel.MaxPixels
//
// Clamping an oversized crop rectangle to the buffer is normal behavior, not
// an error.
//
// # Resampling
//
// Resize uses Lanczos resampling and Rotate uses bilinear interpolation,
// both from github.com/disintegration/imaging. Results are deterministic for
// a given input.
package raster
