// Package imageio moves pixel buffers between files, memory and the MCP wire
// format.
//
// Decoding goes through github.com/disintegration/imaging, so every format
// it understands (PNG, JPEG, GIF, TIFF, BMP) can be loaded, and JPEG EXIF
// orientation is applied on load. Decoded images are converted to
// *pixel.Buffer at once; nothing outside this package sees image.Image.
//
// # Caching
//
// Cache keeps decoded buffers keyed by the exact path string. A cached
// buffer is shared between callers and must be treated as read-only; every
// operation in package raster returns a new buffer, so that is the normal
// case.
//
// # Colors
//
// SampleColor reports a pixel in hex, RGB, RGBA and HSL form. ParseColor
// accepts "#rrggbb", "#aarrggbb" and the names white, black and transparent.
package imageio
