// Package server implements the MCP (Model Context Protocol) server that
// exposes the document image tools.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0, one message per line:
//   - Input: requests on stdin
//   - Output: responses on stdout
//
// Supported MCP methods are initialize, notifications/initialized,
// tools/list, tools/call and ping. Unknown methods get -32601, lines that
// are not JSON get -32700.
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_sample_color: Get color at pixel
//
// Skew:
//   - image_estimate_skew: Estimate page skew in degrees
//   - image_deskew: Estimate and correct page skew
//
// Geometry:
//   - image_rotate: Rotate by any angle onto a grown canvas
//   - image_crop: Crop a region given in pixels or physical units
//   - image_resize: Scale or resample to exact dimensions
//   - image_trim: Remove white margins
//   - image_add_border: Add a solid border
//
// OCR:
//   - image_ocr: Preprocess and recognize text
//   - image_detect_text_regions: Locate text blocks without reading them
//
// Image-producing tools return base64 PNG, or write the file named by
// output_path and return its path.
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the server. Tools
// never modify a cached image.
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC errors with code -32000 and the Go
// error string as data. Malformed tools/call params get -32602.
//
// # Usage
//
//	cfg, err := config.Load()
//	...
//	srv, err := server.New(cfg, log, version)
//	...
//	if err := srv.Run(); err != nil {
//	    log.Fatal().Err(err).Msg("server error")
//	}
package server
