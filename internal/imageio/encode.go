package imageio

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/docimage/pixel"
)

// ImageResult carries an image back to an MCP client. Exactly one of
// ImageBase64 and Path is set.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
	Path        string `json:"path,omitempty"`
}

// EncodePNG returns buf as PNG bytes.
func EncodePNG(buf *pixel.Buffer) ([]byte, error) {
	var b bytes.Buffer
	if err := imaging.Encode(&b, buf.Image(), imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return b.Bytes(), nil
}

// Encode returns buf as a base64 PNG result.
func Encode(buf *pixel.Buffer) (*ImageResult, error) {
	data, err := EncodePNG(buf)
	if err != nil {
		return nil, err
	}
	return &ImageResult{
		Width:       buf.Width(),
		Height:      buf.Height(),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
	}, nil
}

// Save writes buf to path in the format named by its extension.
func Save(buf *pixel.Buffer, path string) (*ImageResult, error) {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return nil, fmt.Errorf("cannot save %s: %w", path, err)
	}
	if err := imaging.Save(buf.Image(), path); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}
	return &ImageResult{Width: buf.Width(), Height: buf.Height(), Path: path}, nil
}

// Output saves buf to path when path is non-empty and otherwise encodes it
// inline.
func Output(buf *pixel.Buffer, path string) (*ImageResult, error) {
	if path != "" {
		return Save(buf, path)
	}
	return Encode(buf)
}
