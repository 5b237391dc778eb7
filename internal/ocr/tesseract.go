package ocr

import (
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/docimage/geometry"
	"github.com/ironsheep/docimage/internal/imageio"
	"github.com/ironsheep/docimage/pixel"
	"github.com/ironsheep/docimage/raster"
)

// Bounds is a bounding box in pixel coordinates; (X2, Y2) is exclusive.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func boundsOf(r image.Rectangle) Bounds {
	return Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// Offset returns b moved by (dx, dy).
func (b Bounds) Offset(dx, dy int) Bounds {
	return Bounds{X1: b.X1 + dx, Y1: b.Y1 + dy, X2: b.X2 + dx, Y2: b.Y2 + dy}
}

// TextRegion is one recognized word.
type TextRegion struct {
	Text string `json:"text"`

	// Confidence runs from 0 to 1.
	Confidence float64 `json:"confidence"`

	Bounds Bounds `json:"bounds"`
}

// OCRResult holds the recognized text of an image.
type OCRResult struct {
	// FullText keeps Tesseract's spacing and line breaks.
	FullText string `json:"full_text"`

	// Regions may be empty even when FullText is not.
	Regions []TextRegion `json:"regions"`
}

// TextRegionBox is the location of a block of text without its content.
type TextRegionBox struct {
	Bounds     Bounds  `json:"bounds"`
	Confidence float64 `json:"confidence"`
}

// DetectTextRegionsResult lists the text blocks found in an image.
type DetectTextRegionsResult struct {
	Regions []TextRegionBox `json:"regions"`
	Count   int             `json:"count"`
}

// newClient returns a Tesseract client loaded with buf as a PNG.
// The caller must Close it.
func newClient(buf *pixel.Buffer) (*gosseract.Client, error) {
	data, err := imageio.EncodePNG(buf)
	if err != nil {
		return nil, err
	}
	client := gosseract.NewClient()
	if err := client.SetImageFromBytes(data); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	return client, nil
}

// ExtractText recognizes the text in buf. language is a Tesseract language
// code such as "eng"; its data must be installed.
func ExtractText(buf *pixel.Buffer, language string) (*OCRResult, error) {
	client, err := newClient(buf)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return &OCRResult{FullText: text, Regions: []TextRegion{}}, nil
	}
	return &OCRResult{FullText: text, Regions: wordRegions(boxes)}, nil
}

func wordRegions(boxes []gosseract.BoundingBox) []TextRegion {
	regions := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		regions = append(regions, TextRegion{
			Text:       box.Word,
			Confidence: box.Confidence / 100,
			Bounds:     boundsOf(box.Box),
		})
	}
	return regions
}

// ExtractTextFromRegion recognizes the text inside rect, which is resolved
// the way raster.Crop resolves it. Word bounds are reported in buf's
// coordinates, not the region's.
func ExtractTextFromRegion(buf *pixel.Buffer, rect geometry.Rect, language string) (*OCRResult, error) {
	r, err := raster.ClampRect(rect, buf.Width(), buf.Height())
	if err != nil {
		return nil, err
	}
	cropped, err := raster.Crop(buf, r)
	if err != nil {
		return nil, err
	}

	result, err := ExtractText(cropped, language)
	if err != nil {
		return nil, err
	}
	for i := range result.Regions {
		result.Regions[i].Bounds = result.Regions[i].Bounds.Offset(r.X, r.Y)
	}
	return result, nil
}

// DetectTextRegions finds blocks of text without reading them. Blocks whose
// confidence is below minConfidence (0 to 1) are dropped.
func DetectTextRegions(buf *pixel.Buffer, minConfidence float64) (*DetectTextRegionsResult, error) {
	client, err := newClient(buf)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_BLOCK)
	if err != nil {
		return nil, fmt.Errorf("failed to get text regions: %w", err)
	}
	return blockRegions(boxes, minConfidence), nil
}

func blockRegions(boxes []gosseract.BoundingBox, minConfidence float64) *DetectTextRegionsResult {
	regions := make([]TextRegionBox, 0)
	for _, box := range boxes {
		confidence := box.Confidence / 100
		if confidence < minConfidence {
			continue
		}
		regions = append(regions, TextRegionBox{Bounds: boundsOf(box.Box), Confidence: confidence})
	}
	return &DetectTextRegionsResult{Regions: regions, Count: len(regions)}
}

// Version reports the linked Tesseract version.
func Version() string {
	return gosseract.Version()
}
