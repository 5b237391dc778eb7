package ocr

import (
	"fmt"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"

	"github.com/ironsheep/docimage/pixel"
	"github.com/ironsheep/docimage/raster"
	"github.com/ironsheep/docimage/skew"
)

// Page is the state passed between preprocessing stages.
type Page struct {
	Buf *pixel.Buffer

	// Angle is the rotation, in degrees, a DeskewStage applied. Zero when
	// the page was not deskewed.
	Angle float64
}

// Stage is one step of a preprocessing pipeline. It replaces p.Buf with its
// output.
type Stage interface {
	Process(p *Page) error
}

// Pipeline runs stages over p in order and stops at the first error.
func (p *Page) Pipeline(stages ...Stage) error {
	for _, stage := range stages {
		if err := stage.Process(p); err != nil {
			return err
		}
	}
	return nil
}

// DeskewStage rotates the page by its estimated skew. A nil Detector means
// skew.Default and a nil Background means raster.DefaultBackground.
type DeskewStage struct {
	Detector   *skew.Detector
	Background *pixel.Color
}

func (s *DeskewStage) Process(p *Page) error {
	det := s.Detector
	if det == nil {
		det = skew.Default()
	}
	bg := raster.DefaultBackground
	if s.Background != nil {
		bg = *s.Background
	}
	out, angle, err := raster.DeskewWith(p.Buf, det, bg)
	if err != nil {
		return fmt.Errorf("deskew: %w", err)
	}
	p.Buf = out
	p.Angle = angle
	return nil
}

// TrimStage crops pure white margins.
type TrimStage struct{}

func (s *TrimStage) Process(p *Page) error {
	p.Buf = raster.Trim(p.Buf)
	return nil
}

// DenoiseStage applies a Gaussian blur. Higher Sigma values blur more.
type DenoiseStage struct {
	Sigma float64
}

func (s *DenoiseStage) Process(p *Page) error {
	out, err := pixel.FromImage(blur.Gaussian(p.Buf.Image(), s.Sigma))
	if err != nil {
		return fmt.Errorf("denoise: %w", err)
	}
	p.Buf = out
	return nil
}

// BinarizeStage converts the page to grayscale and then to pure black and
// white: pixels at or above Level become white, the rest black.
type BinarizeStage struct {
	Level uint8
}

func (s *BinarizeStage) Process(p *Page) error {
	gray := effect.Grayscale(p.Buf.Image())
	out, err := pixel.FromImage(segment.Threshold(gray, s.Level))
	if err != nil {
		return fmt.Errorf("binarize: %w", err)
	}
	p.Buf = out
	return nil
}

// DefaultBinarizeLevel matches the skew detector's ink threshold.
const DefaultBinarizeLevel = uint8(skew.DefaultInkThreshold)

// Options selects the preprocessing stages. The zero value binarizes only.
type Options struct {
	Deskew     bool
	Detector   *skew.Detector
	Background *pixel.Color

	Trim bool

	// DenoiseSigma enables a Gaussian blur when positive.
	DenoiseSigma float64

	// SkipBinarize leaves the page in color.
	SkipBinarize bool

	// BinarizeLevel is the luminance cut-off; zero means
	// DefaultBinarizeLevel.
	BinarizeLevel uint8
}

// Stages returns the pipeline o describes: deskew, trim, denoise, binarize.
func (o Options) Stages() []Stage {
	var stages []Stage
	if o.Deskew {
		stages = append(stages, &DeskewStage{Detector: o.Detector, Background: o.Background})
	}
	if o.Trim {
		stages = append(stages, &TrimStage{})
	}
	if o.DenoiseSigma > 0 {
		stages = append(stages, &DenoiseStage{Sigma: o.DenoiseSigma})
	}
	if !o.SkipBinarize {
		level := o.BinarizeLevel
		if level == 0 {
			level = DefaultBinarizeLevel
		}
		stages = append(stages, &BinarizeStage{Level: level})
	}
	return stages
}

// Preprocess prepares buf for recognition. It returns the processed buffer
// and the deskew angle applied, which is zero unless opts.Deskew is set.
// buf itself is never modified.
func Preprocess(buf *pixel.Buffer, opts Options) (*pixel.Buffer, float64, error) {
	p := &Page{Buf: buf}
	if err := p.Pipeline(opts.Stages()...); err != nil {
		return nil, 0, err
	}
	if p.Buf == buf {
		p.Buf = buf.Clone()
	}
	return p.Buf, p.Angle, nil
}
