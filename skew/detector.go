// Package skew estimates the rotational skew of a scanned document image.
//
// The estimate comes from a discretized Hough transform over the lower edges
// of ink regions: the bottom pixels of text lines lie on straight baselines,
// so the angle whose accumulator buckets collect the most votes is the angle
// of those baselines.
//
// # Algorithm
//
//  1. Binarize: a pixel is ink when its luminance is below InkThreshold.
//  2. Candidates: only lower edges vote, i.e. ink pixels whose neighbor below
//     is not ink. This bounds the vote count by the ink perimeter rather than
//     its area.
//  3. Scan window: rows height/4 through height*3/4.
//  4. Each candidate votes once per angle for the bucket of its signed
//     distance d = y*cos(a) - x*sin(a), rounded to a whole pixel.
//  5. The TopK fullest buckets are kept and the mean of their angles is the
//     estimate.
//
// # Sign Convention
//
// Image y grows downward. A positive estimate means the baselines descend to
// the right; rotating the page counter-clockwise by the estimate levels them
// (see raster.Deskew).
//
// # Concurrency
//
// All working state (accumulator, trig tables) is allocated per call. A
// Detector is immutable and may be shared by any number of goroutines.
package skew

import (
	"fmt"
	"math"

	"github.com/ironsheep/docimage/pixel"
)

const (
	// DefaultInkThreshold is the luminance below which a pixel counts as ink.
	DefaultInkThreshold = 140
	// DefaultTopK is how many accumulator buckets are averaged.
	DefaultTopK = 20
	// DefaultMinAngle is the first tested angle in degrees.
	DefaultMinAngle = -20.0
	// DefaultAngleStep is the angular resolution in degrees.
	DefaultAngleStep = 0.2
	// DefaultAngleCount is the number of tested angles, covering [-20, +20).
	DefaultAngleCount = 200
)

// Options configures a Detector.
type Options struct {
	InkThreshold float64 // Luminance (0-255) below which a pixel is ink
	TopK         int     // Number of strongest buckets averaged into the estimate
	MinAngle     float64 // First tested angle in degrees
	AngleStep    float64 // Spacing between tested angles in degrees
	AngleCount   int     // Number of tested angles
}

// DefaultOptions returns the documented defaults: threshold 140, top 20
// buckets, 200 angles at 0.2 degree spacing from -20 degrees.
func DefaultOptions() Options {
	return Options{
		InkThreshold: DefaultInkThreshold,
		TopK:         DefaultTopK,
		MinAngle:     DefaultMinAngle,
		AngleStep:    DefaultAngleStep,
		AngleCount:   DefaultAngleCount,
	}
}

// Validate checks the options. The tested angles must lie within
// [-90, +90] degrees; that range is what makes the accumulator size in
// accumulatorSize sufficient for every vote.
func (o Options) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"ink threshold", o.InkThreshold},
		{"min angle", o.MinAngle},
		{"angle step", o.AngleStep},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s must be finite, got %v", f.name, f.v)
		}
	}
	if o.InkThreshold <= 0 || o.InkThreshold > 256 {
		return fmt.Errorf("ink threshold must be in (0, 256], got %v", o.InkThreshold)
	}
	if o.TopK < 1 {
		return fmt.Errorf("top-k must be at least 1, got %d", o.TopK)
	}
	if o.AngleCount < 1 {
		return fmt.Errorf("angle count must be at least 1, got %d", o.AngleCount)
	}
	if o.AngleStep <= 0 {
		return fmt.Errorf("angle step must be positive, got %v", o.AngleStep)
	}
	last := o.MinAngle + o.AngleStep*float64(o.AngleCount-1)
	if o.MinAngle < -90 || last > 90 {
		return fmt.Errorf("angles [%v, %v] fall outside [-90, 90]", o.MinAngle, last)
	}
	return nil
}

// Line is one accumulator bucket: every candidate point whose distance from
// the origin at Angle rounds to Distance.
type Line struct {
	Votes    int     `json:"votes"`
	Index    int     `json:"index"`    // Position in the accumulator
	Angle    float64 `json:"angle"`    // Degrees
	Distance int     `json:"distance"` // Signed distance from the origin in pixels
}

// Detector estimates skew angles.
type Detector struct {
	opts Options
}

// NewDetector returns a detector for the given options.
func NewDetector(opts Options) (*Detector, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid skew options: %w", err)
	}
	return &Detector{opts: opts}, nil
}

var defaultDetector = &Detector{opts: DefaultOptions()}

// Default returns a detector with DefaultOptions.
func Default() *Detector { return defaultDetector }

// Estimate returns the skew of buf in degrees using DefaultOptions.
func Estimate(buf *pixel.Buffer) float64 {
	return defaultDetector.Estimate(buf)
}

// Options returns the detector's configuration.
func (d *Detector) Options() Options { return d.opts }

// Estimate returns the mean angle, in degrees, of the TopK strongest
// accumulator buckets.
//
// When the image yields fewer than TopK non-empty buckets the missing slots
// are counted as bucket 0, whose angle is MinAngle, so sparse or blank
// images are biased toward MinAngle. A blank page therefore reports MinAngle.
// Use Lines to see only the buckets that actually received votes.
func (d *Detector) Estimate(buf *pixel.Buffer) float64 {
	lines := d.Lines(buf)
	sum := 0.0
	for _, l := range lines {
		sum += l.Angle
	}
	sum += float64(d.opts.TopK-len(lines)) * d.opts.MinAngle
	return sum / float64(d.opts.TopK)
}

// Lines returns up to TopK non-empty accumulator buckets, strongest first.
func (d *Detector) Lines(buf *pixel.Buffer) []Line {
	acc := d.vote(buf)
	top := newTopLines(d.opts.TopK)
	for i, v := range acc.counts {
		if v > 0 {
			top.offer(int(v), i)
		}
	}
	lines := top.sorted()
	for i := range lines {
		lines[i].Angle = acc.angle(lines[i].Index)
		lines[i].Distance = acc.distance(lines[i].Index)
	}
	return lines
}

// accumulator is the Hough vote table for one call. Bucket (dBucket, angle)
// lives at dBucket*angleCount + angleIndex.
type accumulator struct {
	counts     []int32
	width      int
	angleCount int
	minAngle   float64
	angleStep  float64
	sin, cos   []float64
}

// accumulatorSize returns the number of distance buckets for a width×height
// image. For |a| <= 90 degrees, x in [0, width) and y in [0, height),
// d = y*cos(a) - x*sin(a) lies in [-(width-1), (height-1)+(width-1)], so the
// offset bucket round(d)+width lies in [1, 2*width+height-2], strictly below
// 2*(width+height).
func accumulatorSize(width, height int) int {
	return 2 * (width + height)
}

func (d *Detector) newAccumulator(width, height int) *accumulator {
	n := d.opts.AngleCount
	acc := &accumulator{
		counts:     make([]int32, accumulatorSize(width, height)*n),
		width:      width,
		angleCount: n,
		minAngle:   d.opts.MinAngle,
		angleStep:  d.opts.AngleStep,
		sin:        make([]float64, n),
		cos:        make([]float64, n),
	}
	for i := 0; i < n; i++ {
		acc.sin[i], acc.cos[i] = math.Sincos(acc.angle(i) * math.Pi / 180)
	}
	return acc
}

func (a *accumulator) angle(index int) float64 {
	return a.minAngle + float64(index%a.angleCount)*a.angleStep
}

func (a *accumulator) distance(index int) int {
	return index/a.angleCount - a.width
}

// bucket returns the distance bucket of (x, y) at angle index i.
func (a *accumulator) bucket(x, y, i int) int {
	dist := float64(y)*a.cos[i] - float64(x)*a.sin[i]
	return int(math.Round(dist)) + a.width
}

func (a *accumulator) vote(x, y int) {
	for i := 0; i < a.angleCount; i++ {
		a.counts[a.bucket(x, y, i)*a.angleCount+i]++
	}
}

func (d *Detector) vote(buf *pixel.Buffer) *accumulator {
	w, h := buf.Width(), buf.Height()
	acc := d.newAccumulator(w, h)

	threshold := d.opts.InkThreshold
	ink := func(v uint32) bool { return pixel.Luminance(v) < threshold }

	yEnd := min(h*3/4, h-1)
	for y := h / 4; y <= yEnd; y++ {
		row := buf.Row(y)
		var below []uint32
		if y+1 < h {
			below = buf.Row(y + 1)
		}
		for x, v := range row {
			if !ink(v) {
				continue
			}
			if below != nil && ink(below[x]) {
				continue
			}
			acc.vote(x, y)
		}
	}
	return acc
}
