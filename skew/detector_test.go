package skew

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/docimage/pixel"
)

// whitePage returns an opaque white buffer.
func whitePage(t *testing.T, width, height int) *pixel.Buffer {
	t.Helper()
	buf, err := pixel.NewFilled(width, height, pixel.White)
	require.NoError(t, err)
	return buf
}

// drawTiltedLine draws a black line starting at (x0, y0), length pixels long
// horizontally, descending to the right at the given angle in degrees.
func drawTiltedLine(buf *pixel.Buffer, x0, y0, length, thickness int, degrees float64) {
	slope := math.Tan(degrees * math.Pi / 180)
	for x := x0; x < x0+length; x++ {
		y := y0 + int(math.Round(float64(x-x0)*slope))
		for t := 0; t < thickness; t++ {
			buf.SetPixel(x, y+t, pixel.Black)
		}
	}
}

// textPage simulates a page of text baselines tilted by degrees.
func textPage(t *testing.T, degrees float64) *pixel.Buffer {
	t.Helper()
	buf := whitePage(t, 600, 400)
	for y := 40; y < 360; y += 20 {
		drawTiltedLine(buf, 50, y, 500, 2, degrees)
	}
	return buf
}

func TestEstimate_SingleTiltedLine(t *testing.T) {
	buf := whitePage(t, 200, 100)
	drawTiltedLine(buf, 25, 50, 150, 1, 5.0)

	angle := Estimate(buf)
	require.InDelta(t, 5.0, angle, 0.5)
}

func TestEstimate_TextPage(t *testing.T) {
	for _, want := range []float64{-7, -2.5, 0, 3, 12} {
		buf := textPage(t, want)
		got := Estimate(buf)
		t.Logf("tilt %5.1f: estimate %6.2f", want, got)
		require.InDelta(t, want, got, 0.5)
	}
}

func TestEstimate_Deterministic(t *testing.T) {
	buf := textPage(t, 4)
	first := Estimate(buf)
	for i := 0; i < 3; i++ {
		require.Equal(t, first, Estimate(buf))
	}
}

func TestEstimate_Concurrent(t *testing.T) {
	buf := textPage(t, -3)
	want := Estimate(buf)

	var wg sync.WaitGroup
	results := make([]float64, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Estimate(buf)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, want, got)
	}
}

func TestEstimate_BlankPageReportsMinAngle(t *testing.T) {
	buf := whitePage(t, 120, 80)

	det := Default()
	require.Empty(t, det.Lines(buf))
	require.Equal(t, DefaultMinAngle, det.Estimate(buf))
}

func TestEstimate_SparseImagePadsWithMinAngle(t *testing.T) {
	opts := DefaultOptions()
	opts.MinAngle = -10
	opts.AngleStep = 10
	opts.AngleCount = 2
	opts.TopK = 4
	det, err := NewDetector(opts)
	require.NoError(t, err)

	// One ink pixel votes into exactly one bucket per angle, so only two of
	// the four slots are filled.
	buf := whitePage(t, 10, 10)
	buf.SetPixel(5, 5, pixel.Black)

	lines := det.Lines(buf)
	require.Len(t, lines, 2)
	for _, l := range lines {
		require.Equal(t, 1, l.Votes)
	}
	// (-10 + 0 + 2*-10) / 4
	require.InDelta(t, -7.5, det.Estimate(buf), 1e-9)
}

func TestEstimate_InkThreshold(t *testing.T) {
	// Mid-gray lines are ink at the default threshold but not at a lower one.
	buf := whitePage(t, 300, 200)
	gray := pixel.RGB(120, 120, 120)
	for y := 60; y < 140; y += 10 {
		for x := 20; x < 280; x++ {
			buf.SetPixel(x, y, gray)
		}
	}

	require.NotEmpty(t, Default().Lines(buf))

	opts := DefaultOptions()
	opts.InkThreshold = 100
	det, err := NewDetector(opts)
	require.NoError(t, err)
	require.Empty(t, det.Lines(buf))
}

func TestLines_StrongestFirst(t *testing.T) {
	buf := textPage(t, 2)
	lines := Default().Lines(buf)

	require.Len(t, lines, DefaultTopK)
	for i := 1; i < len(lines); i++ {
		require.GreaterOrEqual(t, lines[i-1].Votes, lines[i].Votes)
	}
	require.InDelta(t, 2.0, lines[0].Angle, 0.5)
}

func TestLines_OnlyLowerEdgesVote(t *testing.T) {
	opts := DefaultOptions()
	opts.MinAngle = 0
	opts.AngleCount = 1
	opts.TopK = 1
	det, err := NewDetector(opts)
	require.NoError(t, err)

	// A solid 5-row bar has one lower edge row of 40 pixels.
	buf := whitePage(t, 60, 40)
	for y := 15; y < 20; y++ {
		for x := 10; x < 50; x++ {
			buf.SetPixel(x, y, pixel.Black)
		}
	}

	lines := det.Lines(buf)
	require.Len(t, lines, 1)
	require.Equal(t, 40, lines[0].Votes)
	require.Equal(t, 19, lines[0].Distance)
}

func TestLines_ScanWindow(t *testing.T) {
	opts := DefaultOptions()
	opts.MinAngle = 0
	opts.AngleCount = 1
	det, err := NewDetector(opts)
	require.NoError(t, err)

	// Rows outside [height/4, height*3/4] never vote.
	buf := whitePage(t, 50, 100)
	for x := 0; x < 50; x++ {
		buf.SetPixel(x, 10, pixel.Black)
		buf.SetPixel(x, 90, pixel.Black)
	}
	require.Empty(t, det.Lines(buf))

	for x := 0; x < 50; x++ {
		buf.SetPixel(x, 75, pixel.Black)
	}
	require.Len(t, det.Lines(buf), 1)
}

func TestLines_BottomRowIsLowerEdge(t *testing.T) {
	opts := DefaultOptions()
	opts.MinAngle = 0
	opts.AngleCount = 1
	det, err := NewDetector(opts)
	require.NoError(t, err)

	buf := whitePage(t, 8, 1)
	buf.SetPixel(3, 0, pixel.Black)
	require.Len(t, det.Lines(buf), 1)
}

func TestAccumulator_IndexAlwaysInRange(t *testing.T) {
	full := Options{InkThreshold: 140, TopK: 1, MinAngle: -90, AngleStep: 0.5, AngleCount: 361}
	require.NoError(t, full.Validate())

	sizes := [][2]int{{1, 1}, {1, 50}, {50, 1}, {3, 7}, {200, 100}, {640, 480}, {2550, 3300}}
	for _, opts := range []Options{DefaultOptions(), full} {
		det, err := NewDetector(opts)
		require.NoError(t, err)

		for _, s := range sizes {
			w, h := s[0], s[1]
			acc := det.newAccumulator(w, h)
			limit := accumulatorSize(w, h)
			// d is linear in x and y, so its extremes are at the corners.
			corners := [][2]int{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}}
			for i := 0; i < opts.AngleCount; i++ {
				for _, c := range corners {
					b := acc.bucket(c[0], c[1], i)
					if b < 0 || b >= limit {
						t.Fatalf("%dx%d angle %v corner %v: bucket %d outside [0,%d)",
							w, h, acc.angle(i), c, b, limit)
					}
					if idx := b*acc.angleCount + i; idx >= len(acc.counts) {
						t.Fatalf("%dx%d: index %d beyond accumulator %d", w, h, idx, len(acc.counts))
					}
				}
			}
		}
	}
}

func TestAccumulator_CheckerboardAllAngles(t *testing.T) {
	opts := Options{InkThreshold: 140, TopK: 5, MinAngle: -90, AngleStep: 1, AngleCount: 181}
	det, err := NewDetector(opts)
	require.NoError(t, err)

	// Half the pixels in the scan window are lower edges, including ones in
	// the first and last columns.
	buf := whitePage(t, 37, 23)
	for y := 0; y < 23; y++ {
		for x := 0; x < 37; x++ {
			if (x+y)%2 == 0 {
				buf.SetPixel(x, y, pixel.Black)
			}
		}
	}
	require.NotPanics(t, func() { det.Estimate(buf) })
	require.Len(t, det.Lines(buf), 5)
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero threshold", func(o *Options) { o.InkThreshold = 0 }},
		{"threshold too high", func(o *Options) { o.InkThreshold = 300 }},
		{"zero top-k", func(o *Options) { o.TopK = 0 }},
		{"zero angles", func(o *Options) { o.AngleCount = 0 }},
		{"negative step", func(o *Options) { o.AngleStep = -0.1 }},
		{"below -90", func(o *Options) { o.MinAngle = -91 }},
		{"beyond 90", func(o *Options) { o.MinAngle = 80; o.AngleStep = 1; o.AngleCount = 20 }},
		{"NaN threshold", func(o *Options) { o.InkThreshold = math.NaN() }},
		{"NaN min angle", func(o *Options) { o.MinAngle = math.NaN() }},
		{"NaN step", func(o *Options) { o.AngleStep = math.NaN() }},
		{"infinite step", func(o *Options) { o.AngleStep = math.Inf(1) }},
		{"infinite min angle", func(o *Options) { o.MinAngle = math.Inf(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			_, err := NewDetector(opts)
			require.Error(t, err)
		})
	}

	require.NoError(t, DefaultOptions().Validate())
}
