package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ironsheep/docimage/geometry"
	"github.com/ironsheep/docimage/internal/imageio"
	"github.com/ironsheep/docimage/internal/ocr"
	"github.com/ironsheep/docimage/pixel"
	"github.com/ironsheep/docimage/raster"
	"github.com/ironsheep/docimage/skew"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_deskew").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Str("tool", params.Name).Dur("elapsed", time.Since(start)).Err(err).Msg("tool failed")
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	s.log.Debug().Str("tool", params.Name).Dur("elapsed", time.Since(start)).Msg("tool call")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Skew
	case "image_estimate_skew":
		return s.handleImageEstimateSkew(args)
	case "image_deskew":
		return s.handleImageDeskew(args)

	// Geometry
	case "image_rotate":
		return s.handleImageRotate(args)
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_resize":
		return s.handleImageResize(args)
	case "image_trim":
		return s.handleImageTrim(args)
	case "image_add_border":
		return s.handleImageAddBorder(args)

	// OCR
	case "image_ocr":
		return s.handleImageOCR(args)
	case "image_detect_text_regions":
		return s.handleImageDetectTextRegions(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals args into v and checks that a path was given.
func decodeArgs(args json.RawMessage, v interface{ path() string }) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if v.path() == "" {
		return errors.New("path is required")
	}
	return nil
}

type pathArgs struct {
	Path string `json:"path"`
}

func (a *pathArgs) path() string { return a.Path }

// outputArgs is embedded by tools that produce an image.
type outputArgs struct {
	pathArgs
	OutputPath string `json:"output_path"`
}

// background parses a color argument, falling back to the configured
// background when empty.
func (s *Server) background(v string) (pixel.Color, error) {
	if v == "" {
		return s.cfg.Background, nil
	}
	return imageio.ParseColor(v)
}

// === Basic Image Information Handlers ===

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imageio.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imageio.GetDimensions(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	pathArgs
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imageio.SampleColor(buf, a.X, a.Y)
}

// === Skew Handlers ===

type imageEstimateSkewArgs struct {
	pathArgs
	InkThreshold *float64 `json:"ink_threshold"`
	TopK         *int     `json:"top_k"`
	Lines        bool     `json:"lines"`
}

// SkewResult reports an estimated skew angle.
type SkewResult struct {
	Angle float64     `json:"angle"`
	Lines []skew.Line `json:"lines,omitempty"`
}

// detectorFor returns the server's detector, or a new one when the call
// overrides its options.
func (s *Server) detectorFor(a *imageEstimateSkewArgs) (*skew.Detector, error) {
	if a.InkThreshold == nil && a.TopK == nil {
		return s.detector, nil
	}
	opts := s.detector.Options()
	if a.InkThreshold != nil {
		opts.InkThreshold = *a.InkThreshold
	}
	if a.TopK != nil {
		opts.TopK = *a.TopK
	}
	return skew.NewDetector(opts)
}

func (s *Server) handleImageEstimateSkew(args json.RawMessage) (interface{}, error) {
	var a imageEstimateSkewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	det, err := s.detectorFor(&a)
	if err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	result := &SkewResult{Angle: det.Estimate(buf)}
	if a.Lines {
		result.Lines = det.Lines(buf)
	}
	return result, nil
}

type imageDeskewArgs struct {
	outputArgs
	Background string `json:"background"`
}

// DeskewResult is the corrected image together with the angle applied.
type DeskewResult struct {
	Angle float64              `json:"angle"`
	Image *imageio.ImageResult `json:"image"`
}

func (s *Server) handleImageDeskew(args json.RawMessage) (interface{}, error) {
	var a imageDeskewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	bg, err := s.background(a.Background)
	if err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	out, angle, err := raster.DeskewWith(buf, s.detector, bg)
	if err != nil {
		return nil, err
	}
	img, err := imageio.Output(out, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &DeskewResult{Angle: angle, Image: img}, nil
}

// === Geometry Handlers ===

type imageRotateArgs struct {
	outputArgs
	Degrees    *float64 `json:"degrees"`
	Background string   `json:"background"`
}

func (s *Server) handleImageRotate(args json.RawMessage) (interface{}, error) {
	var a imageRotateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Degrees == nil {
		return nil, errors.New("degrees is required")
	}
	bg, err := s.background(a.Background)
	if err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	out, err := raster.RotateWith(buf, *a.Degrees, bg)
	if err != nil {
		return nil, err
	}
	return imageio.Output(out, a.OutputPath)
}

type imageCropArgs struct {
	outputArgs
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Unit   string  `json:"unit"`
	DPI    float64 `json:"dpi"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	unit, err := geometry.ParseUnit(a.Unit)
	if err != nil {
		return nil, err
	}
	if a.DPI == 0 {
		a.DPI = s.cfg.DPI
	}
	rect, err := geometry.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height, Unit: unit}.ToPixels(a.DPI)
	if err != nil {
		return nil, err
	}

	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := raster.Crop(buf, rect)
	if err != nil {
		return nil, err
	}
	if a.Scale != 0 && a.Scale != 1 {
		if out, err = raster.Resize(out, a.Scale); err != nil {
			return nil, err
		}
	}
	return imageio.Output(out, a.OutputPath)
}

type imageResizeArgs struct {
	outputArgs
	Scale  float64 `json:"scale"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	exact := a.Width != 0 || a.Height != 0
	if exact == (a.Scale != 0) {
		return nil, errors.New("give either scale or both width and height")
	}

	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	var out *pixel.Buffer
	if exact {
		out, err = raster.ResizeTo(buf, a.Width, a.Height)
	} else {
		out, err = raster.Resize(buf, a.Scale)
	}
	if err != nil {
		return nil, err
	}
	return imageio.Output(out, a.OutputPath)
}

func (s *Server) handleImageTrim(args json.RawMessage) (interface{}, error) {
	var a outputArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imageio.Output(raster.Trim(buf), a.OutputPath)
}

type imageAddBorderArgs struct {
	outputArgs
	Width *int   `json:"width"`
	Color string `json:"color"`
}

func (s *Server) handleImageAddBorder(args json.RawMessage) (interface{}, error) {
	var a imageAddBorderArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Width == nil {
		return nil, errors.New("width is required")
	}
	c := pixel.White
	if a.Color != "" {
		var err error
		if c, err = imageio.ParseColor(a.Color); err != nil {
			return nil, err
		}
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	out, err := raster.AddBorder(buf, c, *a.Width)
	if err != nil {
		return nil, err
	}
	return imageio.Output(out, a.OutputPath)
}

// === OCR Handler ===

type regionArgs struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type imageOCRArgs struct {
	pathArgs
	Language     string      `json:"language"`
	Deskew       bool        `json:"deskew"`
	Trim         bool        `json:"trim"`
	DenoiseSigma float64     `json:"denoise_sigma"`
	Binarize     *bool       `json:"binarize"`
	Region       *regionArgs `json:"region"`
}

// OCRResult adds the applied deskew angle to the recognized text.
type OCRResult struct {
	*ocr.OCRResult
	DeskewAngle float64 `json:"deskew_angle"`
}

func (s *Server) handleImageOCR(args json.RawMessage) (interface{}, error) {
	var a imageOCRArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = s.cfg.OCRLanguage
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var origin geometry.Point
	if a.Region != nil {
		r, err := raster.ClampRect(geometry.NewRect(a.Region.X, a.Region.Y, a.Region.Width, a.Region.Height), buf.Width(), buf.Height())
		if err != nil {
			return nil, err
		}
		if buf, err = raster.Crop(buf, r); err != nil {
			return nil, err
		}
		origin = r.Location()
	}

	bg := s.cfg.Background
	prepared, angle, err := ocr.Preprocess(buf, ocr.Options{
		Deskew:       a.Deskew,
		Detector:     s.detector,
		Background:   &bg,
		Trim:         a.Trim,
		DenoiseSigma: a.DenoiseSigma,
		SkipBinarize: a.Binarize != nil && !*a.Binarize,
	})
	if err != nil {
		return nil, err
	}

	result, err := ocr.ExtractText(prepared, a.Language)
	if err != nil {
		return nil, err
	}
	// Deskewing or trimming moves the page, so word bounds then stay in the
	// prepared image's coordinates.
	if !a.Deskew && !a.Trim {
		for i := range result.Regions {
			result.Regions[i].Bounds = result.Regions[i].Bounds.Offset(origin.X, origin.Y)
		}
	}
	return &OCRResult{OCRResult: result, DeskewAngle: angle}, nil
}

type imageDetectTextRegionsArgs struct {
	pathArgs
	MinConfidence *float64 `json:"min_confidence"`
}

func (s *Server) handleImageDetectTextRegions(args json.RawMessage) (interface{}, error) {
	var a imageDetectTextRegionsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	minConfidence := 0.5
	if a.MinConfidence != nil {
		minConfidence = *a.MinConfidence
	}
	if minConfidence < 0 || minConfidence > 1 {
		return nil, fmt.Errorf("min_confidence must be between 0 and 1, got %v", minConfidence)
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return ocr.DetectTextRegions(buf, minConfidence)
}
