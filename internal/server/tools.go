package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func withDefault(p map[string]interface{}, v interface{}) map[string]interface{} {
	p["default"] = v
	return p
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

var (
	pathProp       = prop("string", "Absolute path to the image file")
	outputPathProp = prop("string", "Optional file to write the result to; the format follows the extension (.png, .jpg, .gif, .tif, .bmp). When omitted the image is returned as base64 PNG")
	backgroundProp = prop("string", "Fill color for uncovered corners: #rrggbb, #aarrggbb, white, black or transparent. Defaults to the server's configured background")
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, alpha usage and file size. The decoded image is cached for later calls.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp,
			}, "path"),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp,
			}, "path"),
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color of a single pixel as hex, RGB, RGBA and HSL.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp,
				"x":    prop("integer", "X coordinate (0-based, from left)"),
				"y":    prop("integer", "Y coordinate (0-based, from top)"),
			}, "path", "x", "y"),
		},

		// Skew
		{
			Name:        "image_estimate_skew",
			Description: "Estimate the skew of a scanned text page in degrees. A positive angle means text lines descend to the right; rotating by the returned angle levels the page. Works within about ±20 degrees.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":          pathProp,
				"ink_threshold": prop("number", "Luminance below which a pixel counts as ink (0-255). Defaults to the server setting"),
				"top_k":         prop("integer", "Number of strongest lines averaged into the estimate. Defaults to the server setting"),
				"lines":         withDefault(prop("boolean", "Also return the strongest lines with their votes, angle and distance"), false),
			}, "path"),
		},
		{
			Name:        "image_deskew",
			Description: "Estimate the skew of a scanned page and rotate it level. Returns the angle applied and the corrected image.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":        pathProp,
				"background":  backgroundProp,
				"output_path": outputPathProp,
			}, "path"),
		},

		// Geometry
		{
			Name:        "image_rotate",
			Description: "Rotate an image counter-clockwise by any angle. The canvas grows to hold the whole rotated image.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":        pathProp,
				"degrees":     prop("number", "Rotation angle in degrees, counter-clockwise"),
				"background":  backgroundProp,
				"output_path": outputPathProp,
			}, "path", "degrees"),
		},
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region. Negative origins clamp to 0, a width or height of 0 extends to the image edge, and oversized regions are truncated.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":        pathProp,
				"x":           prop("integer", "Left edge"),
				"y":           prop("integer", "Top edge"),
				"width":       prop("integer", "Region width; 0 or less means to the right edge"),
				"height":      prop("integer", "Region height; 0 or less means to the bottom edge"),
				"unit":        withDefault(prop("string", "Unit of the region: px, mm, cm, in or pt"), "px"),
				"dpi":         prop("number", "Resolution used to convert physical units. Defaults to the server setting"),
				"scale":       withDefault(prop("number", "Optional scale factor applied after cropping (e.g., 2.0 to double size)"), 1.0),
				"output_path": outputPathProp,
			}, "path", "x", "y"),
		},
		{
			Name:        "image_resize",
			Description: "Resize an image with Lanczos resampling, either by a uniform scale factor or to an exact width and height.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":        pathProp,
				"scale":       prop("number", "Uniform scale factor; new dimensions are truncated to whole pixels"),
				"width":       prop("integer", "Exact target width (use with height instead of scale)"),
				"height":      prop("integer", "Exact target height (use with width instead of scale)"),
				"output_path": outputPathProp,
			}, "path"),
		},
		{
			Name:        "image_trim",
			Description: "Remove pure white (#FFFFFF, fully opaque) margins. Near-white pixels count as content. An all-white image is returned unchanged.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":        pathProp,
				"output_path": outputPathProp,
			}, "path"),
		},
		{
			Name:        "image_add_border",
			Description: "Surround an image with a solid border of the given width on every side.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":        pathProp,
				"width":       prop("integer", "Border width in pixels"),
				"color":       withDefault(prop("string", "Border color: #rrggbb, #aarrggbb, white, black or transparent"), "white"),
				"output_path": outputPathProp,
			}, "path", "width"),
		},

		// OCR
		{
			Name:        "image_ocr",
			Description: "Extract text with Tesseract OCR. The page can be deskewed, trimmed and denoised first; it is binarized unless binarize is false. Returns full text plus word bounding boxes with confidence.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":          pathProp,
				"language":      prop("string", "Tesseract language code (e.g., eng, deu). Defaults to the server setting"),
				"deskew":        withDefault(prop("boolean", "Level the page before recognition"), false),
				"trim":          withDefault(prop("boolean", "Remove white margins before recognition"), false),
				"denoise_sigma": prop("number", "Gaussian blur strength applied before binarization; 0 disables it"),
				"binarize":      withDefault(prop("boolean", "Reduce the page to black and white before recognition"), true),
				"region": objectSchema(map[string]interface{}{
					"x":      prop("integer", "Left edge"),
					"y":      prop("integer", "Top edge"),
					"width":  prop("integer", "Region width"),
					"height": prop("integer", "Region height"),
				}),
			}, "path"),
		},
		{
			Name:        "image_detect_text_regions",
			Description: "Find blocks of text without reading them. Returns block bounding boxes with confidence.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":           pathProp,
				"min_confidence": withDefault(prop("number", "Drop blocks below this confidence (0-1)"), 0.5),
			}, "path"),
		},
	}
}
