// Package ocr prepares scanned pages for text recognition and runs Tesseract
// over them.
//
// # Preprocessing
//
// Preprocess runs a page through a pipeline of stages:
//
//   - DeskewStage estimates the skew with a skew.Detector and rotates the
//     page level
//   - TrimStage crops pure white margins
//   - DenoiseStage applies a Gaussian blur
//   - BinarizeStage reduces the page to pure black and white
//
// Each stage is optional and configured through Options. Callers with other
// needs can build their own []Stage and run them with Page.Pipeline.
//
// # Recognition
//
// ExtractText, ExtractTextFromRegion and DetectTextRegions wrap
// github.com/otiai10/gosseract/v2. Tesseract and the data for every
// requested language must be installed:
//
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Set TESSDATA_PREFIX when the language data lives outside Tesseract's
// default search path.
//
// If word bounding boxes cannot be extracted, ExtractText still returns the
// recognized text with an empty Regions slice.
package ocr
