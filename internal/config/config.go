// Package config reads server and CLI settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ironsheep/docimage/internal/imageio"
	"github.com/ironsheep/docimage/internal/logger"
	"github.com/ironsheep/docimage/pixel"
	"github.com/ironsheep/docimage/skew"
)

// Environment variable names.
const (
	EnvLogLevel     = "DOCIMAGE_LOG_LEVEL"
	EnvInkThreshold = "DOCIMAGE_INK_THRESHOLD"
	EnvTopK         = "DOCIMAGE_TOP_K"
	EnvBackground   = "DOCIMAGE_BACKGROUND"
	EnvDPI          = "DOCIMAGE_DPI"
	EnvOCRLanguage  = "DOCIMAGE_OCR_LANGUAGE"
)

// DefaultDPI is the resolution assumed when converting physical units.
const DefaultDPI = 300

// Config holds every tunable setting.
type Config struct {
	LogLevel zerolog.Level

	// InkThreshold and TopK feed the skew detector.
	InkThreshold float64
	TopK         int

	// Background fills the corners rotation uncovers.
	Background pixel.Color

	DPI         float64
	OCRLanguage string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel:     zerolog.InfoLevel,
		InkThreshold: skew.DefaultInkThreshold,
		TopK:         skew.DefaultTopK,
		Background:   pixel.White,
		DPI:          DefaultDPI,
		OCRLanguage:  "eng",
	}
}

// Load reads settings from the process environment, falling back to the
// given .env files (".env" when none are named). Missing files are
// skipped; variables already in the environment win over file values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	fileVars := make(map[string]string)
	for _, f := range files {
		vars, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("failed to read %s: %w", f, err)
		}
		for k, v := range vars {
			if _, ok := fileVars[k]; !ok {
				fileVars[k] = v
			}
		}
	}

	return FromEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	})
}

// FromEnv builds a Config from lookup, which has the signature of
// os.LookupEnv. Unset or empty variables keep their defaults.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	if v, ok := get(EnvLogLevel); ok {
		level, err := logger.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}
	if v, ok := get(EnvInkThreshold); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvInkThreshold, err)
		}
		cfg.InkThreshold = f
	}
	if v, ok := get(EnvTopK); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTopK, err)
		}
		cfg.TopK = n
	}
	if v, ok := get(EnvBackground); ok {
		c, err := imageio.ParseColor(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvBackground, err)
		}
		cfg.Background = c
	}
	if v, ok := get(EnvDPI); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvDPI, err)
		}
		cfg.DPI = f
	}
	if v, ok := get(EnvOCRLanguage); ok {
		cfg.OCRLanguage = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings no component can work with.
func (c Config) Validate() error {
	if !(c.DPI > 0) || math.IsInf(c.DPI, 0) {
		return fmt.Errorf("%s must be positive, got %v", EnvDPI, c.DPI)
	}
	if err := c.SkewOptions().Validate(); err != nil {
		return fmt.Errorf("invalid skew settings: %w", err)
	}
	return nil
}

// SkewOptions returns the detector options c describes.
func (c Config) SkewOptions() skew.Options {
	opts := skew.DefaultOptions()
	opts.InkThreshold = c.InkThreshold
	opts.TopK = c.TopK
	return opts
}

// Detector builds a skew detector from c.
func (c Config) Detector() (*skew.Detector, error) {
	return skew.NewDetector(c.SkewOptions())
}
