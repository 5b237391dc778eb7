package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/docimage/internal/config"
	"github.com/ironsheep/docimage/internal/imageio"
	"github.com/ironsheep/docimage/internal/logger"
	"github.com/ironsheep/docimage/internal/ocr"
	"github.com/ironsheep/docimage/internal/server"
	"github.com/ironsheep/docimage/raster"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var envFile string
	var cfg config.Config
	var log zerolog.Logger

	rootCmd := &cobra.Command{
		Use:   "docimage-mcp",
		Short: "Scanned document image tools",
		Long: `docimage-mcp estimates and corrects the skew of scanned pages,
crops, resizes and trims them, and runs OCR.

Without a subcommand it serves the tools over MCP on stdin/stdout.`,
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			if envFile != "" {
				cfg, err = config.Load(envFile)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return err
			}
			// Logging goes to stderr; stdout is for MCP protocol
			log = logger.NewConsole(os.Stderr, cfg.LogLevel)
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve(cfg, log)
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Read settings from this file instead of .env")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tools on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve(cfg, log)
		},
	}

	var lines bool
	skewCmd := &cobra.Command{
		Use:   "skew <image> [--lines]",
		Short: "Print the estimated skew angle of a page in degrees",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			det, err := cfg.Detector()
			if err != nil {
				return err
			}
			buf, err := imageio.Decode(args[0])
			if err != nil {
				return err
			}
			if lines {
				return printJSON(det.Lines(buf))
			}
			fmt.Printf("%.2f\n", det.Estimate(buf))
			return nil
		},
	}
	skewCmd.Flags().BoolVar(&lines, "lines", false, "Print the strongest Hough lines instead of the angle")

	deskewCmd := &cobra.Command{
		Use:   "deskew <input> <output>",
		Short: "Rotate a page level and save it",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			det, err := cfg.Detector()
			if err != nil {
				return err
			}
			buf, err := imageio.Decode(args[0])
			if err != nil {
				return err
			}
			out, angle, err := raster.DeskewWith(buf, det, cfg.Background)
			if err != nil {
				return err
			}
			if _, err := imageio.Save(out, args[1]); err != nil {
				return err
			}
			log.Info().
				Str("input", args[0]).
				Str("output", args[1]).
				Float64("angle", angle).
				Int("width", out.Width()).
				Int("height", out.Height()).
				Msg("deskewed")
			return nil
		},
	}

	var language string
	var deskew bool
	ocrCmd := &cobra.Command{
		Use:   "ocr <image> [--language <lang>] [--deskew]",
		Short: "Print the text recognized on a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			det, err := cfg.Detector()
			if err != nil {
				return err
			}
			buf, err := imageio.Decode(args[0])
			if err != nil {
				return err
			}
			prepared, angle, err := ocr.Preprocess(buf, ocr.Options{
				Deskew:     deskew,
				Detector:   det,
				Background: &cfg.Background,
			})
			if err != nil {
				return err
			}
			if language == "" {
				language = cfg.OCRLanguage
			}
			result, err := ocr.ExtractText(prepared, language)
			if err != nil {
				return err
			}
			log.Debug().Float64("deskew_angle", angle).Int("words", len(result.Regions)).Msg("ocr")
			fmt.Println(result.FullText)
			return nil
		},
	}
	ocrCmd.Flags().StringVar(&language, "language", "", "Tesseract language (default from DOCIMAGE_OCR_LANGUAGE)")
	ocrCmd.Flags().BoolVar(&deskew, "deskew", false, "Deskew the page before recognition")

	rootCmd.AddCommand(serveCmd, skewCmd, deskewCmd, ocrCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func serve(cfg config.Config, log zerolog.Logger) error {
	log.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Str("tesseract", ocr.Version()).
		Msg("starting MCP server")

	srv, err := server.New(cfg, log, Version)
	if err != nil {
		return err
	}
	return srv.Run()
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
