package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/akashtjohn/boundbox/internal/config"
	"github.com/akashtjohn/boundbox/pkg/adapters"
	"github.com/akashtjohn/boundbox/pkg/azure"
	"github.com/akashtjohn/boundbox/pkg/hocr"
	"github.com/akashtjohn/boundbox/pkg/pagexml"
	"github.com/akashtjohn/boundbox/pkg/tesseract"
	"github.com/akashtjohn/boundbox/pkg/vision"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the --config flag.
	cfgFile string
	// cfg is loaded before every command runs.
	cfg *config.Config
)

var RootCmd = &cobra.Command{
	Use:   "boundbox",
	Short: "Normalize, transform and merge OCR bounding boxes",
	Long: `boundbox reads the word and line boxes produced by OCR engines (Tesseract,
Azure Read, Google Vision, hOCR and PAGE XML), puts their corners into a
canonical order and lets you rotate, rescale, merge, crop and unwarp them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loader := config.NewLoaderWith(viper.New())
		loaded, err := loader.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		ll, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("log-level") && os.Getenv("LOG_LEVEL") == "" {
			ll = cfg.LogLevel
		}

		level := slog.LevelInfo
		switch strings.ToUpper(ll) {
		case "DEBUG":
			level = slog.LevelDebug
		case "WARN":
			level = slog.LevelWarn
		case "ERROR":
			level = slog.LevelError
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		// stdout carries command output
		handler := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(handler)

		if used := loader.ConfigFileUsed(); used != "" {
			slog.Debug("Loaded configuration", "file", used)
		}
		return nil
	},
}

func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	ll := os.Getenv("LOG_LEVEL")
	if ll == "" {
		ll = "INFO"
	}
	RootCmd.PersistentFlags().String("log-level", ll, "The logging level for the command")
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is ./boundbox.yaml or $XDG_CONFIG_HOME/boundbox/boundbox.yaml)")
}

// newRegistry returns every adapter the CLI and the server know about.
func newRegistry() *adapters.Registry {
	return adapters.NewRegistry(
		tesseract.New(),
		azure.New(),
		vision.New(),
		hocr.New(),
		pagexml.New(),
	)
}

// configureAdapter applies the --level flag to adapters that read more than one
// layout level.
func configureAdapter(a adapters.Adapter, level string) error {
	if level == "" {
		return nil
	}
	switch a := a.(type) {
	case *azure.Adapter:
		switch level {
		case "line":
			a.Level = azure.LevelLine
		case "word":
			a.Level = azure.LevelWord
		default:
			return fmt.Errorf("azure: unsupported level %q (want line or word)", level)
		}
	case *vision.Adapter:
		switch level {
		case "word":
			a.Level = vision.LevelWord
		case "paragraph":
			a.Level = vision.LevelParagraph
		case "block":
			a.Level = vision.LevelBlock
		case "annotation":
			a.Level = vision.LevelAnnotation
		default:
			return fmt.Errorf("vision: unsupported level %q (want word, paragraph, block or annotation)", level)
		}
	case *hocr.Adapter:
		switch level {
		case "word":
			a.Level = hocr.LevelWord
		case "line":
			a.Level = hocr.LevelLine
		default:
			return fmt.Errorf("hocr: unsupported level %q (want word or line)", level)
		}
	case *pagexml.Adapter:
		switch level {
		case "line":
			a.Level = pagexml.LevelLine
		case "word":
			a.Level = pagexml.LevelWord
		case "region":
			a.Level = pagexml.LevelRegion
		default:
			return fmt.Errorf("pagexml: unsupported level %q (want line, word or region)", level)
		}
	case *tesseract.Adapter:
		switch level {
		case "word":
			a.KeepEmpty = false
		case "all":
			a.KeepEmpty = true
		default:
			return fmt.Errorf("tesseract: unsupported level %q (want word or all)", level)
		}
	default:
		return fmt.Errorf("%s: adapter has no levels", a.Name())
	}
	return nil
}
