// Command goinspect opens an interactive inspector on a JSON or YAML
// document, or on a snapshot of its own runtime state.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/goinspect"
	"github.com/reoring/goinspect/console"
	"github.com/reoring/goinspect/eval"
	"github.com/reoring/goinspect/i18n"
	"github.com/reoring/goinspect/internal/config"
)

var (
	verbose    bool
	configPath string
	pageLength int
	lang       string
	snapshot   bool
	noEval     bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "goinspect [file]",
	Short: "Interactively inspect a JSON/YAML document or the process runtime",
	Long: `goinspect loads a document (JSON or YAML, chosen by extension) and opens
an inspector on it. Type a field key or its [index] to drill in, "up" to come
back, "help" for the command list. Object keys that read as names are typed
bare and may be abbreviated; other keys are typed quoted ("two words"), and a
key shadowed by a command name is reached by its [index]. Anything else is
evaluated as Go, with the current object bound to goinspect.Self.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		zc.OutputPaths = []string{"stderr"}
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.Flags().IntVarP(&pageLength, "page-length", "n", 0, "fields per page (default: fit the terminal)")
	rootCmd.Flags().StringVar(&lang, "lang", "", "message language (en, ja)")
	rootCmd.Flags().BoolVar(&snapshot, "runtime", false, "inspect a snapshot of this process instead of a file")
	rootCmd.Flags().BoolVar(&noEval, "no-eval", false, "disable Go expression evaluation")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("page-length") {
		cfg.PageLength = pageLength
	}
	if cmd.Flags().Changed("lang") {
		cfg.Lang = lang
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	i18n.SetLanguage(cfg.Lang)

	var doc any
	switch {
	case snapshot:
		doc = takeSnapshot()
	case len(args) == 1:
		if doc, err = loadDocument(args[0], logger); err != nil {
			return err
		}
	default:
		return errors.New("goinspect: give a file to inspect or --runtime")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	opts, closeFn, err := sessionOptions(cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return goinspect.Inspect(ctx, &doc, opts...)
}

func sessionOptions(cfg config.Config) ([]goinspect.Option, func(), error) {
	closeFn := func() {}
	opts := []goinspect.Option{
		goinspect.WithLogger(logger),
		goinspect.WithOutput(os.Stdout),
		goinspect.WithPrompt(cfg.Prompt),
		goinspect.WithStripNull(cfg.StripNull),
		goinspect.WithValueWidth(cfg.ValueWidth),
		goinspect.WithExtractors(documentExtractors()),
	}
	n := cfg.PageLength
	if n == 0 {
		n = console.PageLength(os.Stdout, goinspect.DefaultPageLength)
	}
	opts = append(opts, goinspect.WithPageLength(n))

	if console.IsTerminal(os.Stdin) {
		c, err := console.New(console.Config{HistoryFile: cfg.HistoryFile})
		if err != nil {
			return nil, nil, err
		}
		closeFn = func() { _ = c.Close() }
		opts = append(opts, goinspect.WithLineReader(c))
	} else {
		opts = append(opts, goinspect.WithLineReader(goinspect.NewLineReader(os.Stdin, os.Stdout)))
	}

	if !noEval {
		ev, err := eval.New(eval.WithOutput(os.Stdout, os.Stderr))
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("goinspect: starting evaluator: %w", err)
		}
		opts = append(opts, goinspect.WithEvaluator(ev))
	}
	for _, p := range cfg.Probes {
		if p == "header" {
			opts = append(opts, goinspect.WithProbes(goinspect.HeaderProbe{}))
		}
	}
	return opts, closeFn, nil
}
