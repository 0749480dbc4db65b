package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mpataki/figgen/internal/config"
	"github.com/mpataki/figgen/internal/gateway"
	"github.com/mpataki/figgen/internal/models"
	"github.com/mpataki/figgen/internal/pipeline"
	"github.com/mpataki/figgen/internal/reference"
	"github.com/mpataki/figgen/internal/storage"
	"github.com/mpataki/figgen/internal/tui"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "figgen",
		Short: "Academic figure generation pipeline",
		Long: `figgen turns a methodology description or raw data plus a visual intent
into a publication-ready figure through an iterative plan/render/critique
pipeline. Run without arguments to browse past runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The TUI owns the terminal; log lines would corrupt it
			if cmd.Name() == "figgen" {
				return nil
			}
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newPlotCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newStatusCommand())
	rootCmd.AddCommand(newDeleteCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStorage() (*config.Config, *storage.Storage, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return cfg, store, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	_, store, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	app := tui.NewApp(store)
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err = p.Run()
	return err
}

// pipelineFlags are the knobs shared by generate and plot.
type pipelineFlags struct {
	referenceDir string
	filterScript string
	iterations   int
	outputDir    string
	provider     string
}

func addPipelineFlags(cmd *cobra.Command, f *pipelineFlags) {
	cmd.Flags().StringVar(&f.referenceDir, "reference-dir", "references", "Reference set directory with index.json")
	cmd.Flags().StringVar(&f.filterScript, "filter", "", "Lua script pre-filtering the reference pool")
	cmd.Flags().IntVar(&f.iterations, "iterations", 0, "Refinement iteration cap (default 3)")
	cmd.Flags().StringVar(&f.outputDir, "output-dir", "", "Base output directory (default outputs)")
	cmd.Flags().StringVar(&f.provider, "provider", "", "Model provider: gemini or openai")
}

func newGenerateCommand() *cobra.Command {
	var input, caption string
	var width, height int
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a methodology diagram",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Missing input is the one outright abort
			source, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}

			req := models.Request{
				Context: string(source),
				Intent:  caption,
				Mode:    models.ModeDiagram,
			}
			return executePipeline(cmd.Context(), req, flags, width, height)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Path to text file with the methodology section")
	cmd.Flags().StringVar(&caption, "caption", "", "Figure caption / communicative intent")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("caption")
	cmd.Flags().IntVar(&width, "width", 0, "Requested width in pixels (default 1792)")
	cmd.Flags().IntVar(&height, "height", 0, "Requested height in pixels (default 1024)")
	addPipelineFlags(cmd, &flags)

	return cmd
}

func newPlotCommand() *cobra.Command {
	var dataFile, intent string
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Generate a statistical plot from raw data",
		RunE: func(cmd *cobra.Command, args []string) error {
			rawData, err := os.ReadFile(dataFile)
			if err != nil {
				return fmt.Errorf("failed to read data file: %w", err)
			}

			req := models.Request{
				Context: string(rawData),
				Intent:  intent,
				Mode:    models.ModePlot,
				RawData: string(rawData),
			}
			return executePipeline(cmd.Context(), req, flags, 0, 0)
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "Path to JSON file with raw data")
	cmd.Flags().StringVar(&intent, "intent", "", "Visual intent / figure caption")
	cmd.MarkFlagRequired("data")
	cmd.MarkFlagRequired("intent")
	addPipelineFlags(cmd, &flags)

	return cmd
}

func executePipeline(parent context.Context, req models.Request, flags pipelineFlags, width, height int) error {
	cfg, store, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	if flags.provider != "" {
		cfg.Provider = flags.provider
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := buildClient(ctx, cfg, req.Mode)
	if err != nil {
		return err
	}

	pool, err := reference.Load(flags.referenceDir)
	if err != nil {
		return err
	}
	if len(pool) == 0 {
		logger.Warn("no reference examples found, planning zero-shot",
			zap.String("reference_dir", flags.referenceDir))
	}
	if flags.filterScript != "" {
		pool, err = reference.Filter(pool, flags.filterScript)
		if err != nil {
			return err
		}
		logger.Info("reference pool filtered", zap.Int("remaining", len(pool)))
	}

	opts := pipeline.Options{
		Iterations:    cfg.Iterations,
		RetrievalCap:  cfg.RetrievalCap,
		Width:         cfg.Width,
		Height:        cfg.Height,
		RenderTimeout: cfg.RenderTimeout,
		Python:        cfg.Python,
		OutputDir:     flags.outputDir,
	}
	if flags.iterations > 0 {
		opts.Iterations = flags.iterations
	}
	if width > 0 {
		opts.Width = width
	}
	if height > 0 {
		opts.Height = height
	}

	orch := pipeline.New(client, store, logger)

	start := time.Now()
	run, err := orch.Run(ctx, req, pool, opts)
	if err != nil {
		if run != nil {
			fmt.Printf("Run %s failed after %d iteration(s)\n", run.RunID, run.Iterations)
		}
		return err
	}

	fmt.Printf("Run %s complete (%d iterations, %s)\n",
		run.RunID, run.Iterations, time.Since(start).Round(time.Second))
	fmt.Printf("Final output: %s\n", *run.FinalPath)
	return nil
}

func buildClient(ctx context.Context, cfg *config.Config, mode models.Mode) (gateway.Client, error) {
	switch cfg.Provider {
	case "", "gemini":
		return gateway.NewGemini(ctx, cfg.GeminiAPIKey, cfg.VLMModel, cfg.ImageModel, logger)
	case "openai":
		// Image synthesis is Gemini-only; diagrams cannot run on openai
		if mode == models.ModeDiagram {
			return nil, fmt.Errorf("provider openai does not support diagram generation (image synthesis); use --provider gemini")
		}
		return gateway.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.VLMModel, logger)
	default:
		return nil, fmt.Errorf("unknown provider %q (expected gemini or openai)", cfg.Provider)
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStorage()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(20)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No runs found.")
				return nil
			}

			for _, run := range runs {
				fmt.Printf("%s %-7s [%s] %s\n",
					run.RunID, run.Mode, run.Status, truncate(run.Intent, 50))
			}

			return nil
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <run-id>",
		Short: "Show run status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStorage()
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(args[0])
			if err != nil {
				return fmt.Errorf("failed to get run: %w", err)
			}

			fmt.Printf("Run %s (%s)\n", run.RunID, run.Mode)
			fmt.Printf("Status: %s\n", run.Status)
			fmt.Printf("Intent: %s\n", run.Intent)
			fmt.Printf("Workdir: %s\n", run.WorkDir)
			if run.FinalPath != nil {
				fmt.Printf("Final output: %s\n", *run.FinalPath)
			}
			if run.Error != nil {
				fmt.Printf("Error: %s\n", *run.Error)
			}

			iters, err := store.ListIterations(run.ID)
			if err != nil {
				return err
			}

			if len(iters) > 0 {
				fmt.Println("\nIterations:")
				for _, iter := range iters {
					verdict := "clean"
					if len(iter.Suggestions) > 0 {
						verdict = fmt.Sprintf("%d suggestion(s)", len(iter.Suggestions))
					}
					revised := ""
					if iter.Revised {
						revised = ", revised"
					}
					fmt.Printf("  %d. %s [%s%s]\n", iter.Index, iter.ArtifactPath, verdict, revised)
				}
			}

			return nil
		},
	}
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a run and its working directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStorage()
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(args[0])
			if err != nil {
				return fmt.Errorf("failed to get run: %w", err)
			}

			if run.WorkDir != "" {
				os.RemoveAll(run.WorkDir)
			}
			if err := store.DeleteRun(args[0]); err != nil {
				return fmt.Errorf("failed to delete run: %w", err)
			}

			fmt.Printf("Deleted run %s\n", args[0])
			return nil
		},
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
