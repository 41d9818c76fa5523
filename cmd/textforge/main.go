// textforge generates a short piece of text (remote Gemini first, local
// random synthesis as the guaranteed fallback), writes it to a target file,
// hashes the file, and appends a record of the event to a JSONL logbook.
package main

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"textforge/internal/config"
	"textforge/internal/fileio"
	"textforge/internal/logbook"
	"textforge/internal/pipeline"
	"textforge/internal/textgen"
)

const previewWidth = 99

var (
	// Global flags
	verbose    bool
	configPath string

	// Generate flags
	filePath    string
	writeMode   string
	charLength  int
	model       string
	temperature float64
	logPath     string
	dedup       bool
	useUTC      bool

	// Hash flags
	chunkSize int

	// Logger
	logger *zap.Logger
)

// rootCmd runs the full generate-write-hash-log pipeline.
var rootCmd = &cobra.Command{
	Use:   "textforge",
	Short: "textforge - random text generation with content-hashed logging",
	Long: `textforge generates a short piece of random text, writes it to a target
file, computes the file's SHA-256 hash, and appends a structured record of
the event to an append-only JSONL logbook.

Generation is remote-first: with a GEMINI_API_KEY configured, a single
best-effort request is made to the Gemini API. Without a key, or on any
remote failure, a local cryptographically-random synthesizer produces the
text instead - generation never fails.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
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
	RunE: runGenerate,
}

// hashCmd exposes the streaming content hasher standalone.
var hashCmd = &cobra.Command{
	Use:   "hash [file]",
	Short: "Compute the SHA-256 hex digest of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		digest, err := fileio.NewHasher().Sum(args[0], chunkSize)
		if err != nil {
			return err
		}
		fmt.Println(digest)
		return nil
	},
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, &cfg)

	printWelcome()

	remote := textgen.NewRemoteGenerator(textgen.RemoteConfig{
		APIKey:      cfg.Remote.APIKey,
		Model:       cfg.Remote.Model,
		BaseURL:     cfg.Remote.BaseURL,
		Temperature: cfg.Remote.Temperature,
		Timeout:     cfg.Remote.TimeoutDuration(),
	})
	service := pipeline.NewService(textgen.NewGenerator(remote), logger)

	request := pipeline.Request{
		FilePath: cfg.Output.File,
		Mode:     fileio.Mode(cfg.Output.Mode),
		Length:   cfg.Generation.Length,
		Logbook: &logbook.Options{
			Path:        cfg.Logbook.Path,
			Encoding:    cfg.Logbook.Encoding,
			EnsureDir:   cfg.Logbook.EnsureDir,
			DedupByHash: cfg.Logbook.DedupByHash,
			TimeMode:    logbook.TimeMode(cfg.Logbook.TimeMode),
		},
	}
	if cmd.Flags().Changed("model") {
		request.Model = model
	}
	if cmd.Flags().Changed("temperature") {
		request.Temperature = &temperature
	}

	printStep("Generating text & writing to file")
	result, err := service.Run(cmd.Context(), request)
	if err != nil {
		return err
	}
	fmt.Printf("- Bytes written in file  : %d\n", len(result.Text))
	fmt.Printf("- Generated text preview : %s\n", preview(result.Text))

	printStep("Encoding the file's generated content")
	fmt.Printf("- Encoded text : %s\n", result.FileHash)
	if result.Record != nil {
		fmt.Printf("- Record id    : %s\n", result.Record.ID)
	}

	printGoodbye()
	return nil
}

// applyFlagOverrides lays explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("file") {
		cfg.Output.File = filePath
	}
	if cmd.Flags().Changed("mode") {
		cfg.Output.Mode = writeMode
	}
	if cmd.Flags().Changed("length") {
		cfg.Generation.Length = charLength
	}
	if cmd.Flags().Changed("log") {
		cfg.Logbook.Path = logPath
	}
	if cmd.Flags().Changed("dedup") {
		cfg.Logbook.DedupByHash = dedup
	}
	if useUTC {
		cfg.Logbook.TimeMode = string(logbook.TimeUTC)
	}
}

// preview shortens text to one display line.
func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewWidth {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewWidth-4]) + " ..."
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")

	rootCmd.Flags().StringVar(&filePath, "file", "", "Target file for the generated text")
	rootCmd.Flags().StringVar(&writeMode, "mode", "", "Write mode: append or replace")
	rootCmd.Flags().IntVar(&charLength, "length", 0, "Approximate target length in characters")
	rootCmd.Flags().StringVar(&model, "model", "", "Remote model override")
	rootCmd.Flags().Float64Var(&temperature, "temperature", 0, "Remote sampling temperature override")
	rootCmd.Flags().StringVar(&logPath, "log", "", "Logbook file path")
	rootCmd.Flags().BoolVar(&dedup, "dedup", false, "Skip the logbook append when the file hash was already recorded")
	rootCmd.Flags().BoolVar(&useUTC, "utc", false, "Record logbook timestamps in UTC")

	hashCmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Streaming chunk size in bytes (0 = default)")

	rootCmd.AddCommand(hashCmd)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
