package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gorand/adapters/excel"
	"gorand/adapters/memory"
	"gorand/adapters/stats/nist"
	"gorand/adapters/stats/quick"
	"gorand/app"
)

var (
	validateFile     string
	validateFormat   string
	validateRangeMin int64
	validateRangeMax int64
	validateBitWidth int
	validateDebugDir string
	validateDebugLog bool
	validateJSON     bool
	validateVerbose  bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [numbers]",
	Short: "Validate a random number stream",
	Long: "Validates the randomness of a number stream with the NIST statistical test suite. " +
		"Numbers are given inline as one argument, or loaded from a file with --file " +
		"(.xlsx, .csv, or plain text).",
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Read numbers from a file instead of the argument")
	validateCmd.Flags().StringVar(&validateFormat, "format", "numbers", "Input format: numbers or base64")
	validateCmd.Flags().Int64Var(&validateRangeMin, "range-min", -1, "Minimum of the generator range (requires --range-max)")
	validateCmd.Flags().Int64Var(&validateRangeMax, "range-max", -1, "Maximum of the generator range (requires --range-min)")
	validateCmd.Flags().IntVar(&validateBitWidth, "bit-width", 0, "Force 8, 16 or 32 bits per number (overrides the range)")
	validateCmd.Flags().StringVar(&validateDebugDir, "debug-dir", "debug", "Directory for bit stream dumps")
	validateCmd.Flags().BoolVar(&validateDebugLog, "debug-log", false, "Write the encoded bit stream to a dump file")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print the result as JSON")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Log pipeline internals to stderr")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateRangeMin > math.MaxUint32 || validateRangeMax > math.MaxUint32 {
		return fmt.Errorf("range bounds exceed the 32-bit maximum of %d", uint32(math.MaxUint32))
	}
	if validateBitWidth > 32 {
		return fmt.Errorf("bit width must be 8, 16 or 32, got %d", validateBitWidth)
	}

	logger, err := newLogger(validateVerbose)
	if err != nil {
		return err
	}
	sugar := logger.Sugar()

	payload, err := resolvePayload(cmd.Context(), args, sugar)
	if err != nil {
		return err
	}

	service := app.NewValidationService(
		nist.NewEngine(sugar),
		quick.NewBattery(sugar),
		memory.NewHistoryStore(),
		sugar,
		validateDebugDir,
	)

	req := app.ValidateRequest{
		Numbers:     payload,
		InputFormat: app.InputFormat(validateFormat),
		DebugLog:    validateDebugLog,
	}
	if validateRangeMin >= 0 {
		v := uint32(validateRangeMin)
		req.RangeMin = &v
	}
	if validateRangeMax >= 0 {
		v := uint32(validateRangeMax)
		req.RangeMax = &v
	}
	if validateBitWidth > 0 {
		v := uint8(validateBitWidth)
		req.BitWidth = &v
	}

	result, err := service.Validate(cmd.Context(), req)
	if err != nil {
		return err
	}

	if validateJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printResult(result)
	return nil
}

// resolvePayload picks the number payload from the positional argument
// or from --file, whichever was given.
func resolvePayload(ctx context.Context, args []string, logger *zap.SugaredLogger) (string, error) {
	switch {
	case validateFile != "" && len(args) > 0:
		return "", fmt.Errorf("provide numbers either inline or via --file, not both")
	case validateFile != "":
		return excel.NewNumberReader(logger).ReadNumbers(ctx, validateFile)
	case len(args) == 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("provide numbers as an argument or via --file")
	}
}

func printResult(result *app.ValidateResult) {
	verdict := "NOT VALID"
	if result.Valid {
		verdict = "VALID"
	}
	fmt.Printf("%s (quality score %.2f)\n", verdict, result.QualityScore)
	fmt.Println(result.Message)

	if result.Battery != nil && result.Battery.RawReport != "" {
		fmt.Println()
		fmt.Print(result.Battery.RawReport)
	}
	if result.DebugFile != "" {
		fmt.Printf("\nBit stream dump: %s\n", result.DebugFile)
	}
}

// newLogger builds a stderr logger that stays quiet unless asked.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
