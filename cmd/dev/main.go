// gorand-dev bundles development helpers: sample stream generation and
// an end-to-end smoke test of the validation pipeline.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gorand/adapters/memory"
	"gorand/adapters/stats/nist"
	"gorand/adapters/stats/quick"
	"gorand/app"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gorand-dev",
		Short: "gorand development tools",
	}

	rootCmd.AddCommand(
		newSeedCmd(),
		newSmokeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSeedCmd() *cobra.Command {
	var (
		count   int
		quality string
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a sample number stream on stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers, err := generateNumbers(count, quality, seed)
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(numbers, " "))
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 500, "How many numbers to generate")
	cmd.Flags().StringVar(&quality, "quality", "good", "Stream quality: good, biased, or constant")
	cmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed")
	return cmd
}

func newSmokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "smoke",
		Short: "Run the validation pipeline end to end against a generated stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSmoke(cmd)
		},
	}
}

func generateNumbers(count int, quality string, seed int64) ([]string, error) {
	rng := rand.New(rand.NewSource(seed))
	numbers := make([]string, count)
	for i := range numbers {
		var v uint32
		switch quality {
		case "good":
			v = rng.Uint32()
		case "biased":
			// Force every other bit on so roughly 75% of the stream
			// is ones and the frequency tests fail.
			v = rng.Uint32() | 0xAAAAAAAA
		case "constant":
			v = 42
		default:
			return nil, fmt.Errorf("unknown quality %q: use good, biased, or constant", quality)
		}
		numbers[i] = fmt.Sprintf("%d", v)
	}
	return numbers, nil
}

func runSmoke(cmd *cobra.Command) error {
	logger := zap.NewNop().Sugar()
	service := app.NewValidationService(
		nist.NewEngine(logger),
		quick.NewBattery(logger),
		memory.NewHistoryStore(),
		logger,
		os.TempDir(),
	)

	numbers, err := generateNumbers(500, "good", 1)
	if err != nil {
		return err
	}

	result, err := service.Validate(cmd.Context(), app.ValidateRequest{
		Numbers:     strings.Join(numbers, " "),
		InputFormat: app.FormatNumbers,
	})
	if err != nil {
		return fmt.Errorf("smoke validation failed: %w", err)
	}

	fmt.Printf("smoke result: valid=%v score=%.2f\n%s\n", result.Valid, result.QualityScore, result.Message)
	return nil
}
