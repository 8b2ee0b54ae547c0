package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"gorand/domain/bitstream"
	"gorand/domain/core"
	"gorand/domain/encoding"
	"gorand/domain/tier"
	"gorand/domain/verdict"
	"gorand/ports"
)

// InputFormat selects how the raw payload is interpreted.
type InputFormat string

const (
	FormatNumbers InputFormat = "numbers"
	FormatBase64  InputFormat = "base64"
)

// ValidThreshold is the quality score at or above which a sample is
// declared valid.
const ValidThreshold = 0.8

// recordTimeout bounds the detached history write so a stalled
// database cannot leak goroutines.
const recordTimeout = 5 * time.Second

// ValidationService runs one validation query end to end: decode the
// payload, encode it into bits, run the battery that fits the stream
// length, score the outcomes, and record the query to history.
type ValidationService struct {
	tiered   ports.BatteryPort
	quick    ports.BatteryPort
	history  ports.HistoryPort
	logger   *zap.SugaredLogger
	debugDir string
}

// ValidateRequest carries one validation query. The range and
// bit-width hints apply to numeric input only.
type ValidateRequest struct {
	Numbers     string      `json:"numbers"`
	InputFormat InputFormat `json:"input_format"`
	RangeMin    *uint32     `json:"range_min"`
	RangeMax    *uint32     `json:"range_max"`
	BitWidth    *uint8      `json:"bit_width"`
	DebugLog    bool        `json:"debug_log"`
}

// ValidateResult is the complete outcome of a validation query.
type ValidateResult struct {
	Valid        bool                    `json:"valid"`
	QualityScore float64                 `json:"quality_score"`
	Message      string                  `json:"message"`
	Battery      *verdict.BatteryResults `json:"battery,omitempty"`
	DebugFile    string                  `json:"debug_file,omitempty"`
}

// NewValidationService creates a validation service. The tiered
// battery is tried first; quick takes over when the stream is too
// short for it. debugDir is where bit stream dumps are written when a
// request asks for them.
func NewValidationService(tiered, quick ports.BatteryPort, history ports.HistoryPort, logger *zap.SugaredLogger, debugDir string) *ValidationService {
	return &ValidationService{
		tiered:   tiered,
		quick:    quick,
		history:  history,
		logger:   logger,
		debugDir: debugDir,
	}
}

// Validate runs one query through the full pipeline. Input and
// encoding problems come back as an invalid result carrying the
// reason rather than as an error; the error return is reserved for
// infrastructure failures such as a canceled context.
func (s *ValidationService) Validate(ctx context.Context, req ValidateRequest) (*ValidateResult, error) {
	format := req.InputFormat
	if format == "" {
		format = FormatNumbers
	}

	s.logger.Debugw("validation started",
		"input_format", format,
		"input_length", len(req.Numbers))

	bits, err := s.encode(req, format)
	if err != nil {
		s.logger.Warnw("input rejected", "error", err)
		return s.finish(format, req.Numbers, 0, &ValidateResult{Message: err.Error()}), nil
	}

	result := &ValidateResult{}
	if req.DebugLog {
		path, err := s.dumpBits(bits)
		if err != nil {
			s.logger.Warnw("failed to write bit stream dump", "error", err)
		} else {
			result.DebugFile = path
		}
	}

	battery, err := s.tiered.Run(ctx, bits)
	if err != nil && core.IsInsufficientData(err) {
		s.logger.Infow("stream below tier floor, switching to small-sample battery",
			"bits", bits.Len(),
			"minimum", tier.MinimumBits)
		message := insufficientDataMessage(bits.Len())
		battery, err = s.quick.Run(ctx, bits)
		if err != nil {
			return nil, fmt.Errorf("small-sample battery failed: %w", err)
		}
		result.applyBattery(battery, message)
		return s.finish(format, req.Numbers, bits.Len(), result), nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("tiered battery aborted: %w", err)
		}
		s.logger.Errorw("tiered battery failed", "error", err)
		result.Message = fmt.Sprintf("NIST tests failed: %v", err)
		return s.finish(format, req.Numbers, bits.Len(), result), nil
	}

	result.applyBattery(battery, fmt.Sprintf("Analyzed %d bits using %d NIST tests (%d/%d passed)",
		battery.BitCount, battery.TotalTests, battery.TestsPassed, battery.TotalTests))
	return s.finish(format, req.Numbers, bits.Len(), result), nil
}

// applyBattery scores a completed battery into the result.
func (r *ValidateResult) applyBattery(battery *verdict.BatteryResults, message string) {
	score := battery.SuccessRate / 100.0
	r.Valid = score >= ValidThreshold
	r.QualityScore = score
	r.Message = message
	r.Battery = battery
}

// encode turns the raw payload into a bit stream according to the
// requested format.
func (s *ValidationService) encode(req ValidateRequest, format InputFormat) (bitstream.Stream, error) {
	switch format {
	case FormatNumbers:
		in, err := encoding.ParseNumbers(req.Numbers)
		if err != nil {
			return nil, err
		}
		opts := encoding.Options{BitWidth: req.BitWidth}
		if req.RangeMin != nil && req.RangeMax != nil {
			opts.Range = &encoding.EncodingRange{Min: *req.RangeMin, Max: *req.RangeMax}
		}
		return encoding.Encode(in, opts)

	case FormatBase64:
		if req.RangeMin != nil || req.RangeMax != nil || req.BitWidth != nil {
			s.logger.Warnw("range_min, range_max, and bit_width are ignored for base64 input")
		}
		return encoding.DecodeBase64(req.Numbers)

	default:
		return nil, fmt.Errorf("unsupported input_format %q: use %q or %q", format, FormatNumbers, FormatBase64)
	}
}

// dumpBits writes the stream's debug rendering to a timestamped file
// under the configured debug directory and returns its path.
func (s *ValidationService) dumpBits(bits bitstream.Stream) (string, error) {
	if err := os.MkdirAll(s.debugDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create debug directory: %w", err)
	}

	now := time.Now().UTC()
	name := fmt.Sprintf("bits_%s_%06d.txt", now.Format("20060102_150405"), now.Nanosecond()/1000)
	path := filepath.Join(s.debugDir, name)

	var buf bytes.Buffer
	if err := bits.Dump(&buf, now); err != nil {
		return "", fmt.Errorf("failed to render bit stream: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write debug file: %w", err)
	}
	return path, nil
}

// finish records the query to history and hands back the result. The
// write is detached so a slow store never delays the caller; failures
// are logged and dropped.
func (s *ValidationService) finish(format InputFormat, payload string, bitCount int, result *ValidateResult) *ValidateResult {
	rec := ports.QueryRecord{
		ID:           core.NewQueryID(),
		CreatedAt:    core.Now(),
		InputFormat:  string(format),
		InputDigest:  core.ComputeInputDigest([]byte(payload)),
		BitCount:     bitCount,
		Valid:        result.Valid,
		QualityScore: result.QualityScore,
		Message:      result.Message,
	}
	if result.Battery != nil {
		rec.Outcomes = result.Battery.Tests
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := s.history.RecordQuery(ctx, rec); err != nil {
			s.logger.Warnw("failed to record query history",
				"error", err,
				"query_id", rec.ID)
		}
	}()

	return result
}

// insufficientDataMessage explains the switch to the small-sample
// battery in terms of the 32-bit encoding most callers use.
func insufficientDataMessage(bitCount int) string {
	return fmt.Sprintf("NIST statistical tests require at least %d bits (~%d numbers with 32-bit encoding) for basic tests. "+
		"You provided %d bits (~%d numbers). The system will use enhanced statistical tests instead, "+
		"which are designed for smaller datasets.",
		tier.MinimumBits, tier.MinimumBits/32, bitCount, bitCount/32)
}
