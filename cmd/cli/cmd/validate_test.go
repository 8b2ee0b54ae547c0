package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		validateFile = ""
		validateFormat = "numbers"
		validateRangeMin = -1
		validateRangeMax = -1
		validateBitWidth = 0
		validateDebugDir = "debug"
		validateDebugLog = false
		validateJSON = false
		validateVerbose = false
	})
}

func TestResolvePayloadInline(t *testing.T) {
	resetFlags(t)

	got, err := resolvePayload(context.Background(), []string{"1 2 3"}, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("resolvePayload: %v", err)
	}
	if got != "1 2 3" {
		t.Errorf("payload = %q, want %q", got, "1 2 3")
	}
}

func TestResolvePayloadFromFile(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "numbers.txt")
	if err := os.WriteFile(path, []byte("7 8 9\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	validateFile = path

	got, err := resolvePayload(context.Background(), nil, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("resolvePayload: %v", err)
	}
	if got != "7 8 9" {
		t.Errorf("payload = %q, want %q", got, "7 8 9")
	}
}

func TestResolvePayloadConflicts(t *testing.T) {
	resetFlags(t)
	validateFile = "somewhere.txt"

	if _, err := resolvePayload(context.Background(), []string{"1"}, zap.NewNop().Sugar()); err == nil {
		t.Error("expected an error when both inline numbers and --file are given")
	}

	validateFile = ""
	if _, err := resolvePayload(context.Background(), nil, zap.NewNop().Sugar()); err == nil {
		t.Error("expected an error when no input source is given")
	}
}

func TestRunValidateFlagBounds(t *testing.T) {
	resetFlags(t)
	validateRangeMin = 1 << 33

	err := runValidate(validateCmd, []string{"1 2 3"})
	if err == nil || !strings.Contains(err.Error(), "32-bit maximum") {
		t.Errorf("error = %v, want 32-bit range complaint", err)
	}

	validateRangeMin = -1
	validateBitWidth = 33
	err = runValidate(validateCmd, []string{"1 2 3"})
	if err == nil || !strings.Contains(err.Error(), "must be 8, 16 or 32") {
		t.Errorf("error = %v, want bit width complaint", err)
	}
}

func TestRunValidateEndToEnd(t *testing.T) {
	resetFlags(t)
	validateDebugDir = t.TempDir()
	validateJSON = true
	validateCmd.SetContext(context.Background())

	if err := runValidate(validateCmd, []string{"0 255 128"}); err != nil {
		t.Fatalf("runValidate: %v", err)
	}
}
