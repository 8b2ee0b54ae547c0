package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input parsing errors
	ErrInvalidCharacter = errors.New("input contains letters - only numbers and delimiters are allowed")
	ErrEmptyInput       = errors.New("no numbers provided")
	ErrNumericOverflow  = errors.New("invalid number format")
	ErrInvalidEncoding  = errors.New("invalid base64 input")

	// Encoding errors
	ErrRangeRequired    = errors.New("range specification required")
	ErrRangeViolation   = errors.New("range violation")
	ErrInvalidBitWidth  = errors.New("invalid bit_width")
	ErrBitWidthExceeded = errors.New("bit width exceeded")

	// Analysis errors
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Lookup errors
	ErrInvalidQueryID = errors.New("invalid query ID")
)

// Error constructors with context
func NewOverflowError(digits string) error {
	return fmt.Errorf("%w: %q exceeds the 32-bit maximum of 4294967295", ErrNumericOverflow, digits)
}

func NewRangeRequiredError(min, max uint32) error {
	return fmt.Errorf("%w: numbers range from %d to %d, which doesn't fit standard bit widths (0-255, 0-65535, or 0-4294967295); "+
		"specify the generator's range with range_min and range_max (for example, numbers 1-100 need range_min=1 and range_max=100)",
		ErrRangeRequired, min, max)
}

func NewInvertedRangeError(min, max uint32) error {
	return fmt.Errorf("%w: range_min (%d) > range_max (%d)", ErrRangeViolation, min, max)
}

func NewOutOfRangeError(observedMin, observedMax, min, max uint32) error {
	return fmt.Errorf("%w: numbers (%d-%d) outside specified range (%d-%d)", ErrRangeViolation, observedMin, observedMax, min, max)
}

func NewInvalidBitWidthError(width uint8) error {
	return fmt.Errorf("%w: %d, must be 8, 16, or 32", ErrInvalidBitWidth, width)
}

func NewBitWidthExceededError(value uint32, width uint8, max uint32) error {
	return fmt.Errorf("%w: number %d exceeds %d-bit maximum value of %d, select a larger bit_width or supply a custom range",
		ErrBitWidthExceeded, value, width, max)
}

func NewInsufficientDataError(bits, minBits int) error {
	return fmt.Errorf("%w: need at least %d bits, got %d", ErrInsufficientData, minBits, bits)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidCharacter) ||
		errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrNumericOverflow) ||
		errors.Is(err, ErrInvalidEncoding)
}

func IsEncodingError(err error) bool {
	return errors.Is(err, ErrRangeRequired) ||
		errors.Is(err, ErrRangeViolation) ||
		errors.Is(err, ErrInvalidBitWidth) ||
		errors.Is(err, ErrBitWidthExceeded)
}

func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}
