package encoding

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"gorand/domain/bitstream"
	"gorand/domain/core"
)

// NumericInput is a parsed sequence of unsigned 32-bit samples together
// with the observed bounds, which drive encoding strategy selection.
type NumericInput struct {
	Values []uint32
	Min    uint32
	Max    uint32
}

// Count returns the number of parsed samples.
func (in *NumericInput) Count() int { return len(in.Values) }

// ParseNumbers extracts unsigned 32-bit numbers from free-form text.
// Any character that is not an ASCII digit acts as a delimiter, so
// commas, whitespace, newlines and punctuation all separate numbers.
// Alphabetic characters anywhere in the input are rejected outright.
func ParseNumbers(input string) (*NumericInput, error) {
	for _, r := range input {
		if unicode.IsLetter(r) {
			return nil, core.ErrInvalidCharacter
		}
	}

	runs := strings.FieldsFunc(input, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if len(runs) == 0 {
		return nil, core.ErrEmptyInput
	}

	values := make([]uint32, 0, len(runs))
	var min, max uint32
	for i, run := range runs {
		v, err := strconv.ParseUint(run, 10, 32)
		if err != nil {
			return nil, core.NewOverflowError(run)
		}
		n := uint32(v)
		values = append(values, n)
		if i == 0 || n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}

	return &NumericInput{Values: values, Min: min, Max: max}, nil
}

// DecodeBase64 turns a base64 payload into a bit stream, eight bits per
// decoded byte. Whitespace is stripped and missing '=' padding is added
// before decoding, so payloads copied out of logs or wrapped across
// lines still decode.
func DecodeBase64(input string) (bitstream.Stream, error) {
	var clean strings.Builder
	clean.Grow(len(input))
	for _, r := range input {
		if !unicode.IsSpace(r) {
			clean.WriteRune(r)
		}
	}

	payload := clean.String()
	if deficit := (4 - len(payload)%4) % 4; deficit > 0 {
		payload += strings.Repeat("=", deficit)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidEncoding, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: decoded to empty data", core.ErrInvalidEncoding)
	}

	return bitstream.FromBytes(data), nil
}
