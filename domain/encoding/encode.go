package encoding

import (
	"fmt"
	"math"
	"math/big"

	"gorand/domain/bitstream"
	"gorand/domain/core"
)

// EncodingRange declares the generator's inclusive output bounds, as
// stated by the caller. It is the callers' claim about their RNG, not
// something inferred from the sample.
type EncodingRange struct {
	Min uint32
	Max uint32
}

// Size returns the number of distinct values the range can produce.
func (r EncodingRange) Size() uint64 {
	return uint64(r.Max) - uint64(r.Min) + 1
}

// Options steer encoding strategy selection. Zero value means full
// auto-detection from the observed sample.
type Options struct {
	// Range forces bias-free base conversion against the declared bounds.
	Range *EncodingRange
	// BitWidth forces fixed-width encoding at 8, 16 or 32 bits per number.
	// Takes precedence over Range.
	BitWidth *uint8
}

// Encode converts parsed numbers into a bit stream, choosing the
// representation that preserves the sample's entropy:
//
//   - An explicit BitWidth forces fixed-width emission at that width.
//   - An explicit Range forces base conversion, which strips the bias
//     that per-number leading zeros would otherwise introduce.
//   - Otherwise a sample whose minimum is zero is taken as spanning a
//     standard width and encoded fixed-width at the smallest of 8, 16
//     or 32 bits that holds the maximum.
//   - A nonzero minimum with no declared range is rejected: the encoder
//     cannot tell a narrow generator from a sparse sample, and guessing
//     would bias every downstream statistic.
func Encode(in *NumericInput, opts Options) (bitstream.Stream, error) {
	if opts.BitWidth != nil {
		return encodeForcedWidth(in, *opts.BitWidth)
	}

	if opts.Range != nil {
		r := *opts.Range
		if r.Min > r.Max {
			return nil, core.NewInvertedRangeError(r.Min, r.Max)
		}
		if in.Min < r.Min || in.Max > r.Max {
			return nil, core.NewOutOfRangeError(in.Min, in.Max, r.Min, r.Max)
		}
		return encodeBaseConversion(in, r)
	}

	if in.Min == 0 {
		width := uint8(32)
		if in.Max <= 0xFF {
			width = 8
		} else if in.Max <= 0xFFFF {
			width = 16
		}
		return encodeFixedWidth(in.Values, width), nil
	}

	return nil, core.NewRangeRequiredError(in.Min, in.Max)
}

func encodeForcedWidth(in *NumericInput, width uint8) (bitstream.Stream, error) {
	var maxValue uint32
	switch width {
	case 8:
		maxValue = 0xFF
	case 16:
		maxValue = 0xFFFF
	case 32:
		maxValue = 0xFFFFFFFF
	default:
		return nil, core.NewInvalidBitWidthError(width)
	}

	if in.Max > maxValue {
		return nil, core.NewBitWidthExceededError(in.Max, width, maxValue)
	}

	// A nonzero minimum is tolerated here: a small sample may simply not
	// contain the generator's floor, and the tests will surface any real
	// bias on their own.
	return encodeFixedWidth(in.Values, width), nil
}

func encodeFixedWidth(values []uint32, width uint8) bitstream.Stream {
	bits := make(bitstream.Stream, 0, len(values)*int(width))
	for _, v := range values {
		for shift := int(width) - 1; shift >= 0; shift-- {
			bits = append(bits, uint8((v>>uint(shift))&1))
		}
	}
	return bits
}

// encodeBaseConversion treats the normalized sample as the digits of a
// big integer in base (max-min+1) and emits that integer's bits. Every
// distinct sequence maps to a distinct value of a fixed bit length, so
// no value in the range contributes more or fewer bits than any other.
func encodeBaseConversion(in *NumericInput, r EncodingRange) (bitstream.Stream, error) {
	base := new(big.Int).SetUint64(r.Size())
	acc := new(big.Int)
	digit := new(big.Int)
	for _, v := range in.Values {
		digit.SetUint64(uint64(v - r.Min))
		acc.Mul(acc, base)
		acc.Add(acc, digit)
	}

	entropyPerNumber := math.Log2(float64(r.Size()))
	targetBits := int(math.Ceil(float64(len(in.Values)) * entropyPerNumber))

	bits := bitstream.FromBytes(acc.Bytes())

	switch {
	case len(bits) < targetBits:
		padded := make(bitstream.Stream, targetBits-len(bits), targetBits)
		bits = append(padded, bits...)
	case len(bits) > targetBits:
		// Byte alignment can only add leading zeros; anything else means
		// the accumulator accounting is broken.
		trim := len(bits) - targetBits
		leadingZeros := 0
		for leadingZeros < len(bits) && bits[leadingZeros] == 0 {
			leadingZeros++
		}
		if leadingZeros < trim {
			return nil, fmt.Errorf("value too large: need to trim %d bits but only %d leading zeros available", trim, leadingZeros)
		}
		bits = bits[trim:]
	}

	return bits, nil
}
