package bitstream

import (
	"fmt"
	"io"
	"time"
)

// Stream is an ordered sequence of bits, one element per bit (0 or 1).
// It is the common currency between the encoders and the statistical
// batteries: encoders produce a Stream, batteries consume one.
type Stream []uint8

// FromBytes expands raw bytes into a Stream, most significant bit first.
func FromBytes(data []byte) Stream {
	bits := make(Stream, 0, len(data)*8)
	for _, b := range data {
		for shift := 7; shift >= 0; shift-- {
			bits = append(bits, (b>>uint(shift))&1)
		}
	}
	return bits
}

// Len returns the number of bits in the stream.
func (s Stream) Len() int { return len(s) }

// Ones counts the set bits.
func (s Stream) Ones() int {
	count := 0
	for _, b := range s {
		if b == 1 {
			count++
		}
	}
	return count
}

// Zeros counts the unset bits.
func (s Stream) Zeros() int { return len(s) - s.Ones() }

// Bytes packs the stream into bytes, most significant bit first.
// The final byte is zero-padded when the length is not a multiple of 8.
func (s Stream) Bytes() []byte {
	packed := make([]byte, (len(s)+7)/8)
	for i, bit := range s {
		if bit == 1 {
			packed[i/8] |= 1 << uint(7-i%8)
		}
	}
	return packed
}

// Dump writes a human-readable rendering of the stream: a commented
// header followed by rows of 64 bits with zero-padded position offsets.
func (s Stream) Dump(w io.Writer, now time.Time) error {
	if _, err := fmt.Fprintf(w, "# Bit Stream Debug Output\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# Total bits: %d\n", len(s)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# Timestamp: %s\n#\n", now.UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}

	for offset := 0; offset < len(s); offset += 64 {
		end := offset + 64
		if end > len(s) {
			end = len(s)
		}
		row := make([]byte, 0, 64)
		for _, bit := range s[offset:end] {
			if bit == 1 {
				row = append(row, '1')
			} else {
				row = append(row, '0')
			}
		}
		if _, err := fmt.Fprintf(w, "%08d: %s\n", offset, row); err != nil {
			return err
		}
	}
	return nil
}
