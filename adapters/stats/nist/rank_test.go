package nist

import (
	"math"
	"testing"

	"gorand/domain/bitstream"
)

func TestBinaryRank(t *testing.T) {
	identity := make([][]uint8, 4)
	for i := range identity {
		identity[i] = make([]uint8, 4)
		identity[i][i] = 1
	}
	if got := binaryRank(identity); got != 4 {
		t.Errorf("Expected identity rank 4, got %d", got)
	}

	zero := make([][]uint8, 4)
	for i := range zero {
		zero[i] = make([]uint8, 4)
	}
	if got := binaryRank(zero); got != 0 {
		t.Errorf("Expected zero matrix rank 0, got %d", got)
	}

	dependent := [][]uint8{
		{1, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
	}
	if got := binaryRank(dependent); got != 2 {
		t.Errorf("Expected rank 2 with a repeated row, got %d", got)
	}

	// XOR dependence: third row is the sum of the first two over GF(2).
	xorDep := [][]uint8{
		{1, 1, 0},
		{0, 1, 1},
		{1, 0, 1},
	}
	if got := binaryRank(xorDep); got != 2 {
		t.Errorf("Expected rank 2 with GF(2)-dependent rows, got %d", got)
	}
}

func TestRankProbabilities(t *testing.T) {
	pFull := rankProbability(32)
	pNear := rankProbability(31)

	if math.Abs(pFull-0.2888) > 0.0005 {
		t.Errorf("Expected full-rank probability near 0.2888, got %f", pFull)
	}
	if math.Abs(pNear-0.5776) > 0.0005 {
		t.Errorf("Expected rank-31 probability near 0.5776, got %f", pNear)
	}
	if low := 1.0 - pFull - pNear; math.Abs(low-0.1336) > 0.0005 {
		t.Errorf("Expected residual probability near 0.1336, got %f", low)
	}
}

func TestRankRequires38Matrices(t *testing.T) {
	test := NewRankTest()
	if got := test.Run(make(bitstream.Stream, 37*1024)); got != nil {
		t.Errorf("Expected omission below 38 matrices, got %d results", len(got))
	}

	pvals := test.Run(lcgBits(38 * 1024))
	if len(pvals) != 1 {
		t.Fatalf("Expected one p-value, got %d", len(pvals))
	}
	if pvals[0] < 0 || pvals[0] > 1 {
		t.Errorf("p-value %f outside [0,1]", pvals[0])
	}
}

func TestRankFlagsDegenerateStream(t *testing.T) {
	// All-zero bits give every matrix rank zero, far from the expected
	// distribution around full rank.
	pvals := NewRankTest().Run(make(bitstream.Stream, 40*1024))
	if len(pvals) != 1 {
		t.Fatalf("Expected one p-value, got %d", len(pvals))
	}
	if pvals[0] >= 0.01 {
		t.Errorf("Expected failing p-value for all-zero stream, got %f", pvals[0])
	}
}
