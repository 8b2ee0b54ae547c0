package nist

import (
	"math"

	"gorand/domain/bitstream"
)

// RankTest partitions the stream into 32x32 binary matrices and
// compares the distribution of their ranks over GF(2) against the
// theoretical probabilities for random matrices. Linear dependence
// between rows lowers ranks and signals structure in the stream.
type RankTest struct{}

func NewRankTest() *RankTest { return &RankTest{} }

func (t *RankTest) Name() string { return "Rank" }
func (t *RankTest) Tier() int    { return 3 }
func (t *RankTest) MinBits() int { return 0 }

const rankMatrixDim = 32

func (t *RankTest) Run(bits bitstream.Stream) []float64 {
	matrixBits := rankMatrixDim * rankMatrixDim
	matrices := bits.Len() / matrixBits
	if matrices < 38 {
		return nil
	}

	var fullRank, nearFullRank int
	for i := 0; i < matrices; i++ {
		matrix := make([][]uint8, rankMatrixDim)
		for row := 0; row < rankMatrixDim; row++ {
			start := i*matrixBits + row*rankMatrixDim
			matrix[row] = append([]uint8(nil), bits[start:start+rankMatrixDim]...)
		}
		switch binaryRank(matrix) {
		case rankMatrixDim:
			fullRank++
		case rankMatrixDim - 1:
			nearFullRank++
		}
	}

	pFull := rankProbability(rankMatrixDim)
	pNear := rankProbability(rankMatrixDim - 1)
	pLow := 1.0 - pFull - pNear

	n := float64(matrices)
	lowRank := n - float64(fullRank) - float64(nearFullRank)
	chi := math.Pow(float64(fullRank)-n*pFull, 2)/(n*pFull) +
		math.Pow(float64(nearFullRank)-n*pNear, 2)/(n*pNear) +
		math.Pow(lowRank-n*pLow, 2)/(n*pLow)

	return []float64{clampP(igamc(1.0, chi/2.0))}
}

// rankProbability is the chance a random 32x32 matrix over GF(2) has
// exactly rank r, per the product formula in SP 800-22 section 3.5.
func rankProbability(r int) float64 {
	const dim = rankMatrixDim
	product := 1.0
	for i := 0; i < r; i++ {
		num := (1.0 - math.Pow(2, float64(i-dim))) * (1.0 - math.Pow(2, float64(i-dim)))
		product *= num / (1.0 - math.Pow(2, float64(i-r)))
	}
	return math.Pow(2, float64(r*(dim+dim-r)-dim*dim)) * product
}

// binaryRank reduces the matrix in place over GF(2) and returns the
// number of pivot rows.
func binaryRank(matrix [][]uint8) int {
	dim := len(matrix)
	rank := 0
	for col := 0; col < dim && rank < dim; col++ {
		pivot := -1
		for row := rank; row < dim; row++ {
			if matrix[row][col] == 1 {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			continue
		}
		matrix[rank], matrix[pivot] = matrix[pivot], matrix[rank]
		for row := 0; row < dim; row++ {
			if row != rank && matrix[row][col] == 1 {
				for c := col; c < dim; c++ {
					matrix[row][c] ^= matrix[rank][c]
				}
			}
		}
		rank++
	}
	return rank
}
