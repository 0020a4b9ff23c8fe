package analytics

import (
	"math"
	"strconv"
)

// CalculateVariance computes the spread of scores a manager assigned and
// converts deviation from the ideal spread into a differentiation score.
// A near-zero spread (everyone rated the same) is penalized just like an
// implausibly wide one; the penalty is linear in |stddev - 0.8|.
func CalculateVariance(scores []float64) VarianceMetrics {
	if len(scores) == 0 {
		return VarianceMetrics{
			Distribution:         map[string]int{},
			DifferentiationScore: DefaultDifferentiationScore,
		}
	}

	avg := mean(scores)
	stdDev := populationStdDev(scores, avg)

	distribution := make(map[string]int, 6)
	for _, score := range scores {
		bucket := strconv.Itoa(int(math.Round(score)))
		distribution[bucket]++
	}

	deviation := math.Abs(stdDev - idealStdDev)
	return VarianceMetrics{
		ScoresGiven:          len(scores),
		AvgScore:             round2(avg),
		StdDev:               round2(stdDev),
		Distribution:         distribution,
		DifferentiationScore: round2(max(0, 100-deviation*50)),
	}
}
