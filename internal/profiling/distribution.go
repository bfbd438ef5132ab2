package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Shape describes a numeric column beyond its central statistics
type Shape struct {
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
	Skewness float64 `json:"skewness"`
	Outliers int     `json:"outliers"`
}

// shapeOf computes nearest-rank quartiles, the sample skewness and the count of
// values outside the 1.5 IQR fences. data must not be empty.
func shapeOf(data []float64) Shape {
	var sh Shape
	sh.Q1, _ = stats.PercentileNearestRank(data, 25)
	sh.Q3, _ = stats.PercentileNearestRank(data, 75)

	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviationPopulation(data)
	sh.Skewness = calculateSkewness(data, mean, stdDev)
	sh.Outliers = detectOutliers(data, sh.Q1, sh.Q3)
	return sh
}

// calculateSkewness computes sample skewness using the adjusted Fisher-Pearson
// coefficient. It is NaN below three values and 0 for a constant column.
func calculateSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 {
		return math.NaN()
	}
	if stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	skewness := sumCubedDeviations / n
	return skewness * math.Sqrt(n*(n-1)) / (n - 2)
}

// detectOutliers counts values outside [q1 - 1.5 IQR, q3 + 1.5 IQR]
func detectOutliers(data []float64, q1, q3 float64) int {
	iqr := q3 - q1
	lowerBound := q1 - 1.5*iqr
	upperBound := q3 + 1.5*iqr

	outlierCount := 0
	for _, x := range data {
		if x < lowerBound || x > upperBound {
			outlierCount++
		}
	}
	return outlierCount
}
