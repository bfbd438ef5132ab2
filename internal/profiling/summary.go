package profiling

import (
	"math"
	"strconv"

	"heartbi/domain/heart"

	"github.com/montanaflynn/stats"
)

// NotAvailable is displayed for metrics that cannot be computed
const NotAvailable = "N/A"

// Overview holds the three headline metrics of the Données tab
type Overview struct {
	Rows          int    `json:"rows"`
	Columns       int    `json:"columns"`
	PositiveCases string `json:"positive_cases"`
	Source        string `json:"source"`
}

// Summarize computes the overview. PositiveCases is the sum of the target
// column, or NotAvailable when that column is missing, not numeric or sums
// outside the int32 range.
func Summarize(ds *heart.Dataset) Overview {
	o := Overview{
		Rows:          ds.Len(),
		Columns:       len(ds.Columns),
		PositiveCases: NotAvailable,
		Source:        string(ds.Source),
	}
	if targets, ok := ds.Floats("target"); ok {
		sum, _ := stats.Sum(targets)
		if !math.IsInf(sum, 0) && math.Abs(sum) < math.MaxInt32 {
			o.PositiveCases = strconv.Itoa(int(sum))
		}
	}
	return o
}

// ColumnStats are the descriptive statistics of one numeric column
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
	Shape
}

// Describe returns statistics for every column whose non-empty cells are all
// numeric, in column order. StdDev is the sample deviation (NaN below two values),
// Skewness is NaN below three values.
func Describe(ds *heart.Dataset) []ColumnStats {
	var out []ColumnStats
	for _, col := range ds.Columns {
		values, ok := ds.Floats(col)
		if !ok || len(values) == 0 {
			continue
		}
		out = append(out, describe(col, values))
	}
	return out
}

func describe(column string, data []float64) ColumnStats {
	cs := ColumnStats{Column: column, Count: len(data), StdDev: math.NaN()}

	// errors only signal empty input, which Describe already filtered out
	cs.Mean, _ = stats.Mean(data)
	cs.Min, _ = stats.Min(data)
	cs.Max, _ = stats.Max(data)
	cs.Median, _ = stats.Median(data)
	if len(data) > 1 {
		cs.StdDev, _ = stats.StandardDeviationSample(data)
	}
	cs.Shape = shapeOf(data)
	return cs
}
