package profiling

import (
	"math"
	"sort"
	"strings"

	"heartbi/domain/heart"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultBins is the bin count of the age histogram
const DefaultBins = 20

// Histogram is an equal-width histogram of one column, split by the values of a
// grouping column. Edges has len(bins)+1 entries; each Series count slice has one
// entry per bin.
type Histogram struct {
	Column  string    `json:"column"`
	GroupBy string    `json:"group_by"`
	Edges   []float64 `json:"edges"`
	Series  []Series  `json:"series"`
}

// Series is the bin counts for one group value
type Series struct {
	Group  string    `json:"group"`
	Counts []float64 `json:"counts"`
}

// MaxCount is the tallest bar across all series, for scaling
func (h *Histogram) MaxCount() float64 {
	var m float64
	for _, s := range h.Series {
		if len(s.Counts) > 0 {
			m = math.Max(m, floats.Max(s.Counts))
		}
	}
	return m
}

// AgeHistogram is the dashboard's age distribution by disease status. It is
// nil when the dataset has no age or no target column.
func AgeHistogram(ds *heart.Dataset) *Histogram {
	return Build(ds, "age", "target", DefaultBins)
}

// Build bins column into n equal-width bins over its observed range, one series
// per distinct groupBy value. Rows whose column cell is non-numeric or not
// finite are skipped.
// It returns nil when either column is missing or no numeric value exists.
func Build(ds *heart.Dataset, column, groupBy string, n int) *Histogram {
	if n < 1 || !ds.HasColumn(column) || !ds.HasColumn(groupBy) {
		return nil
	}

	groups := make(map[string][]float64)
	var all []float64
	for _, row := range ds.Rows {
		v, ok := heart.ParseNumber(row[column])
		if !ok {
			continue
		}
		g := strings.TrimSpace(row[groupBy])
		groups[g] = append(groups[g], v)
		all = append(all, v)
	}
	if len(all) == 0 {
		return nil
	}

	lo, hi := floats.Min(all), floats.Max(all)
	if lo == hi {
		hi = lo + 1
	}
	edges := floats.Span(make([]float64, n+1), lo, hi)
	// stat.Histogram needs the last divider strictly above the maximum
	dividers := append([]float64(nil), edges...)
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)

	h := &Histogram{Column: column, GroupBy: groupBy, Edges: edges}
	for _, g := range names {
		values := groups[g]
		sort.Float64s(values)
		h.Series = append(h.Series, Series{
			Group:  g,
			Counts: stat.Histogram(nil, dividers, values, nil),
		})
	}
	return h
}
