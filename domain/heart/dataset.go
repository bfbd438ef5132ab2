package heart

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Column names of the UCI heart dataset, in the order the remote file is
// assumed to use.
var Columns = []string{
	"age", "sex", "cp", "trestbps", "chol", "fbs", "restecg",
	"thalach", "exang", "oldpeak", "slope", "ca", "thal", "target",
}

// Source tells where a dataset came from
type Source string

const (
	SourceUpload   Source = "upload"
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// Row is one raw record keyed by column name
type Row map[string]string

// Dataset is an ordered, immutable table. Columns keeps the header order of the
// source; uploaded files keep whatever schema they had.
type Dataset struct {
	Columns []string
	Rows    []Row
	Source  Source
}

// Fallback returns the three-row dataset used whenever loading fails.
func Fallback() *Dataset {
	return &Dataset{
		Columns: []string{"age", "chol", "thalach", "target"},
		Rows: []Row{
			{"age": "45", "chol": "210", "thalach": "150", "target": "0"},
			{"age": "55", "chol": "260", "thalach": "140", "target": "1"},
			{"age": "65", "chol": "320", "thalach": "120", "target": "1"},
		},
		Source: SourceFallback,
	}
}

// Len returns the number of rows
func (d *Dataset) Len() int { return len(d.Rows) }

// HasColumn reports whether name is one of the dataset columns
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Head returns at most n leading rows
func (d *Dataset) Head(n int) []Row {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}

// Floats parses every non-empty cell of a column. ok is false if the column
// is missing or any non-empty cell is not a number. NaN, infinite and
// out-of-range cells count as missing.
func (d *Dataset) Floats(column string) (values []float64, ok bool) {
	if !d.HasColumn(column) {
		return nil, false
	}
	values = make([]float64, 0, len(d.Rows))
	for _, row := range d.Rows {
		cell := strings.TrimSpace(row[column])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if errors.Is(err, strconv.ErrRange) {
			continue
		}
		if err != nil {
			return nil, false
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
	}
	return values, true
}

// Record is the typed view of one row of the heart dataset.
// Only Age, Chol, Thalach and Target feed any computation.
type Record struct {
	Age      int
	Sex      int
	CP       int
	Trestbps int
	Chol     int
	FBS      int
	Restecg  int
	Thalach  int
	Exang    int
	Oldpeak  float64
	Slope    int
	CA       int
	Thal     int
	Target   int
}

// Records parses the known columns of every row. Missing or unparseable
// cells read as zero.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.Rows))
	for i, row := range d.Rows {
		out[i] = Record{
			Age:      atoi(row["age"]),
			Sex:      atoi(row["sex"]),
			CP:       atoi(row["cp"]),
			Trestbps: atoi(row["trestbps"]),
			Chol:     atoi(row["chol"]),
			FBS:      atoi(row["fbs"]),
			Restecg:  atoi(row["restecg"]),
			Thalach:  atoi(row["thalach"]),
			Exang:    atoi(row["exang"]),
			Oldpeak:  atof(row["oldpeak"]),
			Slope:    atoi(row["slope"]),
			CA:       atoi(row["ca"]),
			Thal:     atoi(row["thal"]),
			Target:   atoi(row["target"]),
		}
	}
	return out
}

// ParseNumber reads a numeric cell. ok is false for empty, non-numeric and
// non-finite cells.
func ParseNumber(cell string) (v float64, ok bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func atoi(s string) int {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	// "63.0" style integers
	if f, ok := ParseNumber(s); ok && math.Abs(f) < math.MaxInt32 {
		return int(f)
	}
	return 0
}

func atof(s string) float64 {
	f, _ := ParseNumber(s)
	return f
}
