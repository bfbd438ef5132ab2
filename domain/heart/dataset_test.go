package heart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackRecords(t *testing.T) {
	ds := Fallback()
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, SourceFallback, ds.Source)

	records := ds.Records()
	var ages, chols, thalachs, targets []int
	for _, r := range records {
		ages = append(ages, r.Age)
		chols = append(chols, r.Chol)
		thalachs = append(thalachs, r.Thalach)
		targets = append(targets, r.Target)
	}
	assert.Equal(t, []int{45, 55, 65}, ages)
	assert.Equal(t, []int{210, 260, 320}, chols)
	assert.Equal(t, []int{150, 140, 120}, thalachs)
	assert.Equal(t, []int{0, 1, 1}, targets)
}

func TestFloats(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"age", "note"},
		Rows: []Row{
			{"age": "40", "note": "x"},
			{"age": "", "note": "y"},
			{"age": "51.5", "note": "z"},
		},
	}

	values, ok := ds.Floats("age")
	require.True(t, ok)
	assert.Equal(t, []float64{40, 51.5}, values)

	_, ok = ds.Floats("note")
	assert.False(t, ok, "text column is not numeric")

	_, ok = ds.Floats("target")
	assert.False(t, ok, "missing column")
}

func TestFloatsTreatsNonFiniteAsMissing(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"age"},
		Rows:    []Row{{"age": "NaN"}, {"age": "42"}, {"age": "+Inf"}, {"age": "-infinity"}, {"age": "1e400"}},
	}

	values, ok := ds.Floats("age")
	require.True(t, ok)
	assert.Equal(t, []float64{42}, values)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		cell   string
		want   float64
		wantOK bool
	}{
		{" 63 ", 63, true},
		{"2.5", 2.5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"nan", 0, false},
		{"Inf", 0, false},
		{"1e400", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, ok := ParseNumber(tt.cell)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHead(t *testing.T) {
	ds := Fallback()
	assert.Len(t, ds.Head(10), 3)
	assert.Len(t, ds.Head(2), 2)
}

func TestRecordsToleratesFloatCells(t *testing.T) {
	ds := &Dataset{Columns: []string{"age", "oldpeak"}, Rows: []Row{{"age": "63.0", "oldpeak": "2.3"}}}
	r := ds.Records()[0]
	assert.Equal(t, 63, r.Age)
	assert.InDelta(t, 2.3, r.Oldpeak, 1e-12)
	assert.Equal(t, 0, r.Target)
}

func TestParseModelChoice(t *testing.T) {
	tests := []struct {
		input   string
		want    ModelChoice
		wantErr bool
	}{
		{"XGBoost", ModelXGBoost, false},
		{"randomforest", ModelRandomForest, false},
		{"Logistic (84.6%)", ModelLogistic, false},
		{"XGBoost (89.4%) ✅", ModelXGBoost, false},
		{"SVM", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseModelChoice(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBaseScores(t *testing.T) {
	assert.Equal(t, 0.89, ModelXGBoost.BaseScore())
	assert.Equal(t, 0.87, ModelRandomForest.BaseScore())
	assert.Equal(t, 0.84, ModelLogistic.BaseScore())
}
