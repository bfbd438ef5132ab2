package ui

import (
	"encoding/json"
	"fmt"
	"html/template"
	"math"

	"heartbi/domain/heart"
	"heartbi/internal/profiling"
	"heartbi/internal/results"
	"heartbi/internal/scoring"
	"heartbi/internal/session"
)

// previewRows is how many dataset rows the Données tab shows
const previewRows = 10

// Dashboard tabs
const (
	tabData        = "data"
	tabPrediction  = "prediction"
	tabPerformance = "performance"
	tabExport      = "export"
)

// indexPage is everything the dashboard template renders
type indexPage struct {
	ActiveTab string

	// Sidebar
	Filename string
	Models   []modelOption

	// Données
	Warning   string
	Overview  profiling.Overview
	Columns   []string
	Preview   [][]string
	Describe  []profiling.ColumnStats
	Histogram *histogramView

	// Prédiction
	Form       predictForm
	Ranges     formRanges
	Prediction *predictionResponse
	FormError  string

	// Performances
	ResultHeaders []string
	Results       [][]string
	Analysis      template.HTML
	Images        []results.Image
	ImagesMessage string

	// Export
	SummaryJSON string
}

type modelOption struct {
	Value    string
	Label    string
	Selected bool
}

// formRanges feeds the slider bounds to the template
type formRanges struct {
	MinAge, MaxAge               int
	MinChol, MaxChol             int
	MinThalach, MaxThalach       int
	MinEstimators, MaxEstimators int
	EstimatorStep                int
	CP                           []int
}

var sliderRanges = formRanges{
	MinAge: scoring.MinAge, MaxAge: scoring.MaxAge,
	MinChol: scoring.MinChol, MaxChol: scoring.MaxChol,
	MinThalach: scoring.MinThalach, MaxThalach: scoring.MaxThalach,
	MinEstimators: scoring.MinEstimators, MaxEstimators: scoring.MaxEstimators,
	EstimatorStep: scoring.EstimatorStep,
	CP:            []int{1, 2, 3, 4},
}

// predictForm is the prediction form payload, bound from a form post or JSON
type predictForm struct {
	Age        int    `form:"age" json:"age" binding:"required"`
	Chol       int    `form:"chol" json:"chol" binding:"required"`
	Thalach    int    `form:"thalach" json:"thalach" binding:"required"`
	CP         int    `form:"cp" json:"cp" binding:"required"`
	Model      string `form:"model" json:"model"`
	Estimators int    `form:"n_estimators" json:"n_estimators"`
}

// defaultForm mirrors the initial slider positions
func defaultForm() predictForm {
	return predictForm{
		Age:        50,
		Chol:       250,
		Thalach:    150,
		CP:         1,
		Model:      string(heart.ModelXGBoost),
		Estimators: scoring.DefaultEstimators,
	}
}

// predictionResponse is the JSON answer of /predict and the result card
type predictionResponse struct {
	Probability float64 `json:"probability"`
	Percent     string  `json:"percent"`
	Label       string  `json:"label"`
	Display     string  `json:"display"`
	Model       string  `json:"model"`
	ModelLabel  string  `json:"model_label"`
	Estimators  int     `json:"n_estimators"`
	CP          int     `json:"cp"`
}

func newPredictionResponse(r scoring.Result) *predictionResponse {
	return &predictionResponse{
		Probability: r.Probability,
		Percent:     r.Percent(),
		Label:       string(r.Label),
		Display:     r.Label.Display(),
		Model:       string(r.Input.Model),
		ModelLabel:  r.Input.Model.Label(),
		Estimators:  r.Input.Estimators,
		CP:          r.Input.CP,
	}
}

// histogramView lays out the age histogram as stacked bar rows
type histogramView struct {
	Title  string
	Legend string
	Groups []string
	Bins   []histogramBin
}

type histogramBin struct {
	Range string
	Bars  []histogramBar
}

type histogramBar struct {
	Group string
	Count int
	Width float64
}

func newHistogramView(h *profiling.Histogram) *histogramView {
	if h == nil {
		return nil
	}
	view := &histogramView{
		Title:  "Distribution de l'âge selon la maladie cardiaque",
		Legend: "Maladie (1 = Oui, 0 = Non)",
	}
	for _, s := range h.Series {
		view.Groups = append(view.Groups, s.Group)
	}

	peak := h.MaxCount()
	for i := 0; i+1 < len(h.Edges); i++ {
		bin := histogramBin{Range: fmt.Sprintf("%.0f–%.0f", h.Edges[i], h.Edges[i+1])}
		for _, s := range h.Series {
			bar := histogramBar{Group: s.Group, Count: int(s.Counts[i])}
			if peak > 0 {
				bar.Width = s.Counts[i] / peak * 100
			}
			bin.Bars = append(bin.Bars, bar)
		}
		view.Bins = append(view.Bins, bin)
	}
	return view
}

// columnStatsResponse is ColumnStats with NaN and infinities turned into null,
// since JSON has neither
type columnStatsResponse struct {
	Column   string   `json:"column"`
	Count    int      `json:"count"`
	Mean     *float64 `json:"mean"`
	StdDev   *float64 `json:"std"`
	Min      float64  `json:"min"`
	Q1       float64  `json:"q1"`
	Median   float64  `json:"median"`
	Q3       float64  `json:"q3"`
	Max      float64  `json:"max"`
	Skewness *float64 `json:"skewness"`
	Outliers int      `json:"outliers"`
}

func newColumnStatsResponse(cs []profiling.ColumnStats) []columnStatsResponse {
	out := make([]columnStatsResponse, len(cs))
	for i, s := range cs {
		out[i] = columnStatsResponse{
			Column:   s.Column,
			Count:    s.Count,
			Mean:     finite(s.Mean),
			StdDev:   finite(s.StdDev),
			Min:      s.Min,
			Q1:       s.Q1,
			Median:   s.Median,
			Q3:       s.Q3,
			Max:      s.Max,
			Skewness: finite(s.Skewness),
			Outliers: s.Outliers,
		}
	}
	return out
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// resultRowResponse prints the decimals as JSON numbers
type resultRowResponse struct {
	Model    string      `json:"model"`
	Accuracy json.Number `json:"accuracy"`
	F1       json.Number `json:"f1"`
	ROCAUC   json.Number `json:"roc_auc"`
}

func newResultRows(rows []results.Row) []resultRowResponse {
	out := make([]resultRowResponse, len(rows))
	for i, r := range rows {
		out[i] = resultRowResponse{
			Model:    r.Model,
			Accuracy: json.Number(r.Accuracy.String()),
			F1:       json.Number(r.F1.String()),
			ROCAUC:   json.Number(r.ROCAUC.String()),
		}
	}
	return out
}

// previewTable flattens the first rows into column order for display
func previewTable(snap *session.Snapshot) [][]string {
	head := snap.Dataset.Head(previewRows)
	out := make([][]string, len(head))
	for i, row := range head {
		cells := make([]string, len(snap.Dataset.Columns))
		for j, col := range snap.Dataset.Columns {
			cells[j] = row[col]
		}
		out[i] = cells
	}
	return out
}
