// Package scoring implements the dashboard's toy risk formula. It is a fixed
// linear expression, not a trained model.
package scoring

import (
	"fmt"

	"heartbi/domain/heart"
	"heartbi/internal/errors"
)

// Input bounds enforced by every caller before Score. Score itself is total.
const (
	MinAge, MaxAge                 = 20, 80
	MinChol, MaxChol               = 100, 600
	MinThalach, MaxThalach         = 70, 220
	MinCP, MaxCP                   = 1, 4
	MinEstimators, MaxEstimators   = 50, 200
	EstimatorStep                  = 10
	DefaultEstimators              = 100
	MinProbability, MaxProbability = 0.05, 0.95
	DiseaseThreshold               = 0.6
)

// Label is the binary outcome of a prediction
type Label string

const (
	LabelDisease Label = "disease"
	LabelHealthy Label = "healthy"
)

// Display returns the dashboard caption for the label
func (l Label) Display() string {
	if l == LabelDisease {
		return "🫀 MALADIE"
	}
	return "✅ SAIN"
}

// Input is one submission of the prediction form
type Input struct {
	Age        int
	Chol       int
	Thalach    int
	CP         int
	Model      heart.ModelChoice
	Estimators int
}

// Result is a derived, never stored, prediction
type Result struct {
	Probability float64
	Label       Label
	Input       Input
}

// Percent formats the probability with one decimal, e.g. "89.0%".
func (r Result) Percent() string {
	return fmt.Sprintf("%.1f%%", r.Probability*100)
}

// Risk is the raw linear risk term before the model offset.
func Risk(age, chol, thalach int) float64 {
	return 0.4 +
		float64(age-50)/200 +
		float64(chol-250)/1500 -
		float64(thalach-150)/400
}

// Score computes the bounded probability and its label. cp is accepted but
// takes no part in the formula.
func Score(age, chol, thalach, cp int, model heart.ModelChoice) (float64, Label) {
	risk := Risk(age, chol, thalach)
	proba := clamp(model.BaseScore()+(risk-0.4)/2, MinProbability, MaxProbability)
	if proba >= DiseaseThreshold {
		return proba, LabelDisease
	}
	return proba, LabelHealthy
}

// Predict validates in against the form ranges and scores it.
func Predict(in Input) (Result, error) {
	if err := Validate(in); err != nil {
		return Result{}, err
	}
	proba, label := Score(in.Age, in.Chol, in.Thalach, in.CP, in.Model)
	return Result{Probability: proba, Label: label, Input: in}, nil
}

// Validate checks in against the slider/selector ranges of the form.
func Validate(in Input) error {
	switch {
	case in.Age < MinAge || in.Age > MaxAge:
		return errors.InvalidInput(fmt.Sprintf("age must be in [%d, %d]", MinAge, MaxAge))
	case in.Chol < MinChol || in.Chol > MaxChol:
		return errors.InvalidInput(fmt.Sprintf("chol must be in [%d, %d]", MinChol, MaxChol))
	case in.Thalach < MinThalach || in.Thalach > MaxThalach:
		return errors.InvalidInput(fmt.Sprintf("thalach must be in [%d, %d]", MinThalach, MaxThalach))
	case in.CP < MinCP || in.CP > MaxCP:
		return errors.InvalidInput(fmt.Sprintf("cp must be in [%d, %d]", MinCP, MaxCP))
	case in.Estimators < MinEstimators || in.Estimators > MaxEstimators || in.Estimators%EstimatorStep != 0:
		return errors.InvalidInput(fmt.Sprintf("n_estimators must be a multiple of %d in [%d, %d]", EstimatorStep, MinEstimators, MaxEstimators))
	}
	if _, err := heart.ParseModelChoice(string(in.Model)); err != nil {
		return errors.InvalidInput(err.Error())
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return min(hi, max(lo, v))
}
