// Package results holds the static model performance table shown on the
// dashboard and its export formats. Nothing here is computed from data.
package results

import (
	"github.com/shopspring/decimal"
)

// Headers is the export header row
var Headers = []string{"Modèle", "Accuracy (%)", "F1-Score (%)", "ROC-AUC (%)"}

// ImportantFeatures is the fixed feature ranking published with the results
var ImportantFeatures = []string{"thalach", "oldpeak", "cp"}

// Row is one model's published scores, in percent
type Row struct {
	Model    string          `json:"model"`
	Accuracy decimal.Decimal `json:"accuracy"`
	F1       decimal.Decimal `json:"f1"`
	ROCAUC   decimal.Decimal `json:"roc_auc"`
}

var table = []Row{
	{Model: "XGBoost", Accuracy: decimal.RequireFromString("89.4"), F1: decimal.RequireFromString("89.4"), ROCAUC: decimal.RequireFromString("95.6")},
	{Model: "RandomForest", Accuracy: decimal.RequireFromString("87.9"), F1: decimal.RequireFromString("87.8"), ROCAUC: decimal.RequireFromString("94.5")},
	{Model: "Logistic", Accuracy: decimal.RequireFromString("84.8"), F1: decimal.RequireFromString("84.6"), ROCAUC: decimal.RequireFromString("91.2")},
}

// Table returns a copy of the results table
func Table() []Row {
	return append([]Row(nil), table...)
}

// Strings renders a row the way the exports print it
func (r Row) Strings() []string {
	return []string{r.Model, r.Accuracy.String(), r.F1.String(), r.ROCAUC.String()}
}

// Best returns the row with the highest F1 score; ties keep table order.
func Best() Row {
	best := table[0]
	for _, r := range table[1:] {
		if r.F1.GreaterThan(best.F1) {
			best = r
		}
	}
	return best
}
