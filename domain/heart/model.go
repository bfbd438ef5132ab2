package heart

import (
	"fmt"
	"strings"
)

// ModelChoice is one of the nominal "models" offered by the dashboard. None of
// them is a trained artifact; each only contributes a fixed base score.
type ModelChoice string

const (
	ModelXGBoost      ModelChoice = "XGBoost"
	ModelRandomForest ModelChoice = "RandomForest"
	ModelLogistic     ModelChoice = "Logistic"
)

// ModelChoices lists the variants in selector order; the first is the default.
var ModelChoices = []ModelChoice{ModelXGBoost, ModelRandomForest, ModelLogistic}

var baseScores = map[ModelChoice]float64{
	ModelXGBoost:      0.89,
	ModelRandomForest: 0.87,
	ModelLogistic:     0.84,
}

var labels = map[ModelChoice]string{
	ModelXGBoost:      "XGBoost (89.4%) ✅",
	ModelRandomForest: "RandomForest (87.8%)",
	ModelLogistic:     "Logistic (84.6%)",
}

// BaseScore returns the additive offset used by the risk formula.
func (m ModelChoice) BaseScore() float64 { return baseScores[m] }

// Label is the selector caption shown next to the prediction.
func (m ModelChoice) Label() string { return labels[m] }

func (m ModelChoice) String() string { return string(m) }

// ParseModelChoice accepts a model name or its selector label, case-insensitively.
func ParseModelChoice(s string) (ModelChoice, error) {
	s = strings.TrimSpace(s)
	for _, m := range ModelChoices {
		if strings.EqualFold(s, string(m)) || s == m.Label() {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown model %q", s)
}
