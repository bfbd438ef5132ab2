package results

import (
	"encoding/json"

	"heartbi/adapters/tabular"
)

// Download names and content types of the exports
const (
	CSVFilename   = "resultats_modeles.csv"
	JSONFilename  = "resultats.json"
	XLSXFilename  = "resultats_modeles.xlsx"
	CSVMimeType   = "text/csv"
	JSONMimeType  = "application/json"
	XLSXMimeType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxSheetName = "Resultats"
)

// Summary is the exported headline: best model, its F1 and the key features.
// Field order is the JSON key order.
type Summary struct {
	BestModel         string      `json:"meilleur_modele"`
	F1ScoreMax        json.Number `json:"f1_score_max"`
	ImportantFeatures []string    `json:"features_importantes"`
}

// Summarize builds the summary from the table
func Summarize() Summary {
	best := Best()
	return Summary{
		BestModel:         best.Model,
		F1ScoreMax:        json.Number(best.F1.String()),
		ImportantFeatures: append([]string(nil), ImportantFeatures...),
	}
}

// CSV serializes the table with its header row, UTF-8, no index column.
func CSV() ([]byte, error) {
	rows := make([][]string, len(table))
	for i, r := range table {
		rows[i] = r.Strings()
	}
	return tabular.WriteCSV(Headers, rows)
}

// JSON serializes Summarize() as indented JSON
func JSON() ([]byte, error) {
	return json.MarshalIndent(Summarize(), "", "  ")
}

// XLSX writes the table to a one-sheet workbook with numeric cells
func XLSX() ([]byte, error) {
	rows := make([][]interface{}, len(table))
	for i, r := range table {
		rows[i] = []interface{}{r.Model, r.Accuracy.InexactFloat64(), r.F1.InexactFloat64(), r.ROCAUC.InexactFloat64()}
	}
	return tabular.WriteXLSX(xlsxSheetName, Headers, rows)
}
