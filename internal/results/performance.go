package results

import (
	_ "embed"
	"html/template"
	"os"
	"path/filepath"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed content/analysis.md
var analysisMarkdown []byte

// ImagesMissingMessage replaces the performance charts when any is absent
const ImagesMissingMessage = "📂 Images disponibles localement pour le rapport final."

// Image is one performance chart served from the assets directory
type Image struct {
	Name    string
	Caption string
}

// Images lists the charts in display order
var Images = []Image{
	{Name: "eda.png", Caption: "Analyse exploratoire des données"},
	{Name: "importance.png", Caption: "Importance des variables"},
	{Name: "confusion.png", Caption: "Matrice de confusion"},
}

// IsImage reports whether name is one of the known chart files
func IsImage(name string) bool {
	for _, img := range Images {
		if img.Name == name {
			return true
		}
	}
	return false
}

// AvailableImages returns the charts when every one of them exists in dir.
// A single missing file yields ok=false; callers then show ImagesMissingMessage.
func AvailableImages(dir string) (images []Image, ok bool) {
	for _, img := range Images {
		info, err := os.Stat(filepath.Join(dir, img.Name))
		if err != nil || info.IsDir() {
			return nil, false
		}
	}
	return append([]Image(nil), Images...), true
}

// AnalysisHTML renders the BI commentary
func AnalysisHTML() template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return template.HTML(markdown.ToHTML(analysisMarkdown, p, renderer))
}
