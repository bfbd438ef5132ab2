package ui

import (
	"heartbi/domain/heart"
	"heartbi/internal/profiling"
	"heartbi/internal/results"
	"heartbi/internal/session"

	"github.com/gin-gonic/gin"
)

// handleIndex serves the dashboard with its four tabs
func (s *Server) handleIndex(c *gin.Context) {
	snap := s.sessions.Get(c.Request.Context(), sessionID(c))

	page := s.buildIndexPage(snap, defaultForm())
	switch tab := c.Query("tab"); tab {
	case tabData, tabPrediction, tabPerformance, tabExport:
		page.ActiveTab = tab
	}
	s.renderTemplate(c, 200, "index.html", page)
}

// buildIndexPage assembles every tab from the session dataset and the form state
func (s *Server) buildIndexPage(snap *session.Snapshot, form predictForm) *indexPage {
	ds := snap.Dataset
	page := &indexPage{
		ActiveTab: tabData,
		Filename:  snap.Filename,
		Models:    modelOptions(form.Model),

		Warning:   snap.Warning,
		Overview:  profiling.Summarize(ds),
		Columns:   ds.Columns,
		Preview:   previewTable(snap),
		Describe:  profiling.Describe(ds),
		Histogram: newHistogramView(profiling.AgeHistogram(ds)),

		Form:   form,
		Ranges: sliderRanges,

		ResultHeaders: results.Headers,
		Analysis:      results.AnalysisHTML(),
	}

	for _, r := range results.Table() {
		page.Results = append(page.Results, r.Strings())
	}

	if images, ok := results.AvailableImages(s.assetsDir); ok {
		page.Images = images
	} else {
		page.ImagesMessage = results.ImagesMissingMessage
	}

	if summary, err := results.JSON(); err == nil {
		page.SummaryJSON = string(summary)
	} else {
		s.logger.Error("failed to render export summary: %v", err)
	}

	return page
}

func modelOptions(selected string) []modelOption {
	chosen, err := heart.ParseModelChoice(selected)
	if err != nil {
		chosen = heart.ModelXGBoost
	}
	opts := make([]modelOption, len(heart.ModelChoices))
	for i, m := range heart.ModelChoices {
		opts[i] = modelOption{Value: string(m), Label: m.Label(), Selected: m == chosen}
	}
	return opts
}
