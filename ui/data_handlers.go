package ui

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"heartbi/internal/dataset"
	"heartbi/internal/errors"
	"heartbi/internal/profiling"
	"heartbi/internal/results"

	"github.com/gin-gonic/gin"
)

// uploadField is the multipart field carrying the dataset file
const uploadField = "dataset"

// handleDatasetUpload replaces the session dataset with the uploaded file. A
// file that fails to parse still succeeds here: the session then holds the
// fallback dataset and its warning.
func (s *Server) handleDatasetUpload(c *gin.Context) {
	if s.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes)
	}

	file, header, err := c.Request.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit),
				"code":  errors.CodeInvalidInput,
			})
			return
		}
		respondError(c, errors.InvalidInput(fmt.Sprintf("missing %q file field", uploadField)))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, errors.Wrap(err, "failed to read upload"))
		return
	}

	snap := s.sessions.Replace(c.Request.Context(), sessionID(c), &dataset.Upload{
		Filename: header.Filename,
		Data:     data,
	})
	s.logger.Info("session %s uploaded %s (%d bytes, source %s)", snap.ID, header.Filename, len(data), snap.Dataset.Source)

	c.Redirect(http.StatusSeeOther, "/")
}

// handleDatasetReset drops the upload and reloads the default dataset
func (s *Server) handleDatasetReset(c *gin.Context) {
	snap := s.sessions.Reset(c.Request.Context(), sessionID(c))
	s.logger.Info("session %s reset to %s dataset", snap.ID, snap.Dataset.Source)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleDatasetOverview(c *gin.Context) {
	snap := s.sessions.Get(c.Request.Context(), sessionID(c))
	c.JSON(http.StatusOK, gin.H{
		"overview": profiling.Summarize(snap.Dataset),
		"columns":  snap.Dataset.Columns,
		"preview":  snap.Dataset.Head(previewRows),
		"warning":  snap.Warning,
	})
}

func (s *Server) handleDatasetDescribe(c *gin.Context) {
	snap := s.sessions.Get(c.Request.Context(), sessionID(c))
	c.JSON(http.StatusOK, gin.H{"columns": newColumnStatsResponse(profiling.Describe(snap.Dataset))})
}

// handleDatasetHistogram answers null when the dataset lacks age or target
func (s *Server) handleDatasetHistogram(c *gin.Context) {
	snap := s.sessions.Get(c.Request.Context(), sessionID(c))
	c.JSON(http.StatusOK, gin.H{"histogram": profiling.AgeHistogram(snap.Dataset)})
}

func (s *Server) handleResults(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"headers": results.Headers,
		"rows":    newResultRows(results.Table()),
		"summary": results.Summarize(),
	})
}

type export struct {
	filename string
	mimeType string
	render   func() ([]byte, error)
}

var exports = map[string]export{
	"csv":  {results.CSVFilename, results.CSVMimeType, results.CSV},
	"json": {results.JSONFilename, results.JSONMimeType, results.JSON},
	"xlsx": {results.XLSXFilename, results.XLSXMimeType, results.XLSX},
}

// handleExport downloads the results table as csv, json or xlsx
func (s *Server) handleExport(c *gin.Context) {
	format := c.Param("format")
	exp, ok := exports[format]
	if !ok {
		respondError(c, errors.InvalidInput(fmt.Sprintf("unknown export format %q", format)))
		return
	}

	data, err := exp.render()
	if err != nil {
		s.logger.Error("export %s failed: %v", format, err)
		respondError(c, errors.Wrapf(err, "failed to export %s", format))
		return
	}

	s.metrics.Exported(format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", exp.filename))
	c.Data(http.StatusOK, exp.mimeType, data)
}

// handleAsset serves the performance charts; other names are never looked up
func (s *Server) handleAsset(c *gin.Context) {
	name := c.Param("name")
	if !results.IsImage(name) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.File(filepath.Join(s.assetsDir, name))
}
