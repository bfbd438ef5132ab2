package ui

import (
	"bytes"
	"net/http"

	"heartbi/internal/errors"

	"github.com/gin-gonic/gin"
)

// renderTemplate executes a template into a buffer first so a failing
// template never leaves a half-written page behind.
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "Template rendering failed",
			"code":  errors.CodeInternalError,
		})
		return
	}

	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// respondError writes {"error", "code"} with a status derived from the code
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": code})
}
