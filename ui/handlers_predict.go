package ui

import (
	"net/http"

	"heartbi/domain/heart"
	"heartbi/internal/errors"
	"heartbi/internal/scoring"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// handlePredict scores the form. JSON requests get the prediction back as
// JSON; form posts get the dashboard re-rendered on the Prédiction tab.
func (s *Server) handlePredict(c *gin.Context) {
	wantsJSON := c.ContentType() == binding.MIMEJSON

	form := defaultForm()
	result, err := s.predict(c, &form)
	if err != nil {
		s.logger.Debug("rejected prediction input: %v", err)
		if wantsJSON {
			respondError(c, err)
			return
		}
		snap := s.sessions.Get(c.Request.Context(), sessionID(c))
		page := s.buildIndexPage(snap, form)
		page.ActiveTab = tabPrediction
		page.FormError = err.Error()
		s.renderTemplate(c, http.StatusBadRequest, "index.html", page)
		return
	}

	s.metrics.Predicted(string(result.Input.Model), string(result.Label))
	s.logger.Info("prediction %s: %s (%s)", result.Input.Model, result.Label, result.Percent())

	if wantsJSON {
		c.JSON(http.StatusOK, newPredictionResponse(result))
		return
	}
	snap := s.sessions.Get(c.Request.Context(), sessionID(c))
	page := s.buildIndexPage(snap, form)
	page.ActiveTab = tabPrediction
	page.Prediction = newPredictionResponse(result)
	s.renderTemplate(c, http.StatusOK, "index.html", page)
}

// predict binds the request into form, fills the optional fields and scores it
func (s *Server) predict(c *gin.Context, form *predictForm) (scoring.Result, error) {
	if err := c.ShouldBind(form); err != nil {
		return scoring.Result{}, errors.WithCode(errors.CodeInvalidInput, err)
	}

	if form.Model == "" {
		form.Model = string(heart.ModelXGBoost)
	}
	if form.Estimators == 0 {
		form.Estimators = scoring.DefaultEstimators
	}

	model, err := heart.ParseModelChoice(form.Model)
	if err != nil {
		return scoring.Result{}, errors.InvalidInput(err.Error())
	}

	return scoring.Predict(scoring.Input{
		Age:        form.Age,
		Chol:       form.Chol,
		Thalach:    form.Thalach,
		CP:         form.CP,
		Model:      model,
		Estimators: form.Estimators,
	})
}
