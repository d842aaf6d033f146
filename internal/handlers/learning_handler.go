package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"terra-farm/internal/learning"
)

// Read actions dispatched from the query string, write actions from the body
const (
	actionModules          = "modules"
	actionProgress         = "progress"
	actionModuleContent    = "module-content"
	actionAssessments      = "assessments"
	actionLeaderboard      = "leaderboard"
	actionStartModule      = "start-module"
	actionCompleteModule   = "complete-module"
	actionSubmitAssessment = "submit-assessment"
)

// LearningHandler serves the learning hub API
type LearningHandler struct {
	service learning.Service
	logger  *zap.Logger
}

// NewLearningHandler creates a new handler
func NewLearningHandler(service learning.Service, logger *zap.Logger) *LearningHandler {
	return &LearningHandler{
		service: service,
		logger:  logger,
	}
}

type writeRequest struct {
	Action       string        `json:"action"`
	ModuleID     string        `json:"moduleId"`
	AssessmentID string        `json:"assessmentId"`
	Answers      []interface{} `json:"answers"`
}

// HandleGet dispatches GET /learning-hub?action=...
func (h *LearningHandler) HandleGet(c *gin.Context) {
	action := c.Query("action")
	userID := c.DefaultQuery("userId", "guest")
	ctx := c.Request.Context()

	switch action {
	case actionModules:
		result, hit, err := h.service.Modules(ctx, userID, c.DefaultQuery("level", "all"))
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    result,
			"cache":   gin.H{"hit": hit},
		})

	case actionProgress:
		result, _, err := h.service.Progress(ctx, userID)
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})

	case actionModuleContent:
		result, _, err := h.service.ModuleContent(ctx, userID, c.Query("moduleId"))
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})

	case actionAssessments:
		result, _, err := h.service.Assessments(ctx, userID)
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})

	case actionLeaderboard:
		result, _, err := h.service.Leaderboard(ctx, userID)
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})

	default:
		h.renderError(c, learning.ErrInvalidAction)
	}
}

// HandlePost dispatches POST /learning-hub with an action body
func (h *LearningHandler) HandlePost(c *gin.Context) {
	userID := c.DefaultQuery("userId", "guest")
	ctx := c.Request.Context()

	var req writeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	switch req.Action {
	case actionStartModule:
		result, err := h.service.StartModule(ctx, userID, req.ModuleID)
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})

	case actionCompleteModule:
		result, err := h.service.CompleteModule(ctx, userID, req.ModuleID)
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})

	case actionSubmitAssessment:
		result, err := h.service.SubmitAssessment(ctx, userID, req.AssessmentID, req.Answers)
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})

	default:
		h.renderError(c, learning.ErrInvalidAction)
	}
}

// renderError maps the learning error taxonomy onto the HTTP surface.
// Anything unclassified is an internal failure: logged, reported once,
// never retried.
func (h *LearningHandler) renderError(c *gin.Context, err error) {
	var missing *learning.MissingParameterError
	var notFound *learning.NotFoundError

	switch {
	case errors.Is(err, learning.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{"error": missing.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	default:
		h.logger.Error("learning action failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"details": err.Error(),
		})
	}
}
