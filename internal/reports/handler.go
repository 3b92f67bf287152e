package reports

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/documents"
	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches scoring and report routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ats/score", h.scoreText)
	rg.POST("/documents/:id/score", h.scoreDocument)
	rg.GET("/reports", h.list)
	rg.GET("/reports/:id", h.get)
}

type scoreTextRequest struct {
	ResumeText           string `json:"resumeText"`
	JobDescription       string `json:"jobDescription"`
	JobDescriptionFormat string `json:"jobDescriptionFormat"`
}

type scoreDocumentRequest struct {
	JobDescription       string `json:"jobDescription"`
	JobDescriptionFormat string `json:"jobDescriptionFormat"`
}

func (h *Handler) scoreText(c *gin.Context) {
	var req scoreTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	rep, err := h.Svc.ScoreText(c.Request.Context(), middleware.UserIDFromContext(c), ScoreInput{
		ResumeText:           req.ResumeText,
		JobDescription:       req.JobDescription,
		JobDescriptionFormat: req.JobDescriptionFormat,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Set(middleware.ReportIDKey, rep.ID)
	respond.Created(c, ToResponse(rep))
}

func (h *Handler) scoreDocument(c *gin.Context) {
	var req scoreDocumentRequest
	// The body is optional; an empty one scores without a job description.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	documentID := c.Param("id")
	c.Set(middleware.DocumentIDKey, documentID)

	rep, err := h.Svc.ScoreDocument(c.Request.Context(), middleware.UserIDFromContext(c), documentID, ScoreInput{
		JobDescription:       req.JobDescription,
		JobDescriptionFormat: req.JobDescriptionFormat,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Set(middleware.ReportIDKey, rep.ID)
	respond.Created(c, ToResponse(rep))
}

func (h *Handler) get(c *gin.Context) {
	rep, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.ReportIDKey, rep.ID)
	if rep.DocumentID != "" {
		c.Set(middleware.DocumentIDKey, rep.DocumentID)
	}
	respond.OK(c, ToResponse(rep))
}

func (h *Handler) list(c *gin.Context) {
	limit, offset := documents.Pagination(c)
	reps, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, toListItems(reps))
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "report not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, documents.ErrNotFound),
		errors.Is(err, documents.ErrInvalidInput),
		errors.Is(err, documents.ErrExtraction):
		documents.WriteError(c, err)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "scoring request failed", nil)
	}
}
