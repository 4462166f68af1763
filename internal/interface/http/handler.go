package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-buddy/internal/domain/directory"
	"github.com/yanqian/weather-buddy/internal/domain/weather"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	weatherSvc   weather.Service
	directorySvc directory.Service
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(weatherSvc weather.Service, directorySvc directory.Service, logger *slog.Logger) *Handler {
	return &Handler{
		weatherSvc:   weatherSvc,
		directorySvc: directorySvc,
		logger:       logger.With("component", "http.handler"),
	}
}

type directoryRequest struct {
	Text string `json:"text"`
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Weather answers a free-text weather question.
func (h *Handler) Weather(c *gin.Context) {
	var req weather.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.weatherSvc.Handle(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err, "weather_failed"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Directory answers restaurant, pharmacy and opening-hours questions.
func (h *Handler) Directory(c *gin.Context) {
	var req directoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	result, err := h.directorySvc.Handle(c.Request.Context(), req.Text)
	if err != nil {
		abortWithError(c, domainError(err, "directory_failed"))
		return
	}

	c.JSON(http.StatusOK, result)
}

// DirectoryCapabilities lists what the directory agent can do.
func (h *Handler) DirectoryCapabilities(c *gin.Context) {
	c.JSON(http.StatusOK, h.directorySvc.Capabilities())
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
