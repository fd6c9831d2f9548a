package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/example/studydash/internal/apperrors"
	"github.com/example/studydash/internal/dashboard"
)

// APIResponse is the body of every /api response
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type handler struct {
	dash   *dashboard.Dashboard
	store  Pinger
	logger zerolog.Logger
}

// index renders the dashboard page from freshly loaded deadlines
func (h *handler) index(c *gin.Context) {
	if err := h.dash.ReloadDeadlines(c.Request.Context()); err != nil {
		h.logger.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Failed to load deadlines")
		c.String(http.StatusInternalServerError, "failed to load deadlines")
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", h.dash.RenderModel())
}

// api dispatches form-encoded mutations. Failures are reported in the body;
// the status code is always 200.
func (h *handler) api(c *gin.Context) {
	action := c.PostForm("action")

	resp, err := h.dispatch(c, action)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("action", action).
			Msg("API action failed")
		resp = APIResponse{Success: false, Message: err.Error()}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) dispatch(c *gin.Context, action string) (APIResponse, error) {
	ctx := c.Request.Context()

	switch action {
	case "update_gpa":
		value, err := parseFloat(c.PostForm("value"))
		if err != nil {
			return APIResponse{}, err
		}
		if err := h.dash.UpdateTargetGPA(ctx, value); err != nil {
			return APIResponse{}, err
		}
		return APIResponse{Success: true, Message: "Target GPA updated"}, nil

	case "update_date":
		if err := h.dash.UpdateTargetEndDate(ctx, c.PostForm("value")); err != nil {
			return APIResponse{}, err
		}
		return APIResponse{Success: true, Message: "Target end date updated"}, nil

	case "add_deadline":
		err := h.dash.AddDeadline(ctx, c.PostForm("type"), c.PostForm("module"), c.PostForm("date"))
		if err != nil {
			return APIResponse{}, err
		}
		return APIResponse{Success: true, Message: "Deadline added"}, nil

	case "delete_deadline":
		index, err := strconv.Atoi(c.PostForm("index"))
		if err != nil {
			return APIResponse{}, apperrors.Validation("parse index", err)
		}
		if err := h.dash.DeleteDeadline(ctx, index); err != nil {
			return APIResponse{}, err
		}
		if err := h.dash.ReloadDeadlines(ctx); err != nil {
			return APIResponse{}, err
		}
		return APIResponse{Success: true, Message: "Deadline deleted"}, nil
	}

	return APIResponse{Success: false, Message: "Unknown action"}, nil
}

// parseFloat accepts finite numbers only
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, apperrors.Validation("parse value", err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.Validation("parse value", fmt.Errorf("%q is not a finite number", s))
	}
	return v, nil
}

// health reports whether the store is reachable
func (h *handler) health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
