package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
	"github.com/comitanigiacomo/kanso-wellness/internal/logger"
)

type StatsHandler struct {
	svc        *services.StatsService
	defaultLoc *time.Location
	log        logger.Logger
}

func NewStatsHandler(svc *services.StatsService, defaultLoc *time.Location, log logger.Logger) *StatsHandler {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &StatsHandler{svc: svc, defaultLoc: defaultLoc, log: log}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("/overview", h.GetOverview)
		stats.GET("/weekly", h.GetWeekly)
		stats.GET("/calendar", h.GetCalendar)
	}
}

// GetOverview godoc
// @Summary  Streak, success rate and counts
// @Tags     stats
// @Produce  json
// @Param    X-Timezone header string false "IANA time zone"
// @Success  200 {object} domain.Overview
// @Router   /stats/overview [get]
// @Security BearerAuth
func (h *StatsHandler) GetOverview(c *gin.Context) {
	input, ok := h.input(c)
	if !ok {
		return
	}

	overview, err := h.svc.Overview(c.Request.Context(), input)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// GetWeekly godoc
// @Summary  This week's journal and check-in summary
// @Tags     stats
// @Produce  json
// @Param    X-Timezone header string false "IANA time zone"
// @Success  200 {object} domain.WeeklySummary
// @Router   /stats/weekly [get]
// @Security BearerAuth
func (h *StatsHandler) GetWeekly(c *gin.Context) {
	input, ok := h.input(c)
	if !ok {
		return
	}

	summary, err := h.svc.Weekly(c.Request.Context(), input)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetCalendar godoc
// @Summary  Check-in quality per day of a month
// @Tags     stats
// @Produce  json
// @Param    month query string false "YYYY-MM, defaults to the current month"
// @Success  200 {object} domain.MonthCalendar
// @Failure  400 {object} map[string]string
// @Router   /stats/calendar [get]
// @Security BearerAuth
func (h *StatsHandler) GetCalendar(c *gin.Context) {
	input, ok := h.input(c)
	if !ok {
		return
	}

	cal, err := h.svc.Calendar(c.Request.Context(), input, c.Query("month"))
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

func (h *StatsHandler) input(c *gin.Context) (domain.StatsInput, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return domain.StatsInput{}, false
	}

	loc, err := requestLocation(c, h.defaultLoc)
	if err != nil {
		handleError(c, h.log, err)
		return domain.StatsInput{}, false
	}

	return domain.StatsInput{UserID: userID, Location: loc}, true
}
