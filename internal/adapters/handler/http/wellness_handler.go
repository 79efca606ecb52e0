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

type WellnessHandler struct {
	svc        *services.WellnessService
	defaultLoc *time.Location
	log        logger.Logger
}

func NewWellnessHandler(svc *services.WellnessService, defaultLoc *time.Location, log logger.Logger) *WellnessHandler {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &WellnessHandler{
		svc:        svc,
		defaultLoc: defaultLoc,
		log:        log,
	}
}

type checkInRequest struct {
	Date string `json:"date"`
	domain.CheckInAnswers
}

type journalRequest struct {
	Gratitude    string `json:"gratitude"`
	Reflection   string `json:"reflection"`
	Emotion      string `json:"emotion" binding:"required"`
	EmotionGlyph string `json:"emotion_glyph"`
}

type triggerRequest struct {
	Situation string `json:"situation" binding:"required"`
	Reaction  string `json:"reaction"`
	Emotion   string `json:"emotion"`
	Intensity int    `json:"intensity" binding:"required"`
}

func (h *WellnessHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/snapshot", h.GetSnapshot)
	router.GET("/milestones", h.ListMilestones)

	checkIns := router.Group("/checkins")
	{
		checkIns.POST("", h.SubmitCheckIn)
		checkIns.GET("", h.ListCheckIns)
	}

	journal := router.Group("/journal")
	{
		journal.POST("", h.AddJournalEntry)
		journal.GET("", h.ListJournalEntries)
	}

	triggers := router.Group("/triggers")
	{
		triggers.POST("", h.AddTrigger)
		triggers.GET("", h.ListTriggers)
	}
}

// GetSnapshot godoc
// @Summary  Full wellness snapshot of the caller
// @Tags     snapshot
// @Produce  json
// @Param    X-Timezone header string false "IANA time zone"
// @Success  200 {object} domain.Snapshot
// @Router   /snapshot [get]
// @Security BearerAuth
func (h *WellnessHandler) GetSnapshot(c *gin.Context) {
	userID, loc, ok := h.scope(c)
	if !ok {
		return
	}

	snap, err := h.svc.Snapshot(c.Request.Context(), userID, loc)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// SubmitCheckIn godoc
// @Summary  Record the daily check-in
// @Tags     checkins
// @Accept   json
// @Produce  json
// @Param    X-Timezone header string false "IANA time zone"
// @Param    body body checkInRequest true "Answers; date defaults to today"
// @Success  201 {object} services.CheckInResult
// @Success  200 {object} services.CheckInResult "already checked in that day"
// @Failure  400 {object} map[string]string
// @Router   /checkins [post]
// @Security BearerAuth
func (h *WellnessHandler) SubmitCheckIn(c *gin.Context) {
	userID, loc, ok := h.scope(c)
	if !ok {
		return
	}

	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.SubmitCheckIn(c.Request.Context(), services.SubmitCheckInInput{
		UserID:   userID,
		Date:     req.Date,
		Answers:  req.CheckInAnswers,
		Location: loc,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	status := http.StatusCreated
	if !res.Accepted {
		status = http.StatusOK
	}
	c.JSON(status, res)
}

// ListCheckIns godoc
// @Summary  Check-ins, newest first
// @Tags     checkins
// @Produce  json
// @Param    limit query int false "max items (0 = all)"
// @Success  200 {array} domain.CheckIn
// @Router   /checkins [get]
// @Security BearerAuth
func (h *WellnessHandler) ListCheckIns(c *gin.Context) {
	userID, limit, ok := h.listScope(c)
	if !ok {
		return
	}

	items, err := h.svc.CheckIns(c.Request.Context(), userID, limit)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddJournalEntry godoc
// @Summary  Write a journal entry
// @Tags     journal
// @Accept   json
// @Produce  json
// @Param    body body journalRequest true "Entry"
// @Success  201 {object} services.JournalResult
// @Failure  400 {object} map[string]string
// @Router   /journal [post]
// @Security BearerAuth
func (h *WellnessHandler) AddJournalEntry(c *gin.Context) {
	userID, loc, ok := h.scope(c)
	if !ok {
		return
	}

	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.AddJournalEntry(c.Request.Context(), services.AddJournalInput{
		UserID:       userID,
		Gratitude:    req.Gratitude,
		Reflection:   req.Reflection,
		Emotion:      req.Emotion,
		EmotionGlyph: req.EmotionGlyph,
		Location:     loc,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ListJournalEntries godoc
// @Summary  Journal entries, newest first
// @Tags     journal
// @Produce  json
// @Param    limit query int false "max items (0 = all)"
// @Success  200 {array} domain.JournalEntry
// @Router   /journal [get]
// @Security BearerAuth
func (h *WellnessHandler) ListJournalEntries(c *gin.Context) {
	userID, limit, ok := h.listScope(c)
	if !ok {
		return
	}

	items, err := h.svc.JournalEntries(c.Request.Context(), userID, limit)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddTrigger godoc
// @Summary  Log a trigger
// @Tags     triggers
// @Accept   json
// @Produce  json
// @Param    body body triggerRequest true "Trigger"
// @Success  201 {object} services.TriggerResult
// @Failure  400 {object} map[string]string
// @Router   /triggers [post]
// @Security BearerAuth
func (h *WellnessHandler) AddTrigger(c *gin.Context) {
	userID, loc, ok := h.scope(c)
	if !ok {
		return
	}

	var req triggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.AddTrigger(c.Request.Context(), services.AddTriggerInput{
		UserID:    userID,
		Situation: req.Situation,
		Reaction:  req.Reaction,
		Emotion:   req.Emotion,
		Intensity: req.Intensity,
		Location:  loc,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ListTriggers godoc
// @Summary  Triggers, newest first
// @Tags     triggers
// @Produce  json
// @Param    limit query int false "max items (0 = all)"
// @Success  200 {array} domain.TriggerEntry
// @Router   /triggers [get]
// @Security BearerAuth
func (h *WellnessHandler) ListTriggers(c *gin.Context) {
	userID, limit, ok := h.listScope(c)
	if !ok {
		return
	}

	items, err := h.svc.Triggers(c.Request.Context(), userID, limit)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListMilestones godoc
// @Summary  Milestone table with unlock state
// @Tags     milestones
// @Produce  json
// @Success  200 {array} domain.Milestone
// @Router   /milestones [get]
// @Security BearerAuth
func (h *WellnessHandler) ListMilestones(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	items, err := h.svc.Milestones(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *WellnessHandler) scope(c *gin.Context) (string, *time.Location, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", nil, false
	}

	loc, err := requestLocation(c, h.defaultLoc)
	if err != nil {
		handleError(c, h.log, err)
		return "", nil, false
	}
	return userID, loc, true
}

func (h *WellnessHandler) listScope(c *gin.Context) (string, int, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", 0, false
	}

	limit, err := listLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", 0, false
	}
	return userID, limit, true
}
