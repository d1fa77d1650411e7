package handlers

import (
	"net/http"

	"theray/models"
	"theray/services/scheduling"
	"theray/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler exposes the scheduling service over HTTP.
type SessionHandler struct {
	Service scheduling.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc scheduling.SessionService) *SessionHandler {
	registerValidators()
	return &SessionHandler{Service: svc}
}

type createSessionRequest struct {
	ProviderID  string             `json:"providerId" binding:"required"`
	Date        string             `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime   string             `json:"startTime" binding:"required,hhmm"`
	EndTime     string             `json:"endTime" binding:"required,hhmm"`
	Duration    int                `json:"duration" binding:"required,min=15,max=480"`
	SessionType models.SessionType `json:"sessionType" binding:"required,oneof=individual couple family group"`
	IsOnline    bool               `json:"isOnline"`
	ClientNotes string             `json:"clientNotes" binding:"max=1000"`
}

type updateSessionRequest struct {
	Status        *models.SessionStatus `json:"status" binding:"omitempty,oneof=scheduled completed cancelled no-show"`
	ClientNotes   *string               `json:"clientNotes" binding:"omitempty,max=1000"`
	ProviderNotes *string               `json:"providerNotes" binding:"omitempty,max=2000"`
	MeetingLink   *string               `json:"meetingLink" binding:"omitempty,url"`
}

type listSessionsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=scheduled completed cancelled no-show"`
	Date   string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
}

// actorFrom reads the identity the auth middleware placed on the context.
func actorFrom(c *gin.Context) (scheduling.Actor, bool) {
	userID := c.GetString("userID")
	role := c.GetString("role")
	if userID == "" || role == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return scheduling.Actor{}, false
	}
	return scheduling.Actor{ID: userID, Role: scheduling.Role(role)}, true
}

// CreateSessionHandler books a session for the calling client.
func (h *SessionHandler) CreateSessionHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	date, err := scheduling.ParseDay(req.Date)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	res, err := h.Service.CreateSession(c.Request.Context(), scheduling.CreateSessionRequest{
		ClientID:    actor.ID,
		ProviderID:  req.ProviderID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Duration:    req.Duration,
		SessionType: req.SessionType,
		IsOnline:    req.IsOnline,
		ClientNotes: req.ClientNotes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{
		"message": "Session booked successfully",
		"session": res.Session,
	}
	if len(res.Warnings) > 0 {
		getLogger(c).Warn("Session booked with warnings",
			zap.String("sessionID", res.Session.ID), zap.Strings("warnings", res.Warnings))
		body["warnings"] = res.Warnings
	}
	c.JSON(http.StatusCreated, body)
}

// ListSessionsHandler returns one page of the caller's sessions.
func (h *SessionHandler) ListSessionsHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var q listSessionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindingError(c, err)
		return
	}

	filter := models.SessionFilter{Status: models.SessionStatus(q.Status)}
	if q.Date != "" {
		date, err := scheduling.ParseDay(q.Date)
		if err != nil {
			respondBindingError(c, err)
			return
		}
		filter.Date = &date
	}

	page, err := h.Service.ListSessions(c.Request.Context(), actor, filter, q.Page, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetSessionHandler returns a single session the caller is a party to.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	session, err := h.Service.GetSession(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// UpdateSessionHandler applies a role-scoped patch.
func (h *SessionHandler) UpdateSessionHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	patch := models.SessionPatch{
		Status:        req.Status,
		ClientNotes:   req.ClientNotes,
		ProviderNotes: req.ProviderNotes,
		MeetingLink:   req.MeetingLink,
	}
	session, err := h.Service.ApplyUpdate(c.Request.Context(), c.Param("id"), actor, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Session updated successfully",
		"session": session,
	})
}

// CancelSessionHandler cancels a scheduled session.
func (h *SessionHandler) CancelSessionHandler(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	session, err := h.Service.CancelSession(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Session cancelled successfully",
		"session": session,
	})
}

// ProviderAvailabilityHandler lists a provider's open and still-free hours on a day.
func (h *SessionHandler) ProviderAvailabilityHandler(c *gin.Context) {
	date, err := scheduling.ParseDay(c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, KindInvalidRequest, "date query parameter must be in YYYY-MM-DD format")
		return
	}
	view, err := h.Service.ProviderAvailability(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
