package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"novalib-backend/internal/domains/notification"
	"novalib-backend/internal/domains/notification/service"
	"novalib-backend/internal/shared/response"
	"novalib-backend/pkg/logger"
)

// NotificationHandler serves both the legacy feeds and the staff
// create/delete API.
type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// RegisterLegacyRoutes mounts the two public feed endpoints at their
// historical paths. Bodies are raw arrays, no envelope.
func (h *NotificationHandler) RegisterLegacyRoutes(r gin.IRouter) {
	r.GET("/library-notifications/", h.feed(notification.ChannelLibrary))
	r.GET("/notifications/", h.feed(notification.ChannelDeveloper))
}

// RegisterRoutes mounts the staff API; callers must be authenticated.
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/notifications", h.Create)
	rg.DELETE("/notifications/:id", h.Delete)
}

func (h *NotificationHandler) feed(ch notification.Channel) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := h.svc.Feed(c.Request.Context(), ch)
		if err != nil {
			logger.Error("feed query failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if rows == nil {
			rows = []notification.FeedRow{}
		}
		c.JSON(http.StatusOK, rows)
	}
}

// Create accepts a multipart form with channel, title, message and an
// optional image part.
func (h *NotificationHandler) Create(c *gin.Context) {
	var req notification.CreateNotificationRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "VAL_001", "Invalid request body")
		return
	}

	var image []byte
	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			response.BadRequest(c, "VAL_004", "Cannot read image")
			return
		}
		defer f.Close()
		image, err = io.ReadAll(f)
		if err != nil {
			response.BadRequest(c, "VAL_004", "Cannot read image")
			return
		}
	}

	authorID, ok := authorFromContext(c)
	if !ok {
		response.Unauthorized(c, "AUTH_001", "Missing authenticated user")
		return
	}

	n, err := h.svc.Create(c.Request.Context(), req, authorID, image)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, n)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "VAL_002", "Invalid notification id")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *NotificationHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, notification.ErrNotFound):
		response.NotFound(c, "NTF_001", "Notification not found")
	case errors.Is(err, notification.ErrInvalidChannel):
		response.BadRequest(c, "NTF_002", "Unknown notification channel")
	case errors.Is(err, notification.ErrInvalidImage):
		response.BadRequest(c, "NTF_003", "Invalid image upload")
	default:
		response.InternalServerError(c, "SYS_001", "Internal server error")
	}
}

func authorFromContext(c *gin.Context) (int64, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
