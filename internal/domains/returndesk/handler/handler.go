package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"novalib-backend/internal/domains/returndesk"
	"novalib-backend/internal/domains/returndesk/service"
	"novalib-backend/internal/shared/response"
)

type ReturnDeskHandler struct {
	svc *service.ReturnDeskService
}

func NewReturnDeskHandler(svc *service.ReturnDeskService) *ReturnDeskHandler {
	return &ReturnDeskHandler{svc: svc}
}

func (h *ReturnDeskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	desk := rg.Group("/return-desk")
	{
		desk.POST("", h.Create)
		desk.GET("/students/:id", h.ListByStudent)
		desk.GET("/students/:id/due-fine", h.DueFine)
		desk.DELETE("/:id", h.Delete)
	}
}

func (h *ReturnDeskHandler) Create(c *gin.Context) {
	var req returndesk.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VAL_001", "Invalid request body")
		return
	}
	e, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, e)
}

func (h *ReturnDeskHandler) ListByStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	entries, err := h.svc.ListByStudent(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if entries == nil {
		entries = []returndesk.Entry{}
	}
	response.Success(c, http.StatusOK, entries)
}

func (h *ReturnDeskHandler) DueFine(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	total, err := h.svc.DueFine(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"student_id": id,
		"due_fine":   total,
	})
}

func (h *ReturnDeskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "VAL_002", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *ReturnDeskHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, returndesk.ErrEntryNotFound):
		response.NotFound(c, "RDK_001", "Return desk entry not found")
	case errors.Is(err, returndesk.ErrStudentNotFound):
		response.NotFound(c, "RDK_002", "Student not found")
	case errors.Is(err, returndesk.ErrNegativeFine):
		response.BadRequest(c, "RDK_003", "Fine must not be negative")
	default:
		var ve validation.Errors
		if errors.As(err, &ve) {
			response.BadRequest(c, "VAL_003", err.Error())
			return
		}
		response.InternalServerError(c, "SYS_001", "Internal server error")
	}
}
