package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"novalib-backend/internal/domains/user"
	"novalib-backend/internal/domains/user/service"
	"novalib-backend/internal/shared/response"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterRoutes mounts the admin user and department endpoints.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}

	depts := rg.Group("/departments")
	{
		depts.POST("", h.CreateDepartment)
		depts.GET("", h.ListDepartments)
		depts.DELETE("/:id", h.DeleteDepartment)
	}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req user.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VAL_001", "Invalid request body")
		return
	}

	u, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u.ToDTO())
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]user.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToDTO())
	}
	response.Success(c, http.StatusOK, out)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "VAL_002", "Invalid user id")
		return
	}

	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u.ToDTO())
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "VAL_002", "Invalid user id")
		return
	}

	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VAL_001", "Invalid request body")
		return
	}

	u, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u.ToDTO())
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "VAL_002", "Invalid user id")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *UserHandler) CreateDepartment(c *gin.Context) {
	var req user.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VAL_001", "Invalid request body")
		return
	}

	d, err := h.svc.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, d)
}

func (h *UserHandler) ListDepartments(c *gin.Context) {
	depts, err := h.svc.ListDepartments(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	if depts == nil {
		depts = []user.Department{}
	}
	response.Success(c, http.StatusOK, depts)
}

func (h *UserHandler) DeleteDepartment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "VAL_002", "Invalid department id")
		return
	}
	if err := h.svc.DeleteDepartment(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *UserHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "USR_001", "User not found")
	case errors.Is(err, user.ErrBarcodeAlreadyExists):
		response.Conflict(c, "USR_002", "Barcode already exists")
	case errors.Is(err, user.ErrDepartmentNotFound):
		response.NotFound(c, "USR_003", "Department not found")
	case errors.Is(err, user.ErrDepartmentNameExists):
		response.Conflict(c, "USR_004", "Department name already exists")
	case errors.Is(err, user.ErrDepartmentInUse):
		response.Conflict(c, "USR_005", "Department still has members")
	default:
		var ve validation.Errors
		if errors.As(err, &ve) {
			response.BadRequest(c, "VAL_003", err.Error())
			return
		}
		response.InternalServerError(c, "SYS_001", "Internal server error")
	}
}
