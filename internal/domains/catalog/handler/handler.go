package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"novalib-backend/internal/domains/catalog"
	"novalib-backend/internal/domains/catalog/service"
	"novalib-backend/internal/shared/response"
)

// CatalogHandler serves the staff catalog and circulation API.
type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	entries := rg.Group("/catalog/entries")
	{
		entries.POST("", h.CreateEntry)
		entries.GET("", h.ListEntries)
		entries.GET("/:id", h.GetEntry)
		entries.PUT("/:id", h.UpdateEntry)
		entries.DELETE("/:id", h.DeleteEntry)
		entries.GET("/:id/copies", h.ListCopies)
	}

	copies := rg.Group("/catalog/copies")
	{
		copies.POST("", h.CreateCopy)
		copies.GET("/:id", h.GetCopy)
		copies.DELETE("/:id", h.DeleteCopy)
		copies.POST("/:id/checkout", h.Checkout)
		copies.POST("/:id/return", h.Return)
	}

	wishlist := rg.Group("/catalog/wishlist")
	{
		wishlist.POST("", h.AddToWishlist)
		wishlist.DELETE("", h.RemoveFromWishlist)
	}
}

func (h *CatalogHandler) CreateEntry(c *gin.Context) {
	var req catalog.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VAL_001", "Invalid request body")
		return
	}
	e, err := h.svc.CreateEntry(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, e)
}

func (h *CatalogHandler) ListEntries(c *gin.Context) {
	entries, err := h.svc.ListEntries(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if entries == nil {
		entries = []catalog.CatalogEntry{}
	}
	response.Success(c, http.StatusOK, entries)
}

func (h *CatalogHandler) GetEntry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.svc.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

func (h *CatalogHandler) UpdateEntry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req catalog.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VAL_001", "Invalid request body")
		return
	}
	e, err := h.svc.UpdateEntry(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

func (h *CatalogHandler) DeleteEntry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteEntry(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *CatalogHandler) ListCopies(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	copies, err := h.svc.ListCopiesByEntry(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if copies == nil {
		copies = []catalog.Copy{}
	}
	response.Success(c, http.StatusOK, copies)
}

func (h *CatalogHandler) CreateCopy(c *gin.Context) {
	var req catalog.CreateCopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VAL_001", "Invalid request body")
		return
	}
	cp, err := h.svc.CreateCopy(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cp)
}

func (h *CatalogHandler) GetCopy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cp, err := h.svc.GetCopy(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cp)
}

func (h *CatalogHandler) DeleteCopy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCopy(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *CatalogHandler) Checkout(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req catalog.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VAL_001", "Invalid request body")
		return
	}
	if err := h.svc.Checkout(c.Request.Context(), id, req); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"checked_out": true})
}

func (h *CatalogHandler) Return(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Return(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"returned": true})
}

func (h *CatalogHandler) AddToWishlist(c *gin.Context) {
	var req catalog.WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VAL_001", "Invalid request body")
		return
	}
	if err := h.svc.AddToWishlist(c.Request.Context(), req); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"wishlisted": true})
}

func (h *CatalogHandler) RemoveFromWishlist(c *gin.Context) {
	var req catalog.WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VAL_001", "Invalid request body")
		return
	}
	if err := h.svc.RemoveFromWishlist(c.Request.Context(), req); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"wishlisted": false})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "VAL_002", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *CatalogHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrEntryNotFound):
		response.NotFound(c, "CAT_001", "Catalog entry not found")
	case errors.Is(err, catalog.ErrCopyNotFound):
		response.NotFound(c, "CAT_002", "Copy not found")
	case errors.Is(err, catalog.ErrCopyBarcodeExists):
		response.Conflict(c, "CAT_003", "Copy barcode already exists")
	case errors.Is(err, catalog.ErrCopyUnavailable):
		response.Conflict(c, "CAT_004", "Copy is already checked out")
	default:
		var ve validation.Errors
		if errors.As(err, &ve) {
			response.BadRequest(c, "VAL_003", err.Error())
			return
		}
		response.InternalServerError(c, "SYS_001", "Internal server error")
	}
}
