package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"novalib-backend/internal/domains/catalog"
	"novalib-backend/internal/domains/catalog/service"
	"novalib-backend/internal/domains/user"
	"novalib-backend/pkg/logger"
)

// LegacyHandler serves the historical circulation feeds with their
// original query params and raw JSON array bodies.
type LegacyHandler struct {
	svc *service.CatalogService
}

func NewLegacyHandler(svc *service.CatalogService) *LegacyHandler {
	return &LegacyHandler{svc: svc}
}

func (h *LegacyHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/book-log/", h.BookLog)
	r.GET("/user-wishlist/", h.UserWishlist)
}

func (h *LegacyHandler) BookLog(c *gin.Context) {
	q := catalog.BookLogQuery{
		Search:      c.Query("search"),
		Identifiers: identifiersFromQuery(c),
		Available:   parseTriState(c.Query("avalible")),
	}
	if v := parseTriState(c.Query("wishlist")); v != nil && *v {
		q.Wishlist = true
	}

	rows, err := h.svc.ListBookLog(c.Request.Context(), q)
	if err != nil {
		logger.Error("book log query failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *LegacyHandler) UserWishlist(c *gin.Context) {
	rows, err := h.svc.ListUserWishlist(c.Request.Context(), c.Query("search"), identifiersFromQuery(c))
	if err != nil {
		logger.Error("user wishlist query failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// identifiersFromQuery reads the historical lookup params. Both
// "barcode" and the older "barcode_number" spelling are accepted.
func identifiersFromQuery(c *gin.Context) user.Identifiers {
	barcode := c.Query("barcode")
	if barcode == "" {
		barcode = c.Query("barcode_number")
	}
	return user.Identifiers{
		Barcode:  barcode,
		UserID:   c.Query("user_id"),
		Email:    c.Query("email"),
		Username: c.Query("username"),
	}
}

// parseTriState maps the legacy flag spellings onto a tri-state bool.
// Unknown or absent values mean "not specified".
func parseTriState(v string) *bool {
	t, f := true, false
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return &t
	case "0", "false", "no":
		return &f
	default:
		return nil
	}
}
