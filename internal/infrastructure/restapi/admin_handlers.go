package restapi

import (
	"portfolio_dashboard/internal/app/port"

	"github.com/gin-gonic/gin"
)

// AdminHandler proxies the admin endpoints. RequireAdmin guards the group.
type AdminHandler struct {
	admin port.AdminAPI
}

func NewAdminHandler(admin port.AdminAPI) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, users, "")
}

func (h *AdminHandler) GetSystemStats(c *gin.Context) {
	stats, err := h.admin.GetSystemStats(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, stats, "")
}

func (h *AdminHandler) ListWallets(c *gin.Context) {
	wallets, err := h.admin.ListAllWallets(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, wallets, "")
}

func (h *AdminHandler) ListHistory(c *gin.Context) {
	history, err := h.admin.ListAllHistory(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, history, "")
}
