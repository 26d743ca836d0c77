package restapi

import (
	"strconv"
	"strings"

	"portfolio_dashboard/internal/app/port"
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/apperror"
	"portfolio_dashboard/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves profile, API key, wallet and banned-token management.
// Every mutation that changes what the dashboard shows drops the session's
// cached snapshot.
type AccountHandler struct {
	backend   port.BackendClient
	chains    port.ChainRegistry
	banned    port.BannedTokenProvider
	portfolio port.PortfolioService
}

func NewAccountHandler(backend port.BackendClient, chains port.ChainRegistry, banned port.BannedTokenProvider, portfolio port.PortfolioService) *AccountHandler {
	return &AccountHandler{backend: backend, chains: chains, banned: banned, portfolio: portfolio}
}

// ListChains is public: the registration form needs it before sign-in.
func (h *AccountHandler) ListChains(c *gin.Context) {
	respondOK(c, h.chains.GetAllChains(), "")
}

func (h *AccountHandler) GetProfile(c *gin.Context) {
	profile, err := h.backend.GetProfile(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile, "")
}

func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var update entity.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, apperror.Validation("invalid profile update"))
		return
	}
	if update.NewPassword != "" && update.CurrentPassword == "" {
		respondError(c, apperror.Validation("current password is required to set a new one"))
		return
	}
	if err := h.backend.UpdateProfile(c.Request.Context(), sessionFrom(c), update); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "Profile updated.")
}

func (h *AccountHandler) DeleteProfile(c *gin.Context) {
	sess := sessionFrom(c)
	if err := h.backend.DeleteProfile(c.Request.Context(), sess); err != nil {
		respondError(c, err)
		return
	}
	h.portfolio.Forget(sess)
	h.banned.Invalidate(sess)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	respondOK(c, nil, "Account deleted.")
}

func (h *AccountHandler) SaveAPIKey(c *gin.Context) {
	var key entity.APIKey
	if err := c.ShouldBindJSON(&key); err != nil || strings.TrimSpace(key.Service) == "" || strings.TrimSpace(key.Key) == "" {
		respondError(c, apperror.Validation("service and key are required"))
		return
	}
	if err := h.backend.SaveAPIKey(c.Request.Context(), sessionFrom(c), key); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, nil, "API key saved.")
}

func (h *AccountHandler) DeleteAPIKey(c *gin.Context) {
	if err := h.backend.DeleteAPIKey(c.Request.Context(), sessionFrom(c), c.Param("service")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "API key deleted.")
}

// CreateWallet validates the address against the chain before registering it.
func (h *AccountHandler) CreateWallet(c *gin.Context) {
	var req entity.NewWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.Validation("address and chain are required"))
		return
	}
	req.Address = strings.TrimSpace(req.Address)
	req.Chain = strings.ToUpper(strings.TrimSpace(req.Chain))
	if err := h.chains.ValidateWalletAddress(req.Chain, req.Address); err != nil {
		respondError(c, apperror.Validation(err.Error()))
		return
	}
	if def, _ := h.chains.GetChain(req.Chain); def.Family == entity.AddressFamilyEVM {
		req.Address = utils.ChecksumEVMAddress(req.Address)
	}

	sess := sessionFrom(c)
	wallet, err := h.backend.CreateWallet(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.portfolio.Forget(sess)
	respondCreated(c, wallet, "Wallet added.")
}

func (h *AccountHandler) DeleteWallet(c *gin.Context) {
	sess := sessionFrom(c)
	if err := h.backend.DeleteWallet(c.Request.Context(), sess, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	h.portfolio.Forget(sess)
	respondOK(c, nil, "Wallet deleted.")
}

// ListBannedTokens pages through the ban list: ?page&limit&search.
func (h *AccountHandler) ListBannedTokens(c *gin.Context) {
	page, err := intParam(c, "page", 1)
	if err != nil {
		respondError(c, err)
		return
	}
	limit, err := intParam(c, "limit", 10)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := h.backend.ListBannedTokens(c.Request.Context(), sessionFrom(c), entity.BannedTokenQuery{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result, "")
}

func (h *AccountHandler) BanToken(c *gin.Context) {
	var req entity.BanTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Address) == "" {
		respondError(c, apperror.Validation("token address is required"))
		return
	}
	req.Address = strings.TrimSpace(req.Address)

	sess := sessionFrom(c)
	banned, err := h.backend.BanToken(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(c)
	respondCreated(c, banned, "Token banned.")
}

func (h *AccountHandler) UnbanToken(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, apperror.Validation("id must be an integer"))
		return
	}
	if err := h.backend.UnbanToken(c.Request.Context(), sessionFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(c)
	respondOK(c, nil, "Token unbanned.")
}

func (h *AccountHandler) invalidate(c *gin.Context) {
	sess := sessionFrom(c)
	h.banned.Invalidate(sess)
	h.portfolio.Forget(sess)
}
