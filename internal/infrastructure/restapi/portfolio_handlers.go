package restapi

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"time"

	"portfolio_dashboard/internal/app/port"
	"portfolio_dashboard/internal/app/valuation"
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// WalletsView is the payload of GET /api/v1/wallets: the wallets with their
// balances and the per-wallet value cards.
type WalletsView struct {
	Wallets   []entity.Wallet          `json:"wallets"`
	Summaries []entity.WalletValuation `json:"summaries"`
}

// PortfolioHandler обрабатывает HTTP запросы, связанные с портфелем.
type PortfolioHandler struct {
	portfolioService port.PortfolioService
}

// NewPortfolioHandler создает новый экземпляр PortfolioHandler.
func NewPortfolioHandler(ps port.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: ps}
}

func (h *PortfolioHandler) GetDashboard(c *gin.Context) {
	d, err := h.portfolioService.GetDashboard(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Data: d, ServiceErrors: d.Errors, StatusMessage: dashboardMessage(d)})
}

// RefreshDashboard is the user-initiated refresh.
func (h *PortfolioHandler) RefreshDashboard(c *gin.Context) {
	d, err := h.portfolioService.RefreshDashboard(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Data: d, ServiceErrors: d.Errors, StatusMessage: dashboardMessage(d)})
}

// ListTokens serves the token table: ?search&sort&direction&nfts&page&pageSize.
func (h *PortfolioHandler) ListTokens(c *gin.Context) {
	query, err := tokenQueryFrom(c)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := intParam(c, "page", 1)
	if err != nil {
		respondError(c, err)
		return
	}
	pageSize, err := intParam(c, "pageSize", 0)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.portfolioService.ListTokens(c.Request.Context(), sessionFrom(c), query, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result, "")
}

func (h *PortfolioHandler) ListWallets(c *gin.Context) {
	d, err := h.portfolioService.GetDashboard(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{
		Data:          WalletsView{Wallets: d.Wallets, Summaries: d.Summary.Wallets},
		ServiceErrors: d.Errors,
		StatusMessage: dashboardMessage(d),
	})
}

func (h *PortfolioHandler) GetDistribution(c *gin.Context) {
	includeNFTs, err := boolParam(c, "nfts", true)
	if err != nil {
		respondError(c, err)
		return
	}
	slices, err := h.portfolioService.GetDistribution(c.Request.Context(), sessionFrom(c), includeNFTs)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, slices, "")
}

func (h *PortfolioHandler) GetHistory(c *gin.Context) {
	history, err := h.portfolioService.GetHistory(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, history, "")
}

// ExportCSV streams the filtered token table as a CSV download. The body is
// buffered so that a failure can still be reported as JSON.
func (h *PortfolioHandler) ExportCSV(c *gin.Context) {
	query, err := tokenQueryFrom(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.portfolioService.ExportCSV(c.Request.Context(), sessionFrom(c), query, &buf); err != nil {
		respondError(c, err)
		return
	}

	filename := valuation.ExportFileName(time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func tokenQueryFrom(c *gin.Context) (entity.TokenQuery, error) {
	includeNFTs, err := boolParam(c, "nfts", true)
	if err != nil {
		return entity.TokenQuery{}, err
	}
	return entity.TokenQuery{
		Search:      strings.TrimSpace(c.Query("search")),
		Sort:        entity.ParseSortField(c.Query("sort")),
		Direction:   entity.ParseSortDirection(c.Query("direction")),
		IncludeNFTs: includeNFTs,
	}, nil
}

func intParam(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apperror.Validation(name + " must be a non-negative integer")
	}
	return v, nil
}

func boolParam(c *gin.Context, name string, fallback bool) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperror.Validation(name + " must be a boolean")
	}
	return v, nil
}
