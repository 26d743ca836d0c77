package restapi

import (
	"net/http"

	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Data          any                       `json:"data,omitempty"`
	ServiceErrors []entity.WalletFetchError `json:"service_errors,omitempty"`
	Error         *apperror.AppError        `json:"error,omitempty"`
	StatusMessage string                    `json:"status_message"`
}

func respondOK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, APIResponse{Data: data, StatusMessage: message})
}

func respondCreated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, APIResponse{Data: data, StatusMessage: message})
}

// respondError aborts the request with the AppError found in err.
func respondError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, APIResponse{
		Error:         appErr,
		StatusMessage: appErr.Message,
	})
}

// dashboardMessage picks the status message of a dashboard response.
func dashboardMessage(d *entity.Dashboard) string {
	switch {
	case d.Notice != "":
		return d.Notice
	case len(d.Wallets) == 0:
		return "No wallets registered yet. Add a wallet from your profile."
	default:
		return "Portfolio retrieved successfully."
	}
}
