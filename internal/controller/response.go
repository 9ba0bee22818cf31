package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"handloom_market/internal/service"
	"handloom_market/pkg/net"
)

// ==================== 统一响应 ====================

func success(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

func fail(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

func badRequest(ctx *gin.Context, err error) {
	fail(ctx, http.StatusBadRequest, "参数错误: "+err.Error())
}

// handleError 业务错误映射为 HTTP 状态码
func handleError(ctx *gin.Context, err error) {
	var mismatch *service.RoleMismatchError
	switch {
	case errors.As(err, &mismatch),
		errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrInvalidCredentials):
		fail(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrAccountInactive),
		errors.Is(err, service.ErrNotOwner):
		fail(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCartItemMissing),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrCampaignNotFound),
		errors.Is(err, service.ErrTicketNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		fail(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrNameTaken),
		errors.Is(err, service.ErrCampaignEnded),
		errors.Is(err, service.ErrOrderNotCancellable),
		errors.Is(err, service.ErrNotArtisan):
		fail(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidOrderStatus):
		fail(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, net.ErrCheckoutRejected):
		fail(ctx, http.StatusPaymentRequired, err.Error())
	default:
		_ = ctx.Error(err)
		fail(ctx, http.StatusInternalServerError, err.Error())
	}
}
