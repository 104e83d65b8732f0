package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/geoshapes/internal/api/handler/v1/request"
	"github.com/yizeng/geoshapes/internal/api/handler/v1/response"
	"github.com/yizeng/geoshapes/internal/service"
)

const (
	msgTokensLoadFailed = "Error loading token data"
	msgMintedLoadFailed = "Error loading mint count"
)

type LedgerService interface {
	GetAccountTokens(ctx context.Context, owner string) ([]service.TokenView, error)
	GetMintedBy(ctx context.Context, minter string) (uint64, error)
}

type AccountHandler struct {
	svc LedgerService
}

func NewAccountHandler(svc LedgerService) *AccountHandler {
	return &AccountHandler{
		svc: svc,
	}
}

// HandleGetAccountTokens godoc
// @Summary      Get the tokens owned by an account
// @Tags         accounts
// @Produce      json
// @Param        address  path      string  true  "Account address (0x-prefixed hex)"
// @Success      200      {object}  response.AccountTokensResponse
// @Failure      400      {object}  response.Err
// @Failure      502      {object}  response.Err
// @Router       /accounts/{address}/tokens [get]
func (h *AccountHandler) HandleGetAccountTokens(ctx *gin.Context) {
	address, ok := bindAddress(ctx)
	if !ok {
		return
	}

	tokens, err := h.svc.GetAccountTokens(ctx.Request.Context(), address)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAddress) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("HandleGetAccountTokens -> h.svc.GetAccountTokens -> %w", err)
		response.RenderErr(ctx, response.ErrLedger(msgTokensLoadFailed, err))
		return
	}

	ctx.JSON(http.StatusOK, response.AccountTokensResponse{
		Account: address,
		Tokens:  tokens,
	})
}

// HandleGetMintedBy godoc
// @Summary      Get how many tokens an account has minted
// @Tags         accounts
// @Produce      json
// @Param        address  path      string  true  "Account address (0x-prefixed hex)"
// @Success      200      {object}  response.MintedByResponse
// @Failure      400      {object}  response.Err
// @Failure      502      {object}  response.Err
// @Router       /accounts/{address}/minted [get]
func (h *AccountHandler) HandleGetMintedBy(ctx *gin.Context) {
	address, ok := bindAddress(ctx)
	if !ok {
		return
	}

	count, err := h.svc.GetMintedBy(ctx.Request.Context(), address)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAddress) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("HandleGetMintedBy -> h.svc.GetMintedBy -> %w", err)
		response.RenderErr(ctx, response.ErrLedger(msgMintedLoadFailed, err))
		return
	}

	ctx.JSON(http.StatusOK, response.MintedByResponse{
		Account: address,
		Minted:  count,
	})
}

func bindAddress(ctx *gin.Context) (string, bool) {
	var req request.AccountURI
	if err := ctx.ShouldBindUri(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return "", false
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return "", false
	}

	return req.Address, true
}
