package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/geoshapes/internal/api/handler/v1/request"
	"github.com/yizeng/geoshapes/internal/api/handler/v1/response"
	"github.com/yizeng/geoshapes/internal/domain"
	"github.com/yizeng/geoshapes/internal/session"
)

type SessionController interface {
	Snapshot(ctx context.Context) (session.Snapshot, error)
	Subscribe(ctx context.Context) (<-chan session.Snapshot, func(), error)
	Done() <-chan struct{}
	Connect(ctx context.Context) (session.Snapshot, error)
	Disconnect(ctx context.Context) (session.Snapshot, error)
	Select(ctx context.Context, t domain.TokenID) (session.Snapshot, error)
	Mint(ctx context.Context) (string, error)
}

type SessionHandler struct {
	ctrl SessionController
	art  ArtworkService
}

func NewSessionHandler(ctrl SessionController, art ArtworkService) *SessionHandler {
	return &SessionHandler{
		ctrl: ctrl,
		art:  art,
	}
}

// HandleGetSession godoc
// @Summary      Get the wallet session
// @Description  Connection status, owned tokens, supply and mint progress.
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.SessionResponse
// @Failure      503  {object}  response.Err
// @Router       /session [get]
func (h *SessionHandler) HandleGetSession(ctx *gin.Context) {
	snap, err := h.ctrl.Snapshot(ctx.Request.Context())
	if err != nil {
		h.renderSessionErr(ctx, "HandleGetSession -> h.ctrl.Snapshot", "", err)
		return
	}

	ctx.JSON(http.StatusOK, h.toResponse(snap))
}

// HandleGetSupply godoc
// @Summary      Get the collection supply
// @Description  Mirrors the on-chain total supply, refreshed on a timer.
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.SupplyResponse
// @Failure      503  {object}  response.Err
// @Router       /supply [get]
func (h *SessionHandler) HandleGetSupply(ctx *gin.Context) {
	snap, err := h.ctrl.Snapshot(ctx.Request.Context())
	if err != nil {
		h.renderSessionErr(ctx, "HandleGetSupply -> h.ctrl.Snapshot", "", err)
		return
	}

	if !snap.SupplyLoaded {
		response.RenderErr(ctx, response.ErrServiceUnavailable(errors.New("total supply not loaded yet")))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSupplyResponse(snap.Supply))
}

// HandleConnect godoc
// @Summary      Connect the wallet
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.SessionResponse
// @Failure      401  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /session/connect [post]
// @Security     BearerAuth
func (h *SessionHandler) HandleConnect(ctx *gin.Context) {
	snap, err := h.ctrl.Connect(ctx.Request.Context())
	if err != nil {
		h.renderSessionErr(ctx, "HandleConnect -> h.ctrl.Connect", session.MsgConnectFailed, err)
		return
	}

	ctx.JSON(http.StatusOK, h.toResponse(snap))
}

// HandleDisconnect godoc
// @Summary      Disconnect the wallet
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.SessionResponse
// @Failure      401  {object}  response.Err
// @Router       /session/disconnect [post]
// @Security     BearerAuth
func (h *SessionHandler) HandleDisconnect(ctx *gin.Context) {
	snap, err := h.ctrl.Disconnect(ctx.Request.Context())
	if err != nil {
		h.renderSessionErr(ctx, "HandleDisconnect -> h.ctrl.Disconnect", "", err)
		return
	}

	ctx.JSON(http.StatusOK, h.toResponse(snap))
}

// HandleSelectToken godoc
// @Summary      Select the displayed token
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      request.SelectTokenRequest  true  "request body"
// @Success      200      {object}  response.SessionResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /session/selection [put]
// @Security     BearerAuth
func (h *SessionHandler) HandleSelectToken(ctx *gin.Context) {
	var req request.SelectTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	id, err := req.Parse()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	snap, err := h.ctrl.Select(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrTokenNotOwned) {
			response.RenderErr(ctx, response.ErrNotFound("owned token", "tokenID", id))
			return
		}

		h.renderSessionErr(ctx, "HandleSelectToken -> h.ctrl.Select", "", err)
		return
	}

	ctx.JSON(http.StatusOK, h.toResponse(snap))
}

// HandleMint godoc
// @Summary      Mint a token
// @Description  Sends one payable mint() call from the service wallet. Failures are not retried.
// @Tags         session
// @Produce      json
// @Success      202  {object}  response.MintResponse
// @Failure      401  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /mint [post]
// @Security     BearerAuth
func (h *SessionHandler) HandleMint(ctx *gin.Context) {
	txHash, err := h.ctrl.Mint(ctx.Request.Context())
	if err != nil {
		h.renderSessionErr(ctx, "HandleMint -> h.ctrl.Mint", session.MsgMintFailed, err)
		return
	}

	ctx.JSON(http.StatusAccepted, response.MintResponse{TxHash: txHash})
}

func (h *SessionHandler) toResponse(snap session.Snapshot) response.SessionResponse {
	resp := response.SessionResponse{Snapshot: snap}
	if snap.Selected == nil {
		resp.Previews = h.art.Previews()
	}

	return resp
}

// renderSessionErr maps controller errors to responses. A non-empty
// ledgerMsg marks calls that reach the chain: their unknown failures are
// ledger failures shown with that message.
func (h *SessionHandler) renderSessionErr(ctx *gin.Context, where, ledgerMsg string, err error) {
	switch {
	case errors.Is(err, session.ErrNotConnected),
		errors.Is(err, session.ErrSoldOut),
		errors.Is(err, session.ErrMintInProgress):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, session.ErrStopped),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		response.RenderErr(ctx, response.ErrServiceUnavailable(err))
	case ledgerMsg != "":
		err = fmt.Errorf("%s -> %w", where, err)
		response.RenderErr(ctx, response.ErrLedger(session.UserMessage(err, ledgerMsg), err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", where, err)))
	}
}
