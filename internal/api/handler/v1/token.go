package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/geoshapes/internal/api/handler/v1/request"
	"github.com/yizeng/geoshapes/internal/api/handler/v1/response"
	"github.com/yizeng/geoshapes/internal/domain"
	"github.com/yizeng/geoshapes/internal/service"
)

type ArtworkService interface {
	View(t domain.TokenID) service.TokenView
	Image(t domain.TokenID) ([]byte, string)
	Previews() []service.TokenView
}

type TokenHandler struct {
	svc ArtworkService
}

func NewTokenHandler(svc ArtworkService) *TokenHandler {
	return &TokenHandler{
		svc: svc,
	}
}

// HandleGetGeometry godoc
// @Summary      Get the geometry of a token
// @Description  Shape and colors are derived from the token id alone.
// @Tags         tokens
// @Produce      json
// @Param        tokenID  path      string  true  "Token ID (base 10)"
// @Success      200      {object}  service.TokenView
// @Failure      400      {object}  response.Err
// @Router       /tokens/{tokenID}/geometry [get]
func (h *TokenHandler) HandleGetGeometry(ctx *gin.Context) {
	id, ok := bindTokenID(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, h.svc.View(id))
}

// HandleGetImage godoc
// @Summary      Get the SVG artwork of a token
// @Tags         tokens
// @Produce      image/svg+xml
// @Param        tokenID  path      string  true  "Token ID (base 10)"
// @Success      200
// @Success      304
// @Failure      400      {object}  response.Err
// @Router       /tokens/{tokenID}/image.svg [get]
func (h *TokenHandler) HandleGetImage(ctx *gin.Context) {
	id, ok := bindTokenID(ctx)
	if !ok {
		return
	}

	svg, etag := h.svc.Image(id)
	ctx.Header("ETag", etag)
	ctx.Header("Cache-Control", "public, max-age=31536000, immutable")

	if ctx.GetHeader("If-None-Match") == etag {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.Data(http.StatusOK, "image/svg+xml", svg)
}

// HandleGetPreviews godoc
// @Summary      Get the preview tokens
// @Description  Tokens shown while the wallet has no selected token.
// @Tags         tokens
// @Produce      json
// @Success      200  {array}  service.TokenView
// @Router       /tokens/previews [get]
func (h *TokenHandler) HandleGetPreviews(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.svc.Previews())
}

func bindTokenID(ctx *gin.Context) (domain.TokenID, bool) {
	var req request.TokenURI
	if err := ctx.ShouldBindUri(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.TokenID{}, false
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.TokenID{}, false
	}

	id, err := req.Parse()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.TokenID{}, false
	}

	return id, true
}
