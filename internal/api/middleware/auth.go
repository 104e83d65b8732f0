package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/geoshapes/internal/api/handler/v1/response"
	"github.com/yizeng/geoshapes/internal/pkg/jwthelper"
)

const OperatorKey = "operator"

var errMissingBearer = errors.New("missing bearer token")

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT guards the routes that spend from the service wallet.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingBearer))
			ctx.Abort()
			return
		}

		subject, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			ctx.Abort()
			return
		}

		ctx.Set(OperatorKey, subject)
		ctx.Next()
	}
}
