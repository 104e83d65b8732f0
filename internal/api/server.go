package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/yizeng/geoshapes/docs"
	v1 "github.com/yizeng/geoshapes/internal/api/handler/v1"
	"github.com/yizeng/geoshapes/internal/api/middleware"
	"github.com/yizeng/geoshapes/internal/config"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, ctrl v1.SessionController, ledgerSvc v1.LedgerService, art v1.ArtworkService) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	sessionHandler := v1.NewSessionHandler(ctrl, art)
	tokenHandler := v1.NewTokenHandler(art)
	accountHandler := v1.NewAccountHandler(ledgerSvc)
	s.MountHandlers(sessionHandler, tokenHandler, accountHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(sessionHandler *v1.SessionHandler, tokenHandler *v1.TokenHandler, accountHandler *v1.AccountHandler) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.GET("/supply", sessionHandler.HandleGetSupply)
		public.GET("/session", sessionHandler.HandleGetSession)
		public.GET("/session/stream", sessionHandler.HandleStream(s.Config.API.AllowedCORSDomains))

		public.GET("/tokens/previews", tokenHandler.HandleGetPreviews)
		public.GET("/tokens/:tokenID/geometry", tokenHandler.HandleGetGeometry)
		public.GET("/tokens/:tokenID/image.svg", tokenHandler.HandleGetImage)

		public.GET("/accounts/:address/tokens", accountHandler.HandleGetAccountTokens)
		public.GET("/accounts/:address/minted", accountHandler.HandleGetMintedBy)
	}

	operator := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		operator.POST("/session/connect", sessionHandler.HandleConnect)
		operator.POST("/session/disconnect", sessionHandler.HandleDisconnect)
		operator.PUT("/session/selection", sessionHandler.HandleSelectToken)
		operator.POST("/mint", sessionHandler.HandleMint)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "GeoShapes API"
	docs.SwaggerInfo.Description = "Wallet session, minting and artwork for the GeoShapes collection."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
