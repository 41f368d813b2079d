package server

import (
	"fmt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/aegisops/actiongate/pkg/config"
	"github.com/aegisops/actiongate/pkg/handlers/http"
	wsHandlers "github.com/aegisops/actiongate/pkg/handlers/websocket"
	"github.com/aegisops/actiongate/pkg/middleware"
)

type AdminServerDI struct {
	MiddlewareTransport *middleware.Transport
	AdminAuthMiddleware middleware.Middleware
	HandlerTransport    http.HandlerTransport
	WSHandlerTransport  wsHandlers.HandlerTransport
	Config              *config.Config
	Logger              *logrus.Logger
}

type AdminServer struct {
	*BaseServer
	middlewareTransport *middleware.Transport
	adminAuth           middleware.Middleware
	handlerTransport    http.HandlerTransport
	wsHandlerTransport  wsHandlers.HandlerTransport
}

func NewAdminServer(di AdminServerDI) *AdminServer {
	return &AdminServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		adminAuth:           di.AdminAuthMiddleware,
		handlerTransport:    di.HandlerTransport,
		wsHandlerTransport:  di.WSHandlerTransport,
	}
}

func (s *AdminServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf(":%d", s.Config.Server.AdminPort)
	s.Logger.WithField("addr", addr).Info("starting admin server")
	return s.Router.Listen(addr)
}

func (s *AdminServer) setupRoutes() {
	for _, m := range s.middlewareTransport.GetMiddlewares() {
		s.Router.Use(m)
	}

	s.addRoutes(s.Router)
}

func (s *AdminServer) addRoutes(router *fiber.App) {
	v1 := router.Group("/api/v1")

	actions := v1.Group("/actions")
	actions.Post("/login", s.handlerTransport.SubmitLoginHandler.Handle)
	actions.Post("/upload", s.handlerTransport.SubmitUploadHandler.Handle)
	actions.Post("/role-change", s.handlerTransport.SubmitRoleChangeHandler.Handle)

	admin := v1.Group("/admin", s.adminAuth.Middleware())
	admin.Post("/blocks", s.handlerTransport.BlockSubjectHandler.Handle)
	admin.Get("/blocks", s.handlerTransport.ListBlockedHandler.Handle)
	admin.Delete("/blocks/:kind/:value", s.handlerTransport.UnblockSubjectHandler.Handle)
	admin.Get("/incidents", s.handlerTransport.ListIncidentsHandler.Handle)
	admin.Post("/trusted", s.handlerTransport.AddTrustedPairHandler.Handle)
	admin.Get("/trusted", s.handlerTransport.ListTrustedPairsHandler.Handle)
	admin.Delete("/trusted/:principal/:address", s.handlerTransport.RemoveTrustedPairHandler.Handle)

	v1.Post("/notifier/commands", s.adminAuth.Middleware(), s.handlerTransport.NotifierCommandHandler.Handle)

	ws := v1.Group("/ws")
	ws.Use(func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	ws.Get("/alerts", websocket.New(s.wsHandlerTransport.AlertStreamHandler.Handle))
}

func (s *AdminServer) Shutdown() error {
	s.Logger.Info("shutting down admin server")
	return s.Router.Shutdown()
}
