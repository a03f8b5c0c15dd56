package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	appMiddleware "github.com/prasetyowira/tyrelabel/api/middleware"
	"github.com/prasetyowira/tyrelabel/constant"
	appLogger "github.com/prasetyowira/tyrelabel/infrastructure/logger"
)

// Router represents the application router
type Router struct {
	handler  *Handler
	router   *chi.Mux
	username string
	password string
}

// NewRouter creates a new router
func NewRouter(handler *Handler, username, password string) *Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(appMiddleware.RequestLogger())

	return &Router{
		handler:  handler,
		router:   r,
		username: username,
		password: password,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() {
	appLogger.Info(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	creds := map[string]string{
		r.username: r.password,
	}
	// Registering definitions requires Basic Auth
	r.router.With(
		middleware.BasicAuth("tyrelabel", creds),
	).Put(constant.RouteRegisterLabel, r.handler.RegisterLabel)

	// Public routes
	r.router.Post(constant.RouteRenderLabel, r.handler.RenderLabel)
	r.router.Get(constant.RouteStoredLabel, r.handler.RenderStoredLabel)

	// Healthcheck
	r.router.Get(constant.RouteHealthcheck, func(w http.ResponseWriter, r *http.Request) {
		appLogger.CtxDebug(r.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
			ContextFunction: constant.CtxRouter,
		})

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(constant.MsgHealthy))
	})
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
