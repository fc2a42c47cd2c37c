// Package server exposes the catalog over HTTP with echo: product queries,
// merge patch updates and the OpenAPI documents of each API version.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/reoring/catalogpatch/catalog"
	"github.com/reoring/catalogpatch/i18n"
)

// DefaultMaxBodyBytes caps PATCH bodies when Config.MaxBodyBytes is zero.
const DefaultMaxBodyBytes = 1 << 20

// Config wires a Server.
type Config struct {
	Handler  *catalog.Handler
	Read     catalog.ReadService
	Versions *Versions

	// Optional.
	Translator   i18n.Translator
	Logger       *zap.Logger
	Development  bool
	MaxBodyBytes int64
	Health       func(ctx context.Context) error
}

// Server is the HTTP front of the catalog.
type Server struct {
	echo     *echo.Echo
	handler  *catalog.Handler
	read     catalog.ReadService
	versions *Versions
	tr       i18n.Translator
	log      *zap.Logger
	dev      bool
	health   func(ctx context.Context) error
	maxBody  int64

	supportedHeader string
}

// New builds the server and registers its routes.
func New(cfg Config) (*Server, error) {
	if cfg.Handler == nil {
		return nil, errors.New("server: handler is required")
	}
	if cfg.Read == nil {
		return nil, errors.New("server: read service is required")
	}
	if cfg.Versions == nil {
		return nil, errors.New("server: versions are required")
	}
	s := &Server{
		handler:  cfg.Handler,
		read:     cfg.Read,
		versions: cfg.Versions,
		tr:       cfg.Translator,
		log:      cfg.Logger,
		dev:      cfg.Development,
		health:   cfg.Health,
		maxBody:  cfg.MaxBodyBytes,
	}
	if s.tr == nil {
		s.tr = i18n.New("en")
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	names := make([]string, 0, len(s.versions.All()))
	for _, v := range s.versions.All() {
		names = append(names, fmt.Sprintf("%d.%d", v.Major(), v.Minor()))
	}
	s.supportedHeader = strings.Join(names, ", ")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(requestLogger(s.log.Named("http")))
	s.echo = e

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	e := s.echo
	e.GET("/healthz", s.healthz)
	e.GET("/openapi/:doc", s.openAPI)

	patch := []echo.MiddlewareFunc{
		mergePatchBody,
		middleware.BodyLimit(fmt.Sprintf("%dB", s.maxBody)),
		preparePatch,
	}
	for _, prefix := range []string{"/api/:version", "/api"} {
		g := e.Group(prefix, s.apiVersion)
		g.GET("/products", s.listProducts)
		g.GET("/products/:sku", s.getProduct)
		g.PATCH("/products/:sku", s.patchProduct, patch...)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.echo.ServeHTTP(w, r) }

// Echo returns the underlying echo instance.
func (s *Server) Echo() *echo.Echo { return s.echo }

func (s *Server) healthz(c echo.Context) error {
	if s.health != nil {
		if err := s.health(c.Request().Context()); err != nil {
			s.log.Warn("health check failed", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
