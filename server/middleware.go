package server

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/reoring/catalogpatch/catalog"
)

// Media types accepted for PATCH bodies.
const (
	ContentTypeMergePatch = "application/merge-patch+json"
	ContentTypeJSON       = "application/json"
)

// requestLogger logs one line per request through zap.
func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency.Round(time.Microsecond)),
				zap.String("request_id", v.RequestID),
			}
			if v.Status >= http.StatusInternalServerError {
				log.Warn("request", fields...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}

// apiVersion resolves the :version route segment (absent on unversioned
// routes) and stores the version in the request context.
func (s *Server) apiVersion(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		v, err := s.versions.Resolve(c.Param("version"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		c.Response().Header().Set("api-supported-versions", s.supportedHeader)
		req := c.Request()
		c.SetRequest(req.WithContext(contextWith(req.Context(), v)))
		return next(c)
	}
}

// mergePatchBody rejects PATCH bodies that are not merge patch or plain JSON.
func mergePatchBody(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ct := c.Request().Header.Get(echo.HeaderContentType)
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || (mt != ContentTypeMergePatch && mt != ContentTypeJSON) {
			return echo.NewHTTPError(http.StatusUnsupportedMediaType,
				"PATCH body must be "+ContentTypeMergePatch+" or "+ContentTypeJSON)
		}
		return next(c)
	}
}

// preparePatch turns the request into a catalog.Command and stores it in
// the request context. Malformed or invalid patches never reach the handler.
func preparePatch(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			var herr *echo.HTTPError
			if errors.As(err, &herr) {
				return herr
			}
			return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body").SetInternal(err)
		}
		cmd, err := catalog.PreparePatch(c.Param("sku"), body)
		if err != nil {
			return err
		}
		req := c.Request()
		c.SetRequest(req.WithContext(contextWith(req.Context(), cmd)))
		return next(c)
	}
}
