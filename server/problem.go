package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	j "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	cp "github.com/reoring/catalogpatch"
	"github.com/reoring/catalogpatch/catalog"
)

// ContentTypeProblem is the media type of RFC 7807 problem documents.
const ContentTypeProblem = "application/problem+json"

// Error codes that only the HTTP layer produces.
const (
	codeUnsupportedMediaType = "unsupported_media_type"
	codeBadRequest           = "bad_request"
	codeUnavailable          = "service_unavailable"
)

// Problem is an RFC 7807 problem document. Errors carries per-field messages
// of validation problems.
type Problem struct {
	Type          string              `json:"type,omitempty"`
	Title         string              `json:"title"`
	Status        int                 `json:"status"`
	Detail        string              `json:"detail,omitempty"`
	Instance      string              `json:"instance,omitempty"`
	Code          string              `json:"code,omitempty"`
	Errors        map[string][]string `json:"errors,omitempty"`
	ExceptionType string              `json:"exceptionType,omitempty"`
}

func (s *Server) problem(status int, code string, data map[string]string) Problem {
	return Problem{
		Type:   "https://httpstatuses.io/" + fmt.Sprint(status),
		Title:  s.tr.Message(code, data),
		Status: status,
		Code:   code,
	}
}

// toProblem maps an error to its problem document. This is the only place
// where error values turn into status codes.
func (s *Server) toProblem(err error) Problem {
	var (
		iss  cp.Issues
		ns   *cp.NotSupportedError
		mf   *cp.MalformedFieldError
		herr *echo.HTTPError
	)
	switch {
	case errors.As(err, &iss):
		p := s.problem(http.StatusBadRequest, cp.CodeValidationFailed, nil)
		p.Errors = iss.ByField()
		return p

	case errors.Is(err, cp.ErrInvalidInput):
		p := s.problem(http.StatusBadRequest, cp.CodeInvalidInput, nil)
		p.Detail = err.Error()
		return p

	case errors.As(err, &mf):
		p := s.problem(http.StatusBadRequest, cp.CodeMalformedField, nil)
		p.Errors = map[string][]string{}
		for _, m := range cp.Malformed(err) {
			p.Errors[m.Field] = append(p.Errors[m.Field], malformedMessage(m))
		}
		return p

	case errors.As(err, &ns):
		p := s.problem(http.StatusNotImplemented, cp.CodeNotSupported, nil)
		p.Detail = s.tr.Message(cp.CodeNotSupported, map[string]string{"field": ns.Field})
		return p

	case errors.Is(err, catalog.ErrNotFound):
		return s.problem(http.StatusNotFound, cp.CodeNotFound, nil)

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return s.problem(http.StatusServiceUnavailable, codeUnavailable, nil)

	case errors.As(err, &herr):
		code := codeBadRequest
		switch herr.Code {
		case http.StatusNotFound:
			code = cp.CodeNotFound
		case http.StatusUnsupportedMediaType:
			code = codeUnsupportedMediaType
		case http.StatusInternalServerError:
			code = cp.CodeInternal
		}
		p := s.problem(herr.Code, code, nil)
		if code == codeBadRequest || code == codeUnsupportedMediaType {
			p.Title = http.StatusText(herr.Code)
		}
		if msg, ok := herr.Message.(string); ok && msg != http.StatusText(herr.Code) {
			p.Detail = msg
		}
		return p
	}

	p := s.problem(http.StatusInternalServerError, cp.CodeInternal, nil)
	if s.dev {
		p.Detail = err.Error()
		p.ExceptionType = fmt.Sprintf("%T", err)
	} else {
		p.Detail = "An unexpected error occurred"
	}
	return p
}

func malformedMessage(m *cp.MalformedFieldError) string {
	if errors.Is(m, cp.ErrNullNotAllowed) {
		return "The " + m.Field + " field cannot be null."
	}
	return "The " + m.Field + " field has an invalid value: " + m.Cause.Error()
}

// handleError is the echo HTTPErrorHandler.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	p := s.toProblem(err)
	p.Instance = c.Request().URL.Path

	log := s.log.With(zap.String("path", p.Instance), zap.Int("status", p.Status))
	switch {
	case p.Status == http.StatusServiceUnavailable:
		log.Warn("request aborted", zap.Error(err))
	case p.Status >= http.StatusInternalServerError && p.Status != http.StatusNotImplemented:
		log.Error("request failed", zap.Error(err))
	default:
		log.Debug("request rejected", zap.Error(err))
	}

	if werr := writeProblem(c, p); werr != nil {
		log.Warn("write problem response", zap.Error(werr))
	}
}

func writeProblem(c echo.Context, p Problem) error {
	body, err := j.Marshal(p)
	if err != nil {
		return err
	}
	if c.Request().Method == http.MethodHead {
		return c.NoContent(p.Status)
	}
	return c.Blob(p.Status, ContentTypeProblem, body)
}

// validationError builds the Issues of a query parameter check.
func validationError(field, code, msg string) cp.Issues {
	return cp.Issues{cp.Root().Field(field).Issue(code, msg)}
}
