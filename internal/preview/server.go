package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/vk/expc/internal/ctxlog"
	"github.com/vk/expc/internal/diag"
)

// Page is the outcome of one compilation.
type Page struct {
	HTML        string
	Diagnostics []diag.Entry
	// Failed means HTML must not be served.
	Failed bool
}

// Compiler produces a fresh Page on every call.
type Compiler interface {
	CompilePage(ctx context.Context) (*Page, error)
}

// Server is the preview HTTP server.
type Server struct {
	echo     *echo.Echo
	compiler Compiler
	logger   *slog.Logger
}

type diagnosticsResponse struct {
	Failed      bool         `json:"failed"`
	Diagnostics []diag.Entry `json:"diagnostics"`
}

// New wires the preview routes. A nil logger discards.
func New(compiler Compiler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = ctxlog.Discard()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, compiler: compiler, logger: logger}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(s.withLogger)
	e.Use(middleware.Recover())

	e.GET("/", s.handlePage)
	e.GET("/diagnostics", s.handleDiagnostics)
	e.GET("/health", s.handleHealth)
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr and blocks until the server stops. A graceful
// shutdown is not an error.
func (s *Server) Start(addr string) error {
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// withLogger puts a request-scoped logger into the request context.
func (s *Server) withLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		id := c.Response().Header().Get(echo.HeaderXRequestID)
		ctx, logger := ctxlog.With(ctxlog.WithLogger(req.Context(), s.logger), "request_id", id)
		c.SetRequest(req.WithContext(ctx))
		logger.Debug("Preview request received.", "method", req.Method, "path", req.URL.Path)
		return next(c)
	}
}

func (s *Server) handlePage(c echo.Context) error {
	ctx := c.Request().Context()
	page, err := s.compiler.CompilePage(ctx)
	if err != nil {
		ctxlog.FromContext(ctx).Error("Preview compilation failed.", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if page.Failed {
		return c.String(http.StatusUnprocessableEntity, diagnosticsText(page.Diagnostics))
	}
	return c.HTML(http.StatusOK, page.HTML)
}

func (s *Server) handleDiagnostics(c echo.Context) error {
	ctx := c.Request().Context()
	page, err := s.compiler.CompilePage(ctx)
	if err != nil {
		ctxlog.FromContext(ctx).Error("Preview compilation failed.", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	entries := page.Diagnostics
	if entries == nil {
		entries = []diag.Entry{}
	}
	return c.JSON(http.StatusOK, diagnosticsResponse{Failed: page.Failed, Diagnostics: entries})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK\n")
}

func diagnosticsText(entries []diag.Entry) string {
	var b strings.Builder
	b.WriteString("The page could not be compiled.\n\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%s [%s] %s\n", e.Severity, e.Code, e.Message)
	}
	return b.String()
}
