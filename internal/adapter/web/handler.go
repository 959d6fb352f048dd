// Package web serves the four pages of the repayment frontend and maps form
// posts onto loan API mutations. Every successful mutation redirects back to
// the page so the next render works from a fresh server snapshot.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"dayne-web/internal/domain/loan"
)

//go:embed templates/*.html static/styles.css
var assets embed.FS

type Handler struct {
	svc      loan.Service
	tokenTTL time.Duration
	pages    map[string]*template.Template
	styles   []byte
}

func NewHandler(svc loan.Service, tokenTTL time.Duration) (*Handler, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"home", "manage", "public", "archive", "error"} {
		t, err := template.ParseFS(assets,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", name, err)
		}
		pages[name] = t
	}
	styles, err := assets.ReadFile("static/styles.css")
	if err != nil {
		return nil, err
	}
	return &Handler{svc: svc, tokenTTL: tokenTTL, pages: pages, styles: styles}, nil
}

func (h *Handler) Register(e *echo.Echo) {
	e.Validator = NewValidator()

	e.GET("/", h.Home)
	e.POST("/loans", h.CreateLoan)
	e.POST("/open", h.OpenDashboard)

	e.GET("/manage/:token", h.ManageLoan)
	e.POST("/manage/:token/payments", h.CreatePayment)
	e.GET("/manage/:token/payments/:payment_id/proof", h.ManageProof)

	e.GET("/loan/:token", h.PublicLoan)
	e.POST("/loan/:token/payments/:payment_id/approve", h.ApprovePayment)
	e.POST("/loan/:token/payments/:payment_id/reject", h.RejectPayment)
	e.POST("/loan/:token/waivers", h.ApplyWaiver)
	e.GET("/loan/:token/payments/:payment_id/proof", h.PublicProof)

	e.GET("/loan/archive/:token", h.ArchivedLoan)
	e.GET("/loan/archive/:token/payments/:payment_id/proof", h.ArchiveProof)

	e.POST("/theme", h.ToggleTheme)
	e.GET("/static/styles.css", h.Styles)
	e.GET("/health", h.Health)
}

func (h *Handler) base(c echo.Context, title string) basePage {
	return basePage{Title: title, Path: c.Request().URL.Path, Dark: darkTheme(c), Flash: popFlash(c)}
}

func (h *Handler) render(c echo.Context, status int, page string, data any) error {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}

type errorPage struct {
	basePage
	Message string
}

// renderError is the blocking error view: a load failed and there is no
// snapshot to show instead.
func (h *Handler) renderError(c echo.Context, status int, message string) error {
	return h.render(c, status, "error", errorPage{
		basePage: h.base(c, "Something went wrong"),
		Message:  message,
	})
}

// redirectBack finishes a mutation with a redirect so the page reloads a
// fresh snapshot from the API.
func redirectBack(c echo.Context, target string) error {
	return c.Redirect(http.StatusSeeOther, target)
}

func (h *Handler) ToggleTheme(c echo.Context) error {
	setTheme(c, !darkTheme(c))
	next := c.FormValue("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}
	return redirectBack(c, next)
}

func (h *Handler) Styles(c echo.Context) error {
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", h.styles)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}
