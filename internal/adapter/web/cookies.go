package web

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// The SPA this frontend replaces kept these in localStorage under
// "dayne:last_manage_token" and "dayne:theme"; server-side they live in
// cookies scoped to the whole site.
const (
	manageTokenCookie = "dayne_manage_token"
	themeCookie       = "dayne_theme"
	flashCookie       = "dayne_flash"
)

type flash struct {
	Kind    string // "success" | "error"
	Message string
}

func cookieValue(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	v, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ""
	}
	return v
}

func (h *Handler) rememberManageToken(c echo.Context, token string) {
	if token == "" {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     manageTokenCookie,
		Value:    url.QueryEscape(token),
		Path:     "/",
		MaxAge:   int(h.tokenTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func lastManageToken(c echo.Context) string {
	return strings.TrimSpace(cookieValue(c, manageTokenCookie))
}

func darkTheme(c echo.Context) bool {
	return cookieValue(c, themeCookie) == "dark"
}

func setTheme(c echo.Context, dark bool) {
	v := "light"
	if dark {
		v = "dark"
	}
	c.SetCookie(&http.Cookie{
		Name:     themeCookie,
		Value:    v,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})
}

// setFlash queues a one-shot notification for the page served after the next
// redirect. The toast analog: mutation outcomes survive exactly one request.
func setFlash(c echo.Context, kind, message string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func popFlash(c echo.Context) *flash {
	raw := cookieValue(c, flashCookie)
	if raw == "" {
		return nil
	}
	// clear immediately so the note shows once
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	kind, msg, ok := strings.Cut(raw, "|")
	if !ok {
		return nil
	}
	return &flash{Kind: kind, Message: msg}
}
