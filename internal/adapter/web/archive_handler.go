package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type archivePage struct {
	basePage
	loanView
}

func (h *Handler) ArchivedLoan(c echo.Context) error {
	token := c.Param("token")
	details, err := h.svc.GetArchivedLoan(c.Request().Context(), token)
	if err != nil {
		return h.renderError(c, http.StatusBadGateway, err.Error())
	}
	return h.render(c, http.StatusOK, "archive", archivePage{
		basePage: h.base(c, "Archived Loan"),
		loanView: buildLoanView(details, token, "/loan/archive/"+token, false),
	})
}

func (h *Handler) ArchiveProof(c echo.Context) error {
	token := c.Param("token")
	url, err := h.svc.ProofURLByArchive(c.Request().Context(), token, c.Param("payment_id"))
	if err != nil {
		setFlash(c, "error", err.Error())
		return redirectBack(c, "/loan/archive/"+token)
	}
	return c.Redirect(http.StatusFound, url)
}
