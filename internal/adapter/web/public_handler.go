package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"dayne-web/pkg/format"
)

type publicPage struct {
	basePage
	loanView
	WaiverChoices  []waiverChoice
	RemainingValue string // hidden form field guarding the custom amount
}

func (h *Handler) PublicLoan(c echo.Context) error {
	token := c.Param("token")
	details, err := h.svc.GetPublicLoan(c.Request().Context(), token)
	if err != nil {
		return h.renderError(c, http.StatusBadGateway, err.Error())
	}

	view := buildLoanView(details, token, "/loan/"+token, !details.IsCompleted())
	return h.render(c, http.StatusOK, "public", publicPage{
		basePage:       h.base(c, "Public Loan Review"),
		loanView:       view,
		WaiverChoices:  buildWaiverChoices(details),
		RemainingValue: fmt.Sprintf("%.2f", details.Summary.RemainingBalance),
	})
}

func (h *Handler) ApprovePayment(c echo.Context) error {
	token := c.Param("token")
	back := "/loan/" + token
	if _, err := h.svc.ApprovePayment(c.Request().Context(), token, c.Param("payment_id")); err != nil {
		setFlash(c, "error", err.Error())
		return redirectBack(c, back)
	}
	setFlash(c, "success", "Payment approved successfully.")
	return redirectBack(c, back)
}

func (h *Handler) RejectPayment(c echo.Context) error {
	token := c.Param("token")
	back := "/loan/" + token

	reason := strings.TrimSpace(c.FormValue("reason"))
	if reason == "" {
		setFlash(c, "error", "Please enter a rejection reason.")
		return redirectBack(c, back)
	}

	if _, err := h.svc.RejectPayment(c.Request().Context(), token, c.Param("payment_id"), reason); err != nil {
		setFlash(c, "error", err.Error())
		return redirectBack(c, back)
	}
	setFlash(c, "success", "Payment rejected.")
	return redirectBack(c, back)
}

func (h *Handler) ApplyWaiver(c echo.Context) error {
	token := c.Param("token")
	back := "/loan/" + token

	choice := c.FormValue("amount")
	if choice == "other" {
		choice = c.FormValue("custom_amount")
	}
	amount, err := strconv.ParseFloat(choice, 64)
	remaining, remErr := strconv.ParseFloat(c.FormValue("remaining"), 64)
	currency := c.FormValue("currency")

	// Same guard the review page applies before enabling the button; the
	// backend re-validates against its own balance either way.
	if err != nil || remErr != nil || amount <= 0 || amount > remaining {
		setFlash(c, "error", fmt.Sprintf("Waiver amount must be between 0 and %s.", format.Currency(remaining, currency)))
		return redirectBack(c, back)
	}

	if _, err := h.svc.CreateLoanWaiver(c.Request().Context(), token, amount); err != nil {
		setFlash(c, "error", err.Error())
		return redirectBack(c, back)
	}
	setFlash(c, "success", fmt.Sprintf("Waiver of %s applied.", format.Currency(amount, currency)))
	return redirectBack(c, back)
}

func (h *Handler) PublicProof(c echo.Context) error {
	token := c.Param("token")
	url, err := h.svc.ProofURLByPublic(c.Request().Context(), token, c.Param("payment_id"))
	if err != nil {
		setFlash(c, "error", err.Error())
		return redirectBack(c, "/loan/"+token)
	}
	return c.Redirect(http.StatusFound, url)
}
