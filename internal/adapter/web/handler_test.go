package web

import (
	"context"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	domain "dayne-web/internal/domain/loan"
	"dayne-web/internal/testutil/loansvcmock"
)

// -------- helpers --------

func newTestHandler(t *testing.T, svc domain.Service) *Handler {
	t.Helper()
	h, err := NewHandler(svc, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewHandler error: %v", err)
	}
	return h
}

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func getContext(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(stdhttp.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func formContext(e *echo.Echo, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(stdhttp.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func flashValue(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == flashCookie && ck.MaxAge >= 0 {
			v, err := url.QueryUnescape(ck.Value)
			if err != nil {
				t.Fatalf("bad flash cookie: %v", err)
			}
			return v
		}
	}
	return ""
}

func sampleDetails() *domain.Details {
	return &domain.Details{
		Loan: domain.Loan{
			ID:                "loan-1",
			BorrowerName:      "Ari",
			Currency:          "USD",
			TotalAmount:       1000,
			MonthlyPlanAmount: 100,
			Status:            domain.StatusActive,
		},
		Payments: []domain.Payment{
			{ID: "pay-1", Amount: 100, PaidAt: "2026-01-15", Status: domain.PaymentPending, ProofObjectKey: "proofs/x.png", ProofFilename: "x.png"},
			{ID: "pay-2", Amount: 50, PaidAt: "2026-02-15", Status: domain.PaymentRejected, RejectionReason: "receipt unclear"},
		},
		Summary: domain.Summary{
			TotalAmount:        1000,
			TotalPaidSubmitted: 150,
			TotalPaidApproved:  0,
			RemainingBalance:   850,
			ProgressPercent:    15,
		},
		Links: domain.Links{
			PublicURL: "https://x.test/loan/pub-1",
			ManageURL: "https://x.test/manage/tok-9",
		},
		AuditEvents: []domain.AuditEvent{
			{ID: "ev-1", ActorType: domain.ActorBorrower, ActorDisplay: "Ari", Action: "payment.submitted", CreatedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
		},
	}
}

// -------- tests --------

func TestHome_RendersForms(t *testing.T) {
	h := newTestHandler(t, &loansvcmock.Service{})
	c, rec := getContext(newEchoWithValidator(), "/")

	if err := h.Home(c); err != nil {
		t.Fatalf("Home error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Create Loan Tracker", "Open Repayment Page", "Dayne"} {
		if !strings.Contains(body, want) {
			t.Fatalf("home page missing %q", want)
		}
	}
}

func TestHome_ShowsResumeLinkFromCookie(t *testing.T) {
	h := newTestHandler(t, &loansvcmock.Service{})
	e := newEchoWithValidator()
	req := httptest.NewRequest(stdhttp.MethodGet, "/", nil)
	req.AddCookie(&stdhttp.Cookie{Name: manageTokenCookie, Value: "tok-5"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Home(c); err != nil {
		t.Fatalf("Home error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `/manage/tok-5`) {
		t.Fatal("resume link for stored token not rendered")
	}
}

func TestCreateLoan_ValidationErrors(t *testing.T) {
	called := false
	h := newTestHandler(t, &loansvcmock.Service{
		CreateLoanFn: func(_ context.Context, in domain.CreateLoanInput) (*domain.Details, error) {
			called = true
			return sampleDetails(), nil
		},
	})

	form := url.Values{
		"borrower_name":         {"Ari"},
		"borrower_email":        {"not-an-email"},
		"lender_name":           {"Lee"},
		"lender_email":          {"lee@x.test"},
		"total_amount":          {"0"},
		"monthly_plan_amount":   {"100"},
		"currency":              {"USD"},
		"start_date":            {"2026-01-01"},
		"reminder_day_of_month": {"31"},
	}
	c, rec := formContext(newEchoWithValidator(), "/loans", form)

	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if called {
		t.Fatal("API called despite validation failure")
	}
	body := rec.Body.String()
	if !strings.Contains(body, "must be a valid email address") {
		t.Fatalf("missing email error, body: %s", body)
	}
	if !strings.Contains(body, "must be less than or equal to 28") {
		t.Fatal("missing reminder day error")
	}
	// the borrower's input survives the round trip
	if !strings.Contains(body, "not-an-email") {
		t.Fatal("form input not preserved")
	}
}

func TestCreateLoan_SuccessRemembersToken(t *testing.T) {
	h := newTestHandler(t, &loansvcmock.Service{
		CreateLoanFn: func(_ context.Context, in domain.CreateLoanInput) (*domain.Details, error) {
			if in.BorrowerEmail != "ari@x.test" || in.TotalAmount != 1000 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return sampleDetails(), nil
		},
	})

	form := url.Values{
		"borrower_name":         {"Ari"},
		"borrower_email":        {"ari@x.test"},
		"lender_name":           {"Lee"},
		"lender_email":          {"lee@x.test"},
		"total_amount":          {"1000"},
		"monthly_plan_amount":   {"100"},
		"currency":              {"USD"},
		"start_date":            {"2026-01-01"},
		"reminder_day_of_month": {"1"},
	}
	c, rec := formContext(newEchoWithValidator(), "/loans", form)

	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "https://x.test/loan/pub-1") {
		t.Fatal("public link not rendered")
	}

	var stored string
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == manageTokenCookie {
			stored, _ = url.QueryUnescape(ck.Value)
		}
	}
	if stored != "tok-9" {
		t.Fatalf("stored token = %q, want tok-9", stored)
	}
}

func TestCreateLoan_APIFailureKeepsForm(t *testing.T) {
	h := newTestHandler(t, &loansvcmock.Service{
		CreateLoanFn: func(_ context.Context, in domain.CreateLoanInput) (*domain.Details, error) {
			return nil, errors.New("borrower already has an active loan")
		},
	})

	form := url.Values{
		"borrower_name":         {"Ari"},
		"borrower_email":        {"ari@x.test"},
		"lender_name":           {"Lee"},
		"lender_email":          {"lee@x.test"},
		"total_amount":          {"1000"},
		"monthly_plan_amount":   {"100"},
		"currency":              {"USD"},
		"start_date":            {"2026-01-01"},
		"reminder_day_of_month": {"1"},
	}
	c, rec := formContext(newEchoWithValidator(), "/loans", form)

	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "borrower already has an active loan") {
		t.Fatal("API error message not surfaced")
	}
	if !strings.Contains(body, "ari@x.test") {
		t.Fatal("form input not preserved after API failure")
	}
}

func TestOpenDashboard(t *testing.T) {
	h := newTestHandler(t, &loansvcmock.Service{})

	c, rec := formContext(newEchoWithValidator(), "/open", url.Values{"target": {"https://x.test/manage/tok-9"}})
	if err := h.OpenDashboard(c); err != nil {
		t.Fatalf("OpenDashboard error: %v", err)
	}
	if rec.Code != stdhttp.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/manage/tok-9" {
		t.Fatalf("location = %q", loc)
	}
}

func TestOpenDashboard_NoTokenDetected(t *testing.T) {
	h := newTestHandler(t, &loansvcmock.Service{})

	c, rec := formContext(newEchoWithValidator(), "/open", url.Values{"target": {"https://x.test/other/path"}})
	if err := h.OpenDashboard(c); err != nil {
		t.Fatalf("OpenDashboard error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Could not detect a manage token") {
		t.Fatal("missing detection error")
	}
}

func TestToggleTheme(t *testing.T) {
	h := newTestHandler(t, &loansvcmock.Service{})
	e := newEchoWithValidator()

	c, rec := formContext(e, "/theme", url.Values{"next": {"/manage/tok-9"}})
	if err := h.ToggleTheme(c); err != nil {
		t.Fatalf("ToggleTheme error: %v", err)
	}
	var theme string
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == themeCookie {
			theme = ck.Value
		}
	}
	if theme != "dark" {
		t.Fatalf("theme = %q, want dark on first toggle", theme)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/manage/tok-9" {
		t.Fatalf("location = %q", loc)
	}

	// toggling again from dark goes back to light
	req := httptest.NewRequest(stdhttp.MethodPost, "/theme", strings.NewReader(url.Values{"next": {"//evil.test"}}.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(&stdhttp.Cookie{Name: themeCookie, Value: "dark"})
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(req, rec2)
	if err := h.ToggleTheme(c2); err != nil {
		t.Fatalf("ToggleTheme error: %v", err)
	}
	for _, ck := range rec2.Result().Cookies() {
		if ck.Name == themeCookie && ck.Value != "light" {
			t.Fatalf("theme = %q, want light", ck.Value)
		}
	}
	// protocol-relative targets are not followed
	if loc := rec2.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("location = %q, want /", loc)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, &loansvcmock.Service{})
	c, rec := getContext(newEchoWithValidator(), "/health")

	if err := h.Health(c); err != nil {
		t.Fatalf("Health error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
