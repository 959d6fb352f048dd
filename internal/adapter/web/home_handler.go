package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"dayne-web/internal/domain/loan"
	"dayne-web/internal/usecase/loanview"
)

// createLoanForm holds the raw posted values so a failed submission renders
// back with the borrower's input intact.
type createLoanForm struct {
	BorrowerName       string `form:"borrower_name"`
	BorrowerEmail      string `form:"borrower_email"`
	LenderName         string `form:"lender_name"`
	LenderEmail        string `form:"lender_email"`
	TotalAmount        string `form:"total_amount"`
	MonthlyPlanAmount  string `form:"monthly_plan_amount"`
	Currency           string `form:"currency"`
	StartDate          string `form:"start_date"`
	ReminderDayOfMonth string `form:"reminder_day_of_month"`
}

type createLoanRequest struct {
	BorrowerName       string  `validate:"required"`
	BorrowerEmail      string  `validate:"required,email"`
	LenderName         string  `validate:"required"`
	LenderEmail        string  `validate:"required,email"`
	TotalAmount        float64 `validate:"required,gt=0,dec2"`
	MonthlyPlanAmount  float64 `validate:"required,gt=0,dec2"`
	Currency           string  `validate:"required,iso4217"`
	StartDate          string  `validate:"required,dateonly"`
	ReminderDayOfMonth int     `validate:"required,gte=1,lte=28"`
}

type createdResult struct {
	PublicURL string
	ManageURL string
}

type homePage struct {
	basePage
	Form        createLoanForm
	FieldErrors map[string]string
	FormError   string
	Result      *createdResult
	OpenInput   string
	OpenError   string
	StoredToken string
}

func defaultLoanForm() createLoanForm {
	return createLoanForm{
		Currency:           "USD",
		StartDate:          time.Now().UTC().Format("2006-01-02"),
		ReminderDayOfMonth: "1",
	}
}

func (h *Handler) homePage(c echo.Context) homePage {
	return homePage{
		basePage:    h.base(c, "Dayne Debt Management"),
		Form:        defaultLoanForm(),
		StoredToken: lastManageToken(c),
	}
}

func (h *Handler) Home(c echo.Context) error {
	return h.render(c, http.StatusOK, "home", h.homePage(c))
}

// toRequest converts the raw form into the validated shape. Number parse
// failures become field errors so they render next to the inputs.
func (f createLoanForm) toRequest() (createLoanRequest, map[string]string) {
	req := createLoanRequest{
		BorrowerName:  f.BorrowerName,
		BorrowerEmail: f.BorrowerEmail,
		LenderName:    f.LenderName,
		LenderEmail:   f.LenderEmail,
		Currency:      f.Currency,
		StartDate:     f.StartDate,
	}
	parseErrs := map[string]string{}
	var err error
	if req.TotalAmount, err = strconv.ParseFloat(f.TotalAmount, 64); err != nil && f.TotalAmount != "" {
		parseErrs["TotalAmount"] = "must be a number"
	}
	if req.MonthlyPlanAmount, err = strconv.ParseFloat(f.MonthlyPlanAmount, 64); err != nil && f.MonthlyPlanAmount != "" {
		parseErrs["MonthlyPlanAmount"] = "must be a number"
	}
	if req.ReminderDayOfMonth, err = strconv.Atoi(f.ReminderDayOfMonth); err != nil && f.ReminderDayOfMonth != "" {
		parseErrs["ReminderDayOfMonth"] = "must be a whole number"
	}
	return req, parseErrs
}

func (h *Handler) CreateLoan(c echo.Context) error {
	var form createLoanForm
	if err := c.Bind(&form); err != nil {
		page := h.homePage(c)
		page.FormError = "invalid form input"
		return h.render(c, http.StatusBadRequest, "home", page)
	}

	req, fieldErrs := form.toRequest()
	if len(fieldErrs) == 0 {
		if err := c.Validate(&req); err != nil {
			fieldErrs = fieldErrorMap(ToFieldErrors(err))
		}
	}
	if len(fieldErrs) > 0 {
		page := h.homePage(c)
		page.Form = form
		page.FieldErrors = fieldErrs
		return h.render(c, http.StatusUnprocessableEntity, "home", page)
	}

	details, err := h.svc.CreateLoan(c.Request().Context(), loan.CreateLoanInput{
		BorrowerName:       req.BorrowerName,
		BorrowerEmail:      req.BorrowerEmail,
		LenderName:         req.LenderName,
		LenderEmail:        req.LenderEmail,
		TotalAmount:        req.TotalAmount,
		MonthlyPlanAmount:  req.MonthlyPlanAmount,
		Currency:           req.Currency,
		StartDate:          req.StartDate,
		ReminderDayOfMonth: req.ReminderDayOfMonth,
	})
	if err != nil {
		page := h.homePage(c)
		page.Form = form
		page.FormError = err.Error()
		return h.render(c, http.StatusBadGateway, "home", page)
	}

	// Keep the private token around so the borrower can resume later.
	h.rememberManageToken(c, loanview.ExtractManageToken(details.Links.ManageURL))

	page := h.homePage(c)
	page.Result = &createdResult{
		PublicURL: details.Links.PublicURL,
		ManageURL: details.Links.ManageURL,
	}
	return h.render(c, http.StatusOK, "home", page)
}

func (h *Handler) OpenDashboard(c echo.Context) error {
	input := c.FormValue("target")
	token := loanview.ExtractManageToken(input)
	if token == "" {
		page := h.homePage(c)
		page.OpenInput = input
		page.OpenError = "Could not detect a manage token. Paste the full manage link or just the token."
		return h.render(c, http.StatusUnprocessableEntity, "home", page)
	}
	return redirectBack(c, "/manage/"+token)
}
