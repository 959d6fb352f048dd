package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"dayne-web/internal/domain/loan"
)

type managePage struct {
	basePage
	loanView
	Today string
}

func (h *Handler) ManageLoan(c echo.Context) error {
	token := c.Param("token")
	details, err := h.svc.GetManageLoan(c.Request().Context(), token)
	if err != nil {
		return h.renderError(c, http.StatusBadGateway, err.Error())
	}

	// Visiting the dashboard makes this the token to resume with.
	h.rememberManageToken(c, token)

	return h.render(c, http.StatusOK, "manage", managePage{
		basePage: h.base(c, "Borrower Dashboard"),
		loanView: buildLoanView(details, token, "/manage/"+token, false),
		Today:    time.Now().UTC().Format("2006-01-02"),
	})
}

// CreatePayment runs the two-phase flow: presign and upload the proof file
// first, then submit the payment referencing the stored object. A failed
// upload stops the whole action; no payment is recorded without its proof.
func (h *Handler) CreatePayment(c echo.Context) error {
	token := c.Param("token")
	back := "/manage/" + token
	ctx := c.Request().Context()

	amount, err := strconv.ParseFloat(c.FormValue("amount"), 64)
	if err != nil || amount <= 0 {
		setFlash(c, "error", "Enter a valid payment amount.")
		return redirectBack(c, back)
	}
	paidAt := strings.TrimSpace(c.FormValue("paid_at"))
	if paidAt == "" {
		setFlash(c, "error", "Enter the payment date.")
		return redirectBack(c, back)
	}

	var objectKey, filename string
	if fh, fhErr := c.FormFile("proof"); fhErr == nil && fh != nil && fh.Size > 0 {
		contentType := fh.Header.Get("Content-Type")

		presign, presignErr := h.svc.PresignProofUpload(ctx, token, loan.PresignProofInput{
			Filename:    fh.Filename,
			ContentType: contentType,
			Size:        fh.Size,
		})
		if presignErr != nil {
			setFlash(c, "error", presignErr.Error())
			return redirectBack(c, back)
		}

		file, openErr := fh.Open()
		if openErr != nil {
			setFlash(c, "error", "Failed to read the proof file.")
			return redirectBack(c, back)
		}
		uploadErr := h.svc.UploadProofFile(ctx, presign.UploadURL, contentType, fh.Size, file)
		file.Close()
		if uploadErr != nil {
			setFlash(c, "error", uploadErr.Error())
			return redirectBack(c, back)
		}

		objectKey = presign.ObjectKey
		filename = fh.Filename
	}

	if _, err := h.svc.CreatePayment(ctx, token, loan.CreatePaymentInput{
		Amount:         amount,
		PaidAt:         paidAt,
		Note:           strings.TrimSpace(c.FormValue("note")),
		ProofObjectKey: objectKey,
		ProofFilename:  filename,
	}); err != nil {
		setFlash(c, "error", err.Error())
		return redirectBack(c, back)
	}

	setFlash(c, "success", "Payment recorded.")
	return redirectBack(c, back)
}

func (h *Handler) ManageProof(c echo.Context) error {
	token := c.Param("token")
	url, err := h.svc.ProofURLByManage(c.Request().Context(), token, c.Param("payment_id"))
	if err != nil {
		setFlash(c, "error", err.Error())
		return redirectBack(c, "/manage/"+token)
	}
	return c.Redirect(http.StatusFound, url)
}
