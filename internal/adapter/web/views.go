package web

import (
	"fmt"

	domain "dayne-web/internal/domain/loan"
	"dayne-web/internal/usecase/loanview"
	"dayne-web/pkg/format"
)

// basePage is what every template needs from the layout.
type basePage struct {
	Title string
	Path  string // current location, round-tripped by the theme toggle
	Dark  bool
	Flash *flash
}

type summaryCard struct {
	Label string
	Value string
}

type progressBars struct {
	SubmittedPct string // CSS width, e.g. "42.5"
	ApprovedPct  string
}

type paymentRow struct {
	ID              string
	DateLabel       string
	AmountLabel     string
	Status          string // css hook: pending|approved|rejected
	StatusLabel     string
	RejectionReason string
	Note            string
	ProofHref       string // empty when no proof was attached
	CanReview       bool
}

type auditRow struct {
	Title   string
	Meta    string
	Payload string
}

type waiverChoice struct {
	Value string // form value, fixed to cents
	Label string
}

// loanView is the shared middle of the three loan pages.
type loanView struct {
	Token          string
	BorrowerName   string
	Currency       string
	Status         string
	Completed      bool
	RemainingLabel string
	Cards          []summaryCard
	Bars           progressBars
	Payments       []paymentRow
	Audit          []auditRow
	ArchiveURL     string
}

func buildLoanView(d *domain.Details, token, proofBase string, review bool) loanView {
	cur := d.Loan.Currency
	submitted, approved := loanview.Progress(d.Summary.TotalAmount, d.Summary.TotalPaidSubmitted, d.Summary.TotalPaidApproved)
	return loanView{
		Token:          token,
		BorrowerName:   d.Loan.BorrowerName,
		Currency:       cur,
		Status:         string(d.Loan.Status),
		Completed:      d.Loan.Status == domain.StatusCompleted,
		RemainingLabel: format.Currency(d.Summary.RemainingBalance, cur),
		Cards: []summaryCard{
			{Label: "Remaining Balance", Value: format.Currency(d.Summary.RemainingBalance, cur)},
			{Label: "Total Paid", Value: format.Currency(d.Summary.TotalPaidSubmitted, cur)},
			{Label: "Progress", Value: fmt.Sprintf("%.2f%%", d.Summary.ProgressPercent)},
			{Label: "Est. Completion", Value: format.Date(d.Summary.EstimatedCompletionDate)},
		},
		Bars: progressBars{
			SubmittedPct: fmt.Sprintf("%.1f", submitted),
			ApprovedPct:  fmt.Sprintf("%.1f", approved),
		},
		Payments:   buildPaymentRows(d.Payments, cur, proofBase, review),
		Audit:      buildAuditRows(d.AuditEvents),
		ArchiveURL: d.Links.ArchiveURL,
	}
}

var paymentStatusLabels = map[domain.PaymentStatus]string{
	domain.PaymentPending:  "Pending",
	domain.PaymentApproved: "Approved",
	domain.PaymentRejected: "Rejected",
}

func buildPaymentRows(payments []domain.Payment, currency, proofBase string, review bool) []paymentRow {
	rows := make([]paymentRow, 0, len(payments))
	for _, p := range payments {
		row := paymentRow{
			ID:              p.ID,
			DateLabel:       format.Date(p.PaidAt),
			AmountLabel:     format.Currency(p.Amount, currency),
			Status:          string(p.Status),
			StatusLabel:     paymentStatusLabels[p.Status],
			RejectionReason: p.RejectionReason,
			Note:            p.Note,
			CanReview:       review && p.Status == domain.PaymentPending,
		}
		if p.ProofObjectKey != "" {
			row.ProofHref = proofBase + "/payments/" + p.ID + "/proof"
		}
		rows = append(rows, row)
	}
	return rows
}

func buildAuditRows(events []domain.AuditEvent) []auditRow {
	rows := make([]auditRow, 0, len(events))
	for _, ev := range events {
		rows = append(rows, auditRow{
			Title:   loanview.ReadableAction(ev.Action),
			Meta:    fmt.Sprintf("by %s (%s) on %s", ev.ActorDisplay, ev.ActorType, ev.CreatedAt.UTC().Format("Jan 2, 2006")),
			Payload: loanview.PayloadSummary(ev.Payload),
		})
	}
	return rows
}

func buildWaiverChoices(d *domain.Details) []waiverChoice {
	remaining := d.Summary.RemainingBalance
	options := loanview.WaiverOptions(remaining, d.Loan.MonthlyPlanAmount)
	choices := make([]waiverChoice, 0, len(options))
	for _, amount := range options {
		choices = append(choices, waiverChoice{
			Value: fmt.Sprintf("%.2f", amount),
			Label: loanview.WaiverOptionLabel(amount, remaining, d.Loan.Currency),
		})
	}
	return choices
}
