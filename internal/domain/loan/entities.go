package loan

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("loan not found")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

type ActorType string

const (
	ActorBorrower ActorType = "borrower"
	ActorLender   ActorType = "lender"
	ActorSystem   ActorType = "system"
)

// Loan is the tracker record as the backend returns it. The frontend never
// sets status itself; the active to completed transition happens server-side.
type Loan struct {
	ID                 string     `json:"id"`
	BorrowerName       string     `json:"borrower_name"`
	BorrowerEmail      string     `json:"borrower_email"`
	LenderName         string     `json:"lender_name"`
	LenderEmail        string     `json:"lender_email"`
	TotalAmount        float64    `json:"total_amount"`
	MonthlyPlanAmount  float64    `json:"monthly_plan_amount"`
	Currency           string     `json:"currency"`
	StartDate          string     `json:"start_date"`
	ReminderDayOfMonth int        `json:"reminder_day_of_month"`
	Status             Status     `json:"status"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Payment carries rejection_reason only while status is rejected.
type Payment struct {
	ID              string        `json:"id"`
	Amount          float64       `json:"amount"`
	PaidAt          string        `json:"paid_at"`
	ProofObjectKey  string        `json:"proof_object_key,omitempty"`
	ProofFilename   string        `json:"proof_filename,omitempty"`
	Note            string        `json:"note,omitempty"`
	Status          PaymentStatus `json:"status"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time    `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Waiver entries are append-only; each one reduces the remaining balance.
type Waiver struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note,omitempty"`
	ActorType ActorType `json:"actor_type"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary is computed entirely server-side and trusted as-is.
type Summary struct {
	TotalAmount             float64 `json:"total_amount"`
	TotalPaidSubmitted      float64 `json:"total_paid_submitted"`
	TotalPaidApproved       float64 `json:"total_paid_approved"`
	TotalWaived             float64 `json:"total_waived"`
	RemainingBalance        float64 `json:"remaining_balance"`
	PendingPaymentCount     int     `json:"pending_payment_count"`
	ProgressPercent         float64 `json:"progress_percent"`
	EstimatedCompletionDate string  `json:"estimated_completion_date"`
	NextReminderDate        string  `json:"next_reminder_date"`
}

type Links struct {
	PublicURL  string `json:"public_url"`
	ManageURL  string `json:"manage_url,omitempty"`
	ArchiveURL string `json:"archive_url,omitempty"`
}

// AuditEvent is an immutable log entry; the frontend only displays it.
type AuditEvent struct {
	ID           string         `json:"id"`
	ActorType    ActorType      `json:"actor_type"`
	ActorDisplay string         `json:"actor_display"`
	Action       string         `json:"action"`
	Payload      map[string]any `json:"payload"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Details is the full snapshot every read and every mutation returns. Pages
// replace their copy with it wholesale; no field-level merging happens.
type Details struct {
	Loan        Loan         `json:"loan"`
	Payments    []Payment    `json:"payments"`
	Waivers     []Waiver     `json:"waivers"`
	Summary     Summary      `json:"summary"`
	Links       Links        `json:"links"`
	AuditEvents []AuditEvent `json:"audit_events"`
}

// IsCompleted reports whether the loan has reached its terminal state and
// every page should render read-only.
func (d *Details) IsCompleted() bool { return d.Loan.Status == StatusCompleted }

type PresignProofResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
	ExpiresIn int    `json:"expires_in"`
}

type CreateLoanInput struct {
	BorrowerName       string  `json:"borrower_name"`
	BorrowerEmail      string  `json:"borrower_email"`
	LenderName         string  `json:"lender_name"`
	LenderEmail        string  `json:"lender_email"`
	TotalAmount        float64 `json:"total_amount"`
	MonthlyPlanAmount  float64 `json:"monthly_plan_amount"`
	Currency           string  `json:"currency"`
	StartDate          string  `json:"start_date,omitempty"`
	ReminderDayOfMonth int     `json:"reminder_day_of_month,omitempty"`
}

type CreatePaymentInput struct {
	Amount         float64 `json:"amount"`
	PaidAt         string  `json:"paid_at"`
	Note           string  `json:"note,omitempty"`
	ProofObjectKey string  `json:"proof_object_key,omitempty"`
	ProofFilename  string  `json:"proof_filename,omitempty"`
}

type PresignProofInput struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
