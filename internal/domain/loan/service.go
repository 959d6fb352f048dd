package loan

import (
	"context"
	"io"
)

// Service is the remote loan API. All business logic (ledger math, approval
// transitions, waiver application, archival) lives behind it; page handlers
// only read snapshots and fire mutations.
type Service interface {
	CreateLoan(ctx context.Context, in CreateLoanInput) (*Details, error)

	// Borrower side (manage token).
	GetManageLoan(ctx context.Context, manageToken string) (*Details, error)
	CreatePayment(ctx context.Context, manageToken string, in CreatePaymentInput) (*Details, error)
	PresignProofUpload(ctx context.Context, manageToken string, in PresignProofInput) (*PresignProofResponse, error)
	ProofURLByManage(ctx context.Context, manageToken, paymentID string) (string, error)

	// Lender side (public token).
	GetPublicLoan(ctx context.Context, publicToken string) (*Details, error)
	ApprovePayment(ctx context.Context, publicToken, paymentID string) (*Details, error)
	RejectPayment(ctx context.Context, publicToken, paymentID, reason string) (*Details, error)
	CreateLoanWaiver(ctx context.Context, publicToken string, amount float64) (*Details, error)
	ProofURLByPublic(ctx context.Context, publicToken, paymentID string) (string, error)

	// Read-only record (archived token).
	GetArchivedLoan(ctx context.Context, archivedToken string) (*Details, error)
	ProofURLByArchive(ctx context.Context, archivedToken, paymentID string) (string, error)

	// Direct-to-storage transfer against a presigned URL.
	UploadProofFile(ctx context.Context, uploadURL, contentType string, size int64, body io.Reader) error
}
