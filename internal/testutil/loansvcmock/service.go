package loansvcmock

import (
	"context"
	"io"

	domain "dayne-web/internal/domain/loan"
)

// Service is a function-backed mock that satisfies domain.Service.
// Only methods you need are included; add more as tests require.
type Service struct {
	CreateLoanFn         func(ctx context.Context, in domain.CreateLoanInput) (*domain.Details, error)
	GetManageLoanFn      func(ctx context.Context, manageToken string) (*domain.Details, error)
	CreatePaymentFn      func(ctx context.Context, manageToken string, in domain.CreatePaymentInput) (*domain.Details, error)
	PresignProofUploadFn func(ctx context.Context, manageToken string, in domain.PresignProofInput) (*domain.PresignProofResponse, error)
	ProofURLByManageFn   func(ctx context.Context, manageToken, paymentID string) (string, error)
	GetPublicLoanFn      func(ctx context.Context, publicToken string) (*domain.Details, error)
	ApprovePaymentFn     func(ctx context.Context, publicToken, paymentID string) (*domain.Details, error)
	RejectPaymentFn      func(ctx context.Context, publicToken, paymentID, reason string) (*domain.Details, error)
	CreateLoanWaiverFn   func(ctx context.Context, publicToken string, amount float64) (*domain.Details, error)
	ProofURLByPublicFn   func(ctx context.Context, publicToken, paymentID string) (string, error)
	GetArchivedLoanFn    func(ctx context.Context, archivedToken string) (*domain.Details, error)
	ProofURLByArchiveFn  func(ctx context.Context, archivedToken, paymentID string) (string, error)
	UploadProofFileFn    func(ctx context.Context, uploadURL, contentType string, size int64, body io.Reader) error
}

func (m *Service) CreateLoan(ctx context.Context, in domain.CreateLoanInput) (*domain.Details, error) {
	if m.CreateLoanFn != nil {
		return m.CreateLoanFn(ctx, in)
	}
	return nil, domain.ErrNotFound
}

func (m *Service) GetManageLoan(ctx context.Context, manageToken string) (*domain.Details, error) {
	if m.GetManageLoanFn != nil {
		return m.GetManageLoanFn(ctx, manageToken)
	}
	return nil, domain.ErrNotFound
}

func (m *Service) CreatePayment(ctx context.Context, manageToken string, in domain.CreatePaymentInput) (*domain.Details, error) {
	if m.CreatePaymentFn != nil {
		return m.CreatePaymentFn(ctx, manageToken, in)
	}
	return nil, domain.ErrNotFound
}

func (m *Service) PresignProofUpload(ctx context.Context, manageToken string, in domain.PresignProofInput) (*domain.PresignProofResponse, error) {
	if m.PresignProofUploadFn != nil {
		return m.PresignProofUploadFn(ctx, manageToken, in)
	}
	return nil, domain.ErrNotFound
}

func (m *Service) ProofURLByManage(ctx context.Context, manageToken, paymentID string) (string, error) {
	if m.ProofURLByManageFn != nil {
		return m.ProofURLByManageFn(ctx, manageToken, paymentID)
	}
	return "", domain.ErrNotFound
}

func (m *Service) GetPublicLoan(ctx context.Context, publicToken string) (*domain.Details, error) {
	if m.GetPublicLoanFn != nil {
		return m.GetPublicLoanFn(ctx, publicToken)
	}
	return nil, domain.ErrNotFound
}

func (m *Service) ApprovePayment(ctx context.Context, publicToken, paymentID string) (*domain.Details, error) {
	if m.ApprovePaymentFn != nil {
		return m.ApprovePaymentFn(ctx, publicToken, paymentID)
	}
	return nil, domain.ErrNotFound
}

func (m *Service) RejectPayment(ctx context.Context, publicToken, paymentID, reason string) (*domain.Details, error) {
	if m.RejectPaymentFn != nil {
		return m.RejectPaymentFn(ctx, publicToken, paymentID, reason)
	}
	return nil, domain.ErrNotFound
}

func (m *Service) CreateLoanWaiver(ctx context.Context, publicToken string, amount float64) (*domain.Details, error) {
	if m.CreateLoanWaiverFn != nil {
		return m.CreateLoanWaiverFn(ctx, publicToken, amount)
	}
	return nil, domain.ErrNotFound
}

func (m *Service) ProofURLByPublic(ctx context.Context, publicToken, paymentID string) (string, error) {
	if m.ProofURLByPublicFn != nil {
		return m.ProofURLByPublicFn(ctx, publicToken, paymentID)
	}
	return "", domain.ErrNotFound
}

func (m *Service) GetArchivedLoan(ctx context.Context, archivedToken string) (*domain.Details, error) {
	if m.GetArchivedLoanFn != nil {
		return m.GetArchivedLoanFn(ctx, archivedToken)
	}
	return nil, domain.ErrNotFound
}

func (m *Service) ProofURLByArchive(ctx context.Context, archivedToken, paymentID string) (string, error) {
	if m.ProofURLByArchiveFn != nil {
		return m.ProofURLByArchiveFn(ctx, archivedToken, paymentID)
	}
	return "", domain.ErrNotFound
}

func (m *Service) UploadProofFile(ctx context.Context, uploadURL, contentType string, size int64, body io.Reader) error {
	if m.UploadProofFileFn != nil {
		return m.UploadProofFileFn(ctx, uploadURL, contentType, size, body)
	}
	return nil
}

var _ domain.Service = (*Service)(nil)
