package service

import (
	"context"

	"github.com/shopspring/decimal"

	"novalib-backend/internal/domains/returndesk"
	"novalib-backend/pkg/logger"
)

// ReturnDeskService tracks fines on books in return processing. No
// accrual algorithm lives here; amounts are entered at the desk.
type ReturnDeskService struct {
	repo returndesk.Repository
}

func NewReturnDeskService(repo returndesk.Repository) *ReturnDeskService {
	return &ReturnDeskService{repo: repo}
}

func (s *ReturnDeskService) Create(ctx context.Context, req returndesk.CreateEntryRequest) (*returndesk.Entry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e := &returndesk.Entry{
		StudentID:  req.StudentID,
		Book:       req.Book,
		Fine:       req.Fine,
		OTP:        req.OTP,
		OTPExpired: req.OTPExpired,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	logger.Info("return desk entry created", map[string]interface{}{
		"student_id": e.StudentID,
		"fine":       e.Fine.String(),
	})
	return e, nil
}

func (s *ReturnDeskService) ListByStudent(ctx context.Context, studentID int64) ([]returndesk.Entry, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *ReturnDeskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *ReturnDeskService) DueFine(ctx context.Context, studentID int64) (decimal.Decimal, error) {
	return s.repo.DueFine(ctx, studentID)
}
