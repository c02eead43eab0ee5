package order

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/order"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type Store interface {
	Create(ctx context.Context, o *models.Order) error
}

// ======================================================
// INPUT
// ======================================================

type CreateOrderInput struct {
	CustomerID         uint
	ProjectID          uint
	ConsultantID       uint
	DiscountApproverID *uint

	Status        string
	PaymentMethod string

	Amount         float64
	DiscountAmount float64
	FinalAmount    *float64

	PaidAt *time.Time
}

// ======================================================
// USE CASE
// ======================================================

type CreateOrder struct {
	repo  Store
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateOrder(repo Store, audit *audit.Dispatcher) *CreateOrder {
	return &CreateOrder{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *CreateOrder) Execute(
	ctx context.Context,
	actorID uint,
	in CreateOrderInput,
) (*models.Order, error) {

	status := domain.StatusPendingPayment
	if in.Status != "" {
		s, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}

	if in.PaymentMethod != "" && !domain.PaymentMethod(in.PaymentMethod).Valid() {
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	final, err := domain.FinalAmount(in.Amount, in.DiscountAmount, in.FinalAmount)
	if err != nil {
		return nil, err
	}

	paidAt := in.PaidAt
	if paidAt == nil && status == domain.StatusPaid {
		t := uc.now()
		paidAt = &t
	}

	o := &models.Order{
		CustomerID:         in.CustomerID,
		ProjectID:          in.ProjectID,
		ConsultantID:       in.ConsultantID,
		DiscountApproverID: in.DiscountApproverID,
		Status:             string(status),
		PaymentMethod:      in.PaymentMethod,
		Amount:             in.Amount,
		DiscountAmount:     in.DiscountAmount,
		FinalAmount:        final,
		PaidAt:             paidAt,
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	uc.audit.Record(actorID, "order_created", "order", o.ID, map[string]float64{
		"amount":      o.Amount,
		"discount":    o.DiscountAmount,
		"finalAmount": o.FinalAmount,
	})

	return o, nil
}
