package order

import (
	"math"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusPaid           Status = "paid"
	StatusCompleted      Status = "completed"
	StatusRefunded       Status = "refunded"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPendingPayment, StatusPaid, StatusCompleted, StatusRefunded:
		return true
	}
	return false
}

func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", httperr.ErrBusiness("invalid_status")
	}
	return s, nil
}

type PaymentMethod string

const (
	PaymentWechat PaymentMethod = "wechat"
	PaymentAlipay PaymentMethod = "alipay"
	PaymentCard   PaymentMethod = "card"
	PaymentCash   PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentWechat, PaymentAlipay, PaymentCard, PaymentCash:
		return true
	}
	return false
}

// FinalAmount returns explicit when the caller supplied one, otherwise
// amount minus discount rounded to cents. Only order creation calls it.
func FinalAmount(amount, discount float64, explicit *float64) (float64, error) {
	if amount < 0 || discount < 0 {
		return 0, httperr.ErrBusiness("negative_amount")
	}
	if discount > amount {
		return 0, httperr.ErrBusiness("discount_exceeds_amount")
	}
	if explicit != nil {
		if *explicit < 0 {
			return 0, httperr.ErrBusiness("negative_amount")
		}
		return *explicit, nil
	}
	return math.Round((amount-discount)*100) / 100, nil
}
