// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "sekolahku_backend/internals/features/finance/payments/model"
)

/* ===================== Requests ===================== */

type CollectRequest struct {
	StudentID uuid.UUID       `json:"student_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Mode      string          `json:"mode" validate:"required,oneof=cash transfer qris"`
	Note      string          `json:"note,omitempty" validate:"omitempty,max=500"`
}

/* ===================== Responses ===================== */

type PaymentResponse struct {
	PaymentID            uuid.UUID         `json:"payment_id"`
	PaymentInvoiceID     uuid.UUID         `json:"payment_invoice_id"`
	PaymentTransactionID string            `json:"payment_transaction_id"`
	PaymentAmount        decimal.Decimal   `json:"payment_amount"`
	PaymentMode          model.PaymentMode `json:"payment_mode"`
	PaymentDate          time.Time         `json:"payment_date"`
	PaymentCollectedBy   uuid.UUID         `json:"payment_collected_by"`
	PaymentNote          *string           `json:"payment_note,omitempty"`
	PaymentCreatedAt     time.Time         `json:"payment_created_at"`
}

/* ===================== Mappers ===================== */

func FromModel(m *model.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:            m.PaymentID,
		PaymentInvoiceID:     m.PaymentInvoiceID,
		PaymentTransactionID: m.PaymentTransactionID,
		PaymentAmount:        m.PaymentAmount,
		PaymentMode:          m.PaymentMode,
		PaymentDate:          m.PaymentDate,
		PaymentCollectedBy:   m.PaymentCollectedBy,
		PaymentNote:          m.PaymentNote,
		PaymentCreatedAt:     m.PaymentCreatedAt,
	}
}

func FromModels(ms []model.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
