// file: internals/features/finance/waivers/dto/waiver_request_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "sekolahku_backend/internals/features/finance/waivers/model"
)

/* ===================== Requests ===================== */

type WaiverCreateRequest struct {
	StudentID uuid.UUID       `json:"student_id" validate:"required"`
	FeeType   string          `json:"fee_type" validate:"required,max=50"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Reason    string          `json:"reason" validate:"required,max=1000"`
}

type WaiverDecisionRequest struct {
	Decision string          `json:"decision" validate:"required,oneof=approve reject"`
	Amount   decimal.Decimal `json:"amount,omitempty"` // kosong = pakai nominal pengajuan
}

/* ===================== Response ===================== */

type WaiverResponse struct {
	WaiverRequestID        uuid.UUID          `json:"waiver_request_id"`
	WaiverRequestStudentID uuid.UUID          `json:"waiver_request_student_id"`
	FeeType                string             `json:"fee_type"`
	RequestedAmount        decimal.Decimal    `json:"requested_amount"`
	Reason                 string             `json:"reason"`
	Status                 model.WaiverStatus `json:"status"`

	ProcessedBy      *uuid.UUID       `json:"processed_by,omitempty"`
	ProcessedDate    *time.Time       `json:"processed_date,omitempty"`
	AppliedInvoiceID *uuid.UUID       `json:"applied_invoice_id,omitempty"`
	AppliedAmount    *decimal.Decimal `json:"applied_amount,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

/* ===================== Mappers ===================== */

func FromModel(m *model.WaiverRequest) WaiverResponse {
	return WaiverResponse{
		WaiverRequestID:        m.WaiverRequestID,
		WaiverRequestStudentID: m.WaiverRequestStudentID,
		FeeType:                m.WaiverRequestFeeType,
		RequestedAmount:        m.WaiverRequestRequestedAmount,
		Reason:                 m.WaiverRequestReason,
		Status:                 m.WaiverRequestStatus,
		ProcessedBy:            m.WaiverRequestProcessedBy,
		ProcessedDate:          m.WaiverRequestProcessedDate,
		AppliedInvoiceID:       m.WaiverRequestAppliedInvoiceID,
		AppliedAmount:          m.WaiverRequestAppliedAmount,
		CreatedAt:              m.WaiverRequestCreatedAt,
	}
}

func FromModels(ms []model.WaiverRequest) []WaiverResponse {
	out := make([]WaiverResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
