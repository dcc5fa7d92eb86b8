// file: internals/features/finance/fees/dto/fee_structure_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "sekolahku_backend/internals/features/finance/fees/model"
)

/* ===================== Requests ===================== */

type FeeStructureCreateRequest struct {
	FeeStructureCourseID  uuid.UUID `json:"fee_structure_course_id" validate:"required"`
	FeeStructureBatchID   uuid.UUID `json:"fee_structure_batch_id" validate:"required"`
	FeeStructureSessionID uuid.UUID `json:"fee_structure_session_id" validate:"required"`

	FeeStructureAdmissionAmount    *decimal.Decimal `json:"fee_structure_admission_amount,omitempty"`
	FeeStructureRegistrationAmount *decimal.Decimal `json:"fee_structure_registration_amount,omitempty"`
	FeeStructureTuitionAmount      *decimal.Decimal `json:"fee_structure_tuition_amount,omitempty"`
	FeeStructureExamAmount         *decimal.Decimal `json:"fee_structure_exam_amount,omitempty"`

	FeeStructureTransportApplicable bool             `json:"fee_structure_transport_applicable"`
	FeeStructureTransportAmount     *decimal.Decimal `json:"fee_structure_transport_amount,omitempty"`
	FeeStructureHostelApplicable    bool             `json:"fee_structure_hostel_applicable"`
	FeeStructureHostelAmount        *decimal.Decimal `json:"fee_structure_hostel_amount,omitempty"`

	FeeStructureDurationMonths int `json:"fee_structure_duration_months" validate:"omitempty,min=1,max=60"`
}

// HasNegativeAmount: validasi bisnis, nominal tidak boleh negatif
func (r *FeeStructureCreateRequest) HasNegativeAmount() bool {
	for _, p := range []*decimal.Decimal{
		r.FeeStructureAdmissionAmount,
		r.FeeStructureRegistrationAmount,
		r.FeeStructureTuitionAmount,
		r.FeeStructureExamAmount,
		r.FeeStructureTransportAmount,
		r.FeeStructureHostelAmount,
	} {
		if p != nil && p.IsNegative() {
			return true
		}
	}
	return false
}

type FeeStructureUpdateRequest struct {
	FeeStructureAdmissionAmount    *decimal.Decimal `json:"fee_structure_admission_amount,omitempty"`
	FeeStructureRegistrationAmount *decimal.Decimal `json:"fee_structure_registration_amount,omitempty"`
	FeeStructureTuitionAmount      *decimal.Decimal `json:"fee_structure_tuition_amount,omitempty"`
	FeeStructureExamAmount         *decimal.Decimal `json:"fee_structure_exam_amount,omitempty"`

	FeeStructureTransportApplicable *bool            `json:"fee_structure_transport_applicable,omitempty"`
	FeeStructureTransportAmount     *decimal.Decimal `json:"fee_structure_transport_amount,omitempty"`
	FeeStructureHostelApplicable    *bool            `json:"fee_structure_hostel_applicable,omitempty"`
	FeeStructureHostelAmount        *decimal.Decimal `json:"fee_structure_hostel_amount,omitempty"`

	FeeStructureDurationMonths *int  `json:"fee_structure_duration_months,omitempty" validate:"omitempty,min=1,max=60"`
	FeeStructureIsActive       *bool `json:"fee_structure_is_active,omitempty"`
}

/* ===================== Response ===================== */

type FeeStructureResponse struct {
	FeeStructureID        uuid.UUID `json:"fee_structure_id"`
	FeeStructureCourseID  uuid.UUID `json:"fee_structure_course_id"`
	FeeStructureBatchID   uuid.UUID `json:"fee_structure_batch_id"`
	FeeStructureSessionID uuid.UUID `json:"fee_structure_session_id"`

	// Response selalu ternormalisasi (NULL → 0)
	FeeStructureAdmissionAmount    decimal.Decimal `json:"fee_structure_admission_amount"`
	FeeStructureRegistrationAmount decimal.Decimal `json:"fee_structure_registration_amount"`
	FeeStructureTuitionAmount      decimal.Decimal `json:"fee_structure_tuition_amount"`
	FeeStructureExamAmount         decimal.Decimal `json:"fee_structure_exam_amount"`

	FeeStructureTransportApplicable bool            `json:"fee_structure_transport_applicable"`
	FeeStructureTransportAmount     decimal.Decimal `json:"fee_structure_transport_amount"`
	FeeStructureHostelApplicable    bool            `json:"fee_structure_hostel_applicable"`
	FeeStructureHostelAmount        decimal.Decimal `json:"fee_structure_hostel_amount"`

	FeeStructureDurationMonths int       `json:"fee_structure_duration_months"`
	FeeStructureIsActive       bool      `json:"fee_structure_is_active"`
	FeeStructureCreatedAt      time.Time `json:"fee_structure_created_at"`
	FeeStructureUpdatedAt      time.Time `json:"fee_structure_updated_at"`
}

/* ===================== Mappers ===================== */

func (r *FeeStructureCreateRequest) ToModel() *model.FeeStructure {
	duration := r.FeeStructureDurationMonths
	if duration <= 0 {
		duration = 12
	}
	return &model.FeeStructure{
		FeeStructureCourseID:            r.FeeStructureCourseID,
		FeeStructureBatchID:             r.FeeStructureBatchID,
		FeeStructureSessionID:           r.FeeStructureSessionID,
		FeeStructureAdmissionAmount:     r.FeeStructureAdmissionAmount,
		FeeStructureRegistrationAmount:  r.FeeStructureRegistrationAmount,
		FeeStructureTuitionAmount:       r.FeeStructureTuitionAmount,
		FeeStructureExamAmount:          r.FeeStructureExamAmount,
		FeeStructureTransportApplicable: r.FeeStructureTransportApplicable,
		FeeStructureTransportAmount:     r.FeeStructureTransportAmount,
		FeeStructureHostelApplicable:    r.FeeStructureHostelApplicable,
		FeeStructureHostelAmount:        r.FeeStructureHostelAmount,
		FeeStructureDurationMonths:      duration,
		FeeStructureIsActive:            true,
	}
}

func (r *FeeStructureUpdateRequest) Apply(m *model.FeeStructure) {
	if r.FeeStructureAdmissionAmount != nil {
		m.FeeStructureAdmissionAmount = r.FeeStructureAdmissionAmount
	}
	if r.FeeStructureRegistrationAmount != nil {
		m.FeeStructureRegistrationAmount = r.FeeStructureRegistrationAmount
	}
	if r.FeeStructureTuitionAmount != nil {
		m.FeeStructureTuitionAmount = r.FeeStructureTuitionAmount
	}
	if r.FeeStructureExamAmount != nil {
		m.FeeStructureExamAmount = r.FeeStructureExamAmount
	}
	if r.FeeStructureTransportApplicable != nil {
		m.FeeStructureTransportApplicable = *r.FeeStructureTransportApplicable
	}
	if r.FeeStructureTransportAmount != nil {
		m.FeeStructureTransportAmount = r.FeeStructureTransportAmount
	}
	if r.FeeStructureHostelApplicable != nil {
		m.FeeStructureHostelApplicable = *r.FeeStructureHostelApplicable
	}
	if r.FeeStructureHostelAmount != nil {
		m.FeeStructureHostelAmount = r.FeeStructureHostelAmount
	}
	if r.FeeStructureDurationMonths != nil {
		m.FeeStructureDurationMonths = *r.FeeStructureDurationMonths
	}
	if r.FeeStructureIsActive != nil {
		m.FeeStructureIsActive = *r.FeeStructureIsActive
	}
}

func FromModel(m *model.FeeStructure) FeeStructureResponse {
	return FeeStructureResponse{
		FeeStructureID:                  m.FeeStructureID,
		FeeStructureCourseID:            m.FeeStructureCourseID,
		FeeStructureBatchID:             m.FeeStructureBatchID,
		FeeStructureSessionID:           m.FeeStructureSessionID,
		FeeStructureAdmissionAmount:     m.AdmissionAmount(),
		FeeStructureRegistrationAmount:  m.RegistrationAmount(),
		FeeStructureTuitionAmount:       m.TuitionAmount(),
		FeeStructureExamAmount:          m.ExamAmount(),
		FeeStructureTransportApplicable: m.FeeStructureTransportApplicable,
		FeeStructureTransportAmount:     m.TransportAmount(),
		FeeStructureHostelApplicable:    m.FeeStructureHostelApplicable,
		FeeStructureHostelAmount:        m.HostelAmount(),
		FeeStructureDurationMonths:      m.FeeStructureDurationMonths,
		FeeStructureIsActive:            m.FeeStructureIsActive,
		FeeStructureCreatedAt:           m.FeeStructureCreatedAt,
		FeeStructureUpdatedAt:           m.FeeStructureUpdatedAt,
	}
}

func FromModels(ms []model.FeeStructure) []FeeStructureResponse {
	out := make([]FeeStructureResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
