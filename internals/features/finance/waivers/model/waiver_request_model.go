// file: internals/features/finance/waivers/model/waiver_request_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM — status pengajuan keringanan
   Pending → {Approved, Rejected}; dua-duanya terminal.
========================================================= */

type WaiverStatus string

const (
	WaiverStatusPending  WaiverStatus = "pending"
	WaiverStatusApproved WaiverStatus = "approved"
	WaiverStatusRejected WaiverStatus = "rejected"
)

/* =========================================================
   MODEL — waiver_requests
========================================================= */

type WaiverRequest struct {
	WaiverRequestID uuid.UUID `gorm:"column:waiver_request_id;type:uuid;primaryKey" json:"waiver_request_id"`

	// FK → students
	WaiverRequestStudentID uuid.UUID `gorm:"column:waiver_request_student_id;type:uuid;not null;index" json:"waiver_request_student_id"`

	WaiverRequestFeeType         string          `gorm:"column:waiver_request_fee_type;type:varchar(50);not null" json:"waiver_request_fee_type"`
	WaiverRequestRequestedAmount decimal.Decimal `gorm:"column:waiver_request_requested_amount;type:numeric(12,2);not null;check:waiver_request_requested_amount > 0" json:"waiver_request_requested_amount"`
	WaiverRequestReason          string          `gorm:"column:waiver_request_reason;type:text;not null" json:"waiver_request_reason"`

	WaiverRequestStatus WaiverStatus `gorm:"column:waiver_request_status;type:varchar(20);not null;default:'pending';index" json:"waiver_request_status"`

	// Jejak keputusan — terisi hanya setelah diproses
	WaiverRequestProcessedBy   *uuid.UUID `gorm:"column:waiver_request_processed_by;type:uuid" json:"waiver_request_processed_by,omitempty"`
	WaiverRequestProcessedDate *time.Time `gorm:"column:waiver_request_processed_date" json:"waiver_request_processed_date,omitempty"`

	// Audit: invoice mana yang menyerap diskon, dan berapa yang benar-benar
	// terpakai (bisa lebih kecil dari requested karena clamp ke outstanding)
	WaiverRequestAppliedInvoiceID *uuid.UUID       `gorm:"column:waiver_request_applied_invoice_id;type:uuid" json:"waiver_request_applied_invoice_id,omitempty"`
	WaiverRequestAppliedAmount    *decimal.Decimal `gorm:"column:waiver_request_applied_amount;type:numeric(12,2)" json:"waiver_request_applied_amount,omitempty"`

	WaiverRequestCreatedAt time.Time `gorm:"column:waiver_request_created_at;not null;autoCreateTime" json:"waiver_request_created_at"`
	WaiverRequestUpdatedAt time.Time `gorm:"column:waiver_request_updated_at;not null;autoUpdateTime" json:"waiver_request_updated_at"`
}

func (WaiverRequest) TableName() string { return "waiver_requests" }

func (m *WaiverRequest) BeforeCreate(tx *gorm.DB) error {
	if m.WaiverRequestID == uuid.Nil {
		m.WaiverRequestID = uuid.New()
	}
	return nil
}

func (m *WaiverRequest) IsProcessed() bool {
	return m.WaiverRequestStatus != WaiverStatusPending
}
