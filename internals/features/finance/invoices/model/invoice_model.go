// file: internals/features/finance/invoices/model/invoice_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM — status invoice
========================================================= */

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusWaived  InvoiceStatus = "waived"
)

// OutstandingStatuses: invoice yang masih bisa menerima pembayaran.
var OutstandingStatuses = []InvoiceStatus{InvoiceStatusPending, InvoiceStatusPartial}

// ComputeStatus adalah SATU-SATUNYA tempat aturan status dihitung.
// Semua penulis (generator, allocator, waiver) wajib lewat sini —
// jangan duplikasi threshold di call site lain.
//   - paid == 0                         → pending
//   - 0 < paid < total                  → partial
//   - paid >= total                     → paid
//   - total habis oleh waiver, paid == 0 → waived (terminal)
func ComputeStatus(paid, total, discount decimal.Decimal) InvoiceStatus {
	if paid.LessThanOrEqual(decimal.Zero) {
		if total.LessThanOrEqual(decimal.Zero) && discount.GreaterThan(decimal.Zero) {
			return InvoiceStatusWaived
		}
		return InvoiceStatusPending
	}
	if paid.LessThan(total) {
		return InvoiceStatusPartial
	}
	return InvoiceStatusPaid
}

/* =========================================================
   MODEL — invoices
   Kolom kanonik: invoice_paid_amount & invoice_issue_date
   (JANGAN pakai amount_paid / bill_date — sumber bug lama).
   Baris ledger tidak pernah soft-delete.
========================================================= */

type Invoice struct {
	// PK
	InvoiceID uuid.UUID `gorm:"column:invoice_id;type:uuid;primaryKey" json:"invoice_id"`

	// FK → students
	InvoiceStudentID uuid.UUID `gorm:"column:invoice_student_id;type:uuid;not null;index:idx_invoices_student_due,priority:1" json:"invoice_student_id"`

	// Tanggal
	InvoiceIssueDate time.Time `gorm:"column:invoice_issue_date;type:date;not null" json:"invoice_issue_date"`
	InvoiceDueDate   time.Time `gorm:"column:invoice_due_date;type:date;not null;index:idx_invoices_student_due,priority:2" json:"invoice_due_date"`

	// Nominal — invariant: 0 <= paid <= total; total hanya turun via waiver
	InvoiceTotalAmount    decimal.Decimal `gorm:"column:invoice_total_amount;type:numeric(12,2);not null;check:invoice_total_amount >= 0" json:"invoice_total_amount"`
	InvoicePaidAmount     decimal.Decimal `gorm:"column:invoice_paid_amount;type:numeric(12,2);not null;default:0;check:invoice_paid_amount >= 0" json:"invoice_paid_amount"`
	InvoiceDiscountAmount decimal.Decimal `gorm:"column:invoice_discount_amount;type:numeric(12,2);not null;default:0;check:invoice_discount_amount >= 0" json:"invoice_discount_amount"`

	// Status — selalu hasil ComputeStatus, tidak pernah di-set manual
	InvoiceStatus InvoiceStatus `gorm:"column:invoice_status;type:varchar(20);not null;default:'pending';index" json:"invoice_status"`

	InvoiceNote *string `gorm:"column:invoice_note;type:text" json:"invoice_note,omitempty"`

	// Timestamps
	InvoiceCreatedAt time.Time `gorm:"column:invoice_created_at;not null;autoCreateTime" json:"invoice_created_at"`
	InvoiceUpdatedAt time.Time `gorm:"column:invoice_updated_at;not null;autoUpdateTime" json:"invoice_updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

func (m *Invoice) BeforeCreate(tx *gorm.DB) error {
	if m.InvoiceID == uuid.Nil {
		m.InvoiceID = uuid.New()
	}
	return nil
}

// Outstanding = total - paid (tidak pernah negatif oleh invariant)
func (m *Invoice) Outstanding() decimal.Decimal {
	return m.InvoiceTotalAmount.Sub(m.InvoicePaidAmount)
}

// RecomputeStatus menyegarkan kolom status dari nominal terkini.
func (m *Invoice) RecomputeStatus() {
	m.InvoiceStatus = ComputeStatus(m.InvoicePaidAmount, m.InvoiceTotalAmount, m.InvoiceDiscountAmount)
}

/* =========================================================
   MODEL — invoice_items
   Dibuat sekali bersama invoice; setelah itu immutable.
   Invariant saat create: sum(items) == total + discount.
========================================================= */

type InvoiceItem struct {
	InvoiceItemID          uuid.UUID       `gorm:"column:invoice_item_id;type:uuid;primaryKey" json:"invoice_item_id"`
	InvoiceItemInvoiceID   uuid.UUID       `gorm:"column:invoice_item_invoice_id;type:uuid;not null;index" json:"invoice_item_invoice_id"`
	InvoiceItemDescription string          `gorm:"column:invoice_item_description;type:varchar(120);not null" json:"invoice_item_description"`
	InvoiceItemAmount      decimal.Decimal `gorm:"column:invoice_item_amount;type:numeric(12,2);not null;check:invoice_item_amount > 0" json:"invoice_item_amount"`

	InvoiceItemCreatedAt time.Time `gorm:"column:invoice_item_created_at;not null;autoCreateTime" json:"invoice_item_created_at"`
}

func (InvoiceItem) TableName() string { return "invoice_items" }

func (m *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if m.InvoiceItemID == uuid.Nil {
		m.InvoiceItemID = uuid.New()
	}
	return nil
}
