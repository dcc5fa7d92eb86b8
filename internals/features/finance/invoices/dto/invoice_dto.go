// file: internals/features/finance/invoices/dto/invoice_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "sekolahku_backend/internals/features/finance/invoices/model"
)

/* ===================== Requests ===================== */

type GenerateBulkRequest struct {
	CourseID uuid.UUID `json:"course_id" validate:"required"`
	BatchID  uuid.UUID `json:"batch_id" validate:"required"`
	DueDate  string    `json:"due_date,omitempty"` // YYYY-MM-DD, kosong = issue + grace
}

type GenerateOneRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	DueDate   string    `json:"due_date,omitempty"`
}

/* ===================== Responses ===================== */

type InvoiceItemResponse struct {
	InvoiceItemID          uuid.UUID       `json:"invoice_item_id"`
	InvoiceItemDescription string          `json:"invoice_item_description"`
	InvoiceItemAmount      decimal.Decimal `json:"invoice_item_amount"`
}

type InvoiceResponse struct {
	InvoiceID        uuid.UUID `json:"invoice_id"`
	InvoiceStudentID uuid.UUID `json:"invoice_student_id"`

	InvoiceIssueDate time.Time `json:"invoice_issue_date"`
	InvoiceDueDate   time.Time `json:"invoice_due_date"`

	InvoiceTotalAmount    decimal.Decimal `json:"invoice_total_amount"`
	InvoicePaidAmount     decimal.Decimal `json:"invoice_paid_amount"`
	InvoiceDiscountAmount decimal.Decimal `json:"invoice_discount_amount"`
	InvoiceOutstanding    decimal.Decimal `json:"invoice_outstanding"`

	InvoiceStatus model.InvoiceStatus `json:"invoice_status"`
	InvoiceNote   *string             `json:"invoice_note,omitempty"`

	InvoiceCreatedAt time.Time `json:"invoice_created_at"`

	Items []InvoiceItemResponse `json:"items,omitempty"`
}

/* ===================== Mappers ===================== */

func FromItem(m *model.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		InvoiceItemID:          m.InvoiceItemID,
		InvoiceItemDescription: m.InvoiceItemDescription,
		InvoiceItemAmount:      m.InvoiceItemAmount,
	}
}

func FromItems(ms []model.InvoiceItem) []InvoiceItemResponse {
	out := make([]InvoiceItemResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromItem(&ms[i]))
	}
	return out
}

func FromModel(m *model.Invoice, items []model.InvoiceItem) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:             m.InvoiceID,
		InvoiceStudentID:      m.InvoiceStudentID,
		InvoiceIssueDate:      m.InvoiceIssueDate,
		InvoiceDueDate:        m.InvoiceDueDate,
		InvoiceTotalAmount:    m.InvoiceTotalAmount,
		InvoicePaidAmount:     m.InvoicePaidAmount,
		InvoiceDiscountAmount: m.InvoiceDiscountAmount,
		InvoiceOutstanding:    m.Outstanding(),
		InvoiceStatus:         m.InvoiceStatus,
		InvoiceNote:           m.InvoiceNote,
		InvoiceCreatedAt:      m.InvoiceCreatedAt,
		Items:                 FromItems(items),
	}
}

func FromModels(ms []model.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i], nil))
	}
	return out
}
