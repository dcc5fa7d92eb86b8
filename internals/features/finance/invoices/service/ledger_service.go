// file: internals/features/finance/invoices/service/ledger_service.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	studentmodel "sekolahku_backend/internals/features/academics/students/model"
	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
	paymentmodel "sekolahku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   LEDGER — tampilan konsolidasi per siswa (read-only)
========================================================= */

type LedgerInvoice struct {
	invmodel.Invoice
	Items []invmodel.InvoiceItem `json:"items"`
}

type StudentLedger struct {
	StudentID     uuid.UUID `json:"student_id"`
	StudentName   string    `json:"student_name"`
	StudentNumber *string   `json:"student_number,omitempty"`

	TotalFees     decimal.Decimal `json:"total_fees"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	Balance       decimal.Decimal `json:"balance"` // total_fees - total_paid

	Invoices []LedgerInvoice       `json:"invoices"` // due_date ASC
	Payments []paymentmodel.Payment `json:"payments"` // terbaru dulu
}

// BuildStudentLedger merangkum seluruh posisi keuangan satu siswa.
// Agregat dihitung dari baris yang sama yang ditampilkan, jadi angka
// ringkasan dan rincian tidak mungkin berbeda.
func BuildStudentLedger(db *gorm.DB, studentID uuid.UUID) (*StudentLedger, error) {
	var student studentmodel.Student
	if err := db.Take(&student, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	var invoices []invmodel.Invoice
	if err := db.
		Where("invoice_student_id = ?", studentID).
		Order("invoice_due_date ASC, invoice_created_at ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}

	ledger := &StudentLedger{
		StudentID:     student.StudentID,
		StudentName:   student.StudentName,
		StudentNumber: student.StudentNumber,
		TotalFees:     decimal.Zero,
		TotalPaid:     decimal.Zero,
		TotalDiscount: decimal.Zero,
		Invoices:      make([]LedgerInvoice, 0, len(invoices)),
		Payments:      []paymentmodel.Payment{},
	}

	invoiceIDs := make([]uuid.UUID, 0, len(invoices))
	for i := range invoices {
		inv := invoices[i]
		invoiceIDs = append(invoiceIDs, inv.InvoiceID)
		ledger.TotalFees = ledger.TotalFees.Add(inv.InvoiceTotalAmount)
		ledger.TotalPaid = ledger.TotalPaid.Add(inv.InvoicePaidAmount)
		ledger.TotalDiscount = ledger.TotalDiscount.Add(inv.InvoiceDiscountAmount)
	}
	ledger.Balance = ledger.TotalFees.Sub(ledger.TotalPaid)

	if len(invoiceIDs) > 0 {
		var items []invmodel.InvoiceItem
		if err := db.
			Where("invoice_item_invoice_id IN ?", invoiceIDs).
			Order("invoice_item_created_at ASC").
			Find(&items).Error; err != nil {
			return nil, err
		}
		itemsByInvoice := make(map[uuid.UUID][]invmodel.InvoiceItem, len(invoiceIDs))
		for _, it := range items {
			itemsByInvoice[it.InvoiceItemInvoiceID] = append(itemsByInvoice[it.InvoiceItemInvoiceID], it)
		}
		for i := range invoices {
			ledger.Invoices = append(ledger.Invoices, LedgerInvoice{
				Invoice: invoices[i],
				Items:   itemsByInvoice[invoices[i].InvoiceID],
			})
		}

		if err := db.
			Where("payment_invoice_id IN ?", invoiceIDs).
			Order("payment_date DESC, payment_created_at DESC").
			Find(&ledger.Payments).Error; err != nil {
			return nil, err
		}
	}

	return ledger, nil
}

/* =========================================================
   REFUNDABLE BALANCE — Σ payments − Σ invoice totals
========================================================= */

type RefundableBalance struct {
	StudentID         uuid.UUID       `json:"student_id"`
	TotalPayments     decimal.Decimal `json:"total_payments"`
	TotalInvoiced     decimal.Decimal `json:"total_invoiced"`
	RefundableBalance decimal.Decimal `json:"refundable_balance"`
}

// ComputeRefundableBalance: positif = siswa punya kelebihan setoran.
// Negatif dibiarkan tampil (bahan audit), tidak di-clamp.
func ComputeRefundableBalance(db *gorm.DB, studentID uuid.UUID) (*RefundableBalance, error) {
	var exists int64
	if err := db.Model(&studentmodel.Student{}).
		Where("student_id = ?", studentID).
		Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrStudentNotFound
	}

	var totalInvoiced decimal.Decimal
	if err := db.Model(&invmodel.Invoice{}).
		Where("invoice_student_id = ?", studentID).
		Select("COALESCE(SUM(invoice_total_amount), 0)").
		Scan(&totalInvoiced).Error; err != nil {
		return nil, err
	}

	var totalPayments decimal.Decimal
	if err := db.Model(&paymentmodel.Payment{}).
		Joins("JOIN invoices ON invoices.invoice_id = payments.payment_invoice_id").
		Where("invoices.invoice_student_id = ?", studentID).
		Select("COALESCE(SUM(payments.payment_amount), 0)").
		Scan(&totalPayments).Error; err != nil {
		return nil, err
	}

	return &RefundableBalance{
		StudentID:         studentID,
		TotalPayments:     totalPayments,
		TotalInvoiced:     totalInvoiced,
		RefundableBalance: totalPayments.Sub(totalInvoiced),
	}, nil
}
