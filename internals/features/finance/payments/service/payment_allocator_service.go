// file: internals/features/finance/payments/service/payment_allocator_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	studentmodel "sekolahku_backend/internals/features/academics/students/model"
	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
	model "sekolahku_backend/internals/features/finance/payments/model"
	helper "sekolahku_backend/internals/helpers"
)

var (
	ErrInvalidAmount        = errors.New("nominal pembayaran harus lebih dari nol")
	ErrInvalidMode          = errors.New("mode pembayaran tidak dikenal")
	ErrStudentNotFound      = errors.New("siswa tidak ditemukan")
	ErrNoOutstandingBalance = errors.New("tidak ada tunggakan untuk siswa ini")
)

type CollectInput struct {
	StudentID   uuid.UUID
	Amount      decimal.Decimal
	Mode        model.PaymentMode
	CollectedBy uuid.UUID
	Note        *string
	PaymentDate time.Time // zero = now
}

// AllocationRef: jejak satu invoice yang tersentuh waterfall.
type AllocationRef struct {
	InvoiceID     uuid.UUID              `json:"invoice_id"`
	TransactionID string                 `json:"transaction_id"`
	Applied       decimal.Decimal        `json:"applied"`
	InvoiceStatus invmodel.InvoiceStatus `json:"invoice_status"`
	Outstanding   decimal.Decimal        `json:"outstanding"`
}

type CollectResult struct {
	StudentID uuid.UUID       `json:"student_id"`
	Amount    decimal.Decimal `json:"amount"`
	Allocated decimal.Decimal `json:"allocated"`
	Remaining decimal.Decimal `json:"remaining"`

	Allocations []AllocationRef `json:"allocations"`
}

// Collect menjalankan alokasi oldest-due-first dalam SATU transaksi.
// Invoice outstanding dikunci FOR UPDATE urut jatuh tempo supaya dua kasir
// yang menyetor untuk siswa yang sama tidak saling menimpa paid_amount.
// Surplus tidak dibuang: dikembalikan sebagai remaining untuk dicatat kasir.
func Collect(db *gorm.DB, in CollectInput) (*CollectResult, error) {
	// Validasi murah dulu, sebelum menyentuh DB
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if !model.ValidPaymentMode(string(in.Mode)) {
		return nil, ErrInvalidMode
	}
	if in.PaymentDate.IsZero() {
		in.PaymentDate = time.Now()
	}

	result := &CollectResult{
		StudentID:   in.StudentID,
		Amount:      in.Amount,
		Allocated:   decimal.Zero,
		Remaining:   in.Amount,
		Allocations: []AllocationRef{},
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&studentmodel.Student{}).
			Where("student_id = ?", in.StudentID).
			Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrStudentNotFound
		}

		var invoices []invmodel.Invoice
		if err := helper.LockForUpdate(tx).
			Where("invoice_student_id = ?", in.StudentID).
			Where("invoice_status IN ?", invmodel.OutstandingStatuses).
			Order("invoice_due_date ASC, invoice_created_at ASC").
			Find(&invoices).Error; err != nil {
			return err
		}
		if len(invoices) == 0 {
			return ErrNoOutstandingBalance
		}

		for i := range invoices {
			if result.Remaining.LessThanOrEqual(decimal.Zero) {
				break
			}
			inv := &invoices[i]

			applied := inv.Outstanding()
			if applied.GreaterThan(result.Remaining) {
				applied = result.Remaining
			}
			if applied.LessThanOrEqual(decimal.Zero) {
				continue
			}

			payment := model.Payment{
				PaymentInvoiceID:     inv.InvoiceID,
				PaymentTransactionID: model.NewTransactionID(),
				PaymentAmount:        applied,
				PaymentMode:          in.Mode,
				PaymentDate:          in.PaymentDate,
				PaymentCollectedBy:   in.CollectedBy,
				PaymentNote:          in.Note,
				PaymentMeta: datatypes.JSONMap{
					"student_id":      in.StudentID.String(),
					"tendered_amount": in.Amount.String(),
				},
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}

			inv.InvoicePaidAmount = inv.InvoicePaidAmount.Add(applied)
			inv.RecomputeStatus()
			if err := tx.Model(&invmodel.Invoice{}).
				Where("invoice_id = ?", inv.InvoiceID).
				Updates(map[string]any{
					"invoice_paid_amount": inv.InvoicePaidAmount,
					"invoice_status":      inv.InvoiceStatus,
				}).Error; err != nil {
				return err
			}

			result.Allocated = result.Allocated.Add(applied)
			result.Remaining = result.Remaining.Sub(applied)
			result.Allocations = append(result.Allocations, AllocationRef{
				InvoiceID:     inv.InvoiceID,
				TransactionID: payment.PaymentTransactionID,
				Applied:       applied,
				InvoiceStatus: inv.InvoiceStatus,
				Outstanding:   inv.Outstanding(),
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
