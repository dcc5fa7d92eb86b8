package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
	paymentmodel "sekolahku_backend/internals/features/finance/payments/model"
)

func seedInvoice(t *testing.T, db *gorm.DB, studentID uuid.UUID, total, paid, discount int64, due time.Time) *invmodel.Invoice {
	t.Helper()
	inv := &invmodel.Invoice{
		InvoiceStudentID:      studentID,
		InvoiceIssueDate:      due.AddDate(0, 0, -15),
		InvoiceDueDate:        due,
		InvoiceTotalAmount:    d(total),
		InvoicePaidAmount:     d(paid),
		InvoiceDiscountAmount: d(discount),
	}
	inv.RecomputeStatus()
	require.NoError(t, db.Create(inv).Error)
	return inv
}

func seedPayment(t *testing.T, db *gorm.DB, invoiceID uuid.UUID, amount int64, paidAt time.Time) *paymentmodel.Payment {
	t.Helper()
	p := &paymentmodel.Payment{
		PaymentInvoiceID:   invoiceID,
		PaymentAmount:      d(amount),
		PaymentMode:        paymentmodel.PaymentModeCash,
		PaymentDate:        paidAt,
		PaymentCollectedBy: uuid.New(),
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestBuildStudentLedger(t *testing.T) {
	db := newTestDB(t)
	co := newCohort()
	student := seedStudent(t, db, co, true)

	now := time.Now()
	older := seedInvoice(t, db, student.StudentID, 500, 500, 0, now.AddDate(0, -1, 0))
	newer := seedInvoice(t, db, student.StudentID, 300, 100, 0, now)
	seedPayment(t, db, older.InvoiceID, 500, now.AddDate(0, 0, -20))
	latest := seedPayment(t, db, newer.InvoiceID, 100, now.AddDate(0, 0, -1))

	// invoice siswa lain tidak boleh bocor ke ledger
	other := seedStudent(t, db, newCohort(), true)
	seedInvoice(t, db, other.StudentID, 999, 0, 0, now)

	ledger, err := BuildStudentLedger(db, student.StudentID)
	require.NoError(t, err)

	require.True(t, ledger.TotalFees.Equal(d(800)))
	require.True(t, ledger.TotalPaid.Equal(d(600)))
	require.True(t, ledger.Balance.Equal(d(200)))

	require.Len(t, ledger.Invoices, 2)
	require.Equal(t, older.InvoiceID, ledger.Invoices[0].InvoiceID, "urut jatuh tempo")

	require.Len(t, ledger.Payments, 2)
	require.Equal(t, latest.PaymentID, ledger.Payments[0].PaymentID, "terbaru dulu")
}

func TestBuildStudentLedger_StudentNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := BuildStudentLedger(db, uuid.New())
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestComputeRefundableBalance(t *testing.T) {
	db := newTestDB(t)
	co := newCohort()
	student := seedStudent(t, db, co, true)

	now := time.Now()
	inv := seedInvoice(t, db, student.StudentID, 200, 200, 0, now)
	seedPayment(t, db, inv.InvoiceID, 200, now)
	seedPayment(t, db, inv.InvoiceID, 50, now) // setoran lebih

	rb, err := ComputeRefundableBalance(db, student.StudentID)
	require.NoError(t, err)
	require.True(t, rb.TotalPayments.Equal(d(250)))
	require.True(t, rb.TotalInvoiced.Equal(d(200)))
	require.True(t, rb.RefundableBalance.Equal(d(50)))
}

func TestComputeRefundableBalance_NegativeVisible(t *testing.T) {
	db := newTestDB(t)
	co := newCohort()
	student := seedStudent(t, db, co, true)

	seedInvoice(t, db, student.StudentID, 300, 0, 0, time.Now())

	rb, err := ComputeRefundableBalance(db, student.StudentID)
	require.NoError(t, err)
	require.True(t, rb.RefundableBalance.Equal(d(-300)), "negatif tidak di-clamp")
}
