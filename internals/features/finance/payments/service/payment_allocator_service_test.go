package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	studentmodel "sekolahku_backend/internals/features/academics/students/model"
	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
	model "sekolahku_backend/internals/features/finance/payments/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&studentmodel.Student{},
		&invmodel.Invoice{},
		&invmodel.InvoiceItem{},
		&model.Payment{},
	))
	return db
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func seedStudent(t *testing.T, db *gorm.DB) *studentmodel.Student {
	t.Helper()
	s := &studentmodel.Student{
		StudentName:      "Siswa Uji",
		StudentCourseID:  uuid.New(),
		StudentBatchID:   uuid.New(),
		StudentSessionID: uuid.New(),
		StudentIsActive:  true,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func seedInvoice(t *testing.T, db *gorm.DB, studentID uuid.UUID, total, paid int64, due time.Time) *invmodel.Invoice {
	t.Helper()
	inv := &invmodel.Invoice{
		InvoiceStudentID:   studentID,
		InvoiceIssueDate:   due.AddDate(0, 0, -15),
		InvoiceDueDate:     due,
		InvoiceTotalAmount: d(total),
		InvoicePaidAmount:  d(paid),
	}
	inv.RecomputeStatus()
	require.NoError(t, db.Create(inv).Error)
	return inv
}

func reload(t *testing.T, db *gorm.DB, id uuid.UUID) *invmodel.Invoice {
	t.Helper()
	var inv invmodel.Invoice
	require.NoError(t, db.Take(&inv, "invoice_id = ?", id).Error)
	return &inv
}

func collect(t *testing.T, db *gorm.DB, studentID uuid.UUID, amount int64) (*CollectResult, error) {
	t.Helper()
	return Collect(db, CollectInput{
		StudentID:   studentID,
		Amount:      d(amount),
		Mode:        model.PaymentModeCash,
		CollectedBy: uuid.New(),
	})
}

func TestCollect_OldestDueFirst(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)

	now := time.Now()
	older := seedInvoice(t, db, student.StudentID, 500, 0, now.AddDate(0, -2, 0))
	newer := seedInvoice(t, db, student.StudentID, 300, 0, now.AddDate(0, -1, 0))

	result, err := collect(t, db, student.StudentID, 600)
	require.NoError(t, err)

	require.True(t, result.Allocated.Equal(d(600)))
	require.True(t, result.Remaining.IsZero())
	require.Len(t, result.Allocations, 2)
	require.Equal(t, older.InvoiceID, result.Allocations[0].InvoiceID)
	require.True(t, result.Allocations[0].Applied.Equal(d(500)))
	require.Equal(t, newer.InvoiceID, result.Allocations[1].InvoiceID)
	require.True(t, result.Allocations[1].Applied.Equal(d(100)))

	first := reload(t, db, older.InvoiceID)
	require.Equal(t, invmodel.InvoiceStatusPaid, first.InvoiceStatus)
	require.True(t, first.InvoicePaidAmount.Equal(d(500)))

	second := reload(t, db, newer.InvoiceID)
	require.Equal(t, invmodel.InvoiceStatusPartial, second.InvoiceStatus)
	require.True(t, second.InvoicePaidAmount.Equal(d(100)))

	// satu baris payment per invoice tersentuh, transaction id unik
	var payments []model.Payment
	require.NoError(t, db.Find(&payments).Error)
	require.Len(t, payments, 2)
	require.NotEqual(t, payments[0].PaymentTransactionID, payments[1].PaymentTransactionID)
}

func TestCollect_OverpaymentReturnsRemaining(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	inv := seedInvoice(t, db, student.StudentID, 200, 0, time.Now())

	result, err := collect(t, db, student.StudentID, 250)
	require.NoError(t, err)

	require.True(t, result.Allocated.Equal(d(200)))
	require.True(t, result.Remaining.Equal(d(50)), "surplus dikembalikan, tidak dibuang")

	got := reload(t, db, inv.InvoiceID)
	require.True(t, got.InvoicePaidAmount.Equal(got.InvoiceTotalAmount), "paid tidak pernah melewati total")
	require.Equal(t, invmodel.InvoiceStatusPaid, got.InvoiceStatus)
}

func TestCollect_ExactExhaustion(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	seedInvoice(t, db, student.StudentID, 150, 50, time.Now())

	result, err := collect(t, db, student.StudentID, 100)
	require.NoError(t, err)
	require.True(t, result.Remaining.IsZero())
	require.Len(t, result.Allocations, 1)
}

func TestCollect_NoOutstandingWritesNothing(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	seedInvoice(t, db, student.StudentID, 200, 200, time.Now()) // sudah lunas

	_, err := collect(t, db, student.StudentID, 100)
	require.ErrorIs(t, err, ErrNoOutstandingBalance)

	var count int64
	require.NoError(t, db.Model(&model.Payment{}).Count(&count).Error)
	require.Zero(t, count, "gagal alokasi tidak boleh meninggalkan baris payment")
}

func TestCollect_SkipsWaivedInvoices(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)

	waived := &invmodel.Invoice{
		InvoiceStudentID:      student.StudentID,
		InvoiceIssueDate:      time.Now().AddDate(0, 0, -15),
		InvoiceDueDate:        time.Now(),
		InvoiceTotalAmount:    d(0),
		InvoicePaidAmount:     d(0),
		InvoiceDiscountAmount: d(300),
	}
	waived.RecomputeStatus()
	require.NoError(t, db.Create(waived).Error)
	require.Equal(t, invmodel.InvoiceStatusWaived, waived.InvoiceStatus)

	_, err := collect(t, db, student.StudentID, 100)
	require.ErrorIs(t, err, ErrNoOutstandingBalance)
}

func TestCollect_InvalidInput(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)

	_, err := collect(t, db, student.StudentID, 0)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Collect(db, CollectInput{
		StudentID:   student.StudentID,
		Amount:      d(100),
		Mode:        "cek",
		CollectedBy: uuid.New(),
	})
	require.ErrorIs(t, err, ErrInvalidMode)

	_, err = collect(t, db, uuid.New(), 100)
	require.ErrorIs(t, err, ErrStudentNotFound)
}
