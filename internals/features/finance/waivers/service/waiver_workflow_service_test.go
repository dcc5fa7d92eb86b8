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
	model "sekolahku_backend/internals/features/finance/waivers/model"
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
		&model.WaiverRequest{},
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

func seedPendingWaiver(t *testing.T, db *gorm.DB, studentID uuid.UUID, amount int64) *model.WaiverRequest {
	t.Helper()
	req, err := RequestWaiver(db, studentID, "tuition", d(amount), "kesulitan ekonomi")
	require.NoError(t, err)
	return req
}

func reloadInvoice(t *testing.T, db *gorm.DB, id uuid.UUID) *invmodel.Invoice {
	t.Helper()
	var inv invmodel.Invoice
	require.NoError(t, db.Take(&inv, "invoice_id = ?", id).Error)
	return &inv
}

func TestRequestWaiver(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)

	req := seedPendingWaiver(t, db, student.StudentID, 300)
	require.Equal(t, model.WaiverStatusPending, req.WaiverRequestStatus)
	require.Nil(t, req.WaiverRequestProcessedBy)

	_, err := RequestWaiver(db, student.StudentID, "tuition", d(0), "x")
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = RequestWaiver(db, uuid.New(), "tuition", d(100), "x")
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestProcessWaiver_ApproveAppliesToOldestOpenInvoice(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)

	now := time.Now()
	older := seedInvoice(t, db, student.StudentID, 500, 0, now.AddDate(0, -2, 0))
	newer := seedInvoice(t, db, student.StudentID, 300, 0, now)
	req := seedPendingWaiver(t, db, student.StudentID, 200)

	staff := uuid.New()
	got, err := ProcessWaiver(db, req.WaiverRequestID, DecisionApprove, decimal.Zero, staff)
	require.NoError(t, err)

	require.Equal(t, model.WaiverStatusApproved, got.WaiverRequestStatus)
	require.Equal(t, &staff, got.WaiverRequestProcessedBy)
	require.NotNil(t, got.WaiverRequestProcessedDate)
	require.Equal(t, older.InvoiceID, *got.WaiverRequestAppliedInvoiceID)
	require.True(t, got.WaiverRequestAppliedAmount.Equal(d(200)))

	adjusted := reloadInvoice(t, db, older.InvoiceID)
	require.True(t, adjusted.InvoiceTotalAmount.Equal(d(300)))
	require.True(t, adjusted.InvoiceDiscountAmount.Equal(d(200)))
	require.Equal(t, invmodel.InvoiceStatusPending, adjusted.InvoiceStatus)

	untouched := reloadInvoice(t, db, newer.InvoiceID)
	require.True(t, untouched.InvoiceTotalAmount.Equal(d(300)), "hanya invoice tertua yang disesuaikan")
}

func TestProcessWaiver_FullWaiverMarksWaived(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	inv := seedInvoice(t, db, student.StudentID, 300, 0, time.Now())
	req := seedPendingWaiver(t, db, student.StudentID, 300)

	_, err := ProcessWaiver(db, req.WaiverRequestID, DecisionApprove, decimal.Zero, uuid.New())
	require.NoError(t, err)

	got := reloadInvoice(t, db, inv.InvoiceID)
	require.True(t, got.InvoiceTotalAmount.IsZero())
	require.Equal(t, invmodel.InvoiceStatusWaived, got.InvoiceStatus)
}

func TestProcessWaiver_ClampNeverBelowPaid(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	inv := seedInvoice(t, db, student.StudentID, 500, 200, time.Now())
	req := seedPendingWaiver(t, db, student.StudentID, 400) // outstanding cuma 300

	got, err := ProcessWaiver(db, req.WaiverRequestID, DecisionApprove, decimal.Zero, uuid.New())
	require.NoError(t, err)
	require.True(t, got.WaiverRequestAppliedAmount.Equal(d(300)), "clamp ke outstanding")

	adjusted := reloadInvoice(t, db, inv.InvoiceID)
	require.True(t, adjusted.InvoiceTotalAmount.Equal(d(200)), "total berhenti di paid")
	require.Equal(t, invmodel.InvoiceStatusPaid, adjusted.InvoiceStatus)
}

func TestProcessWaiver_ApproveWithoutOpenInvoice(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	req := seedPendingWaiver(t, db, student.StudentID, 100)

	got, err := ProcessWaiver(db, req.WaiverRequestID, DecisionApprove, decimal.Zero, uuid.New())
	require.NoError(t, err)
	require.Equal(t, model.WaiverStatusApproved, got.WaiverRequestStatus, "tetap tercatat untuk audit")
	require.Nil(t, got.WaiverRequestAppliedInvoiceID)
}

func TestProcessWaiver_Reject(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	inv := seedInvoice(t, db, student.StudentID, 300, 0, time.Now())
	req := seedPendingWaiver(t, db, student.StudentID, 300)

	got, err := ProcessWaiver(db, req.WaiverRequestID, DecisionReject, decimal.Zero, uuid.New())
	require.NoError(t, err)
	require.Equal(t, model.WaiverStatusRejected, got.WaiverRequestStatus)

	untouched := reloadInvoice(t, db, inv.InvoiceID)
	require.True(t, untouched.InvoiceTotalAmount.Equal(d(300)), "reject tidak menyentuh invoice")
}

func TestProcessWaiver_AlreadyProcessed(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	seedInvoice(t, db, student.StudentID, 300, 0, time.Now())
	req := seedPendingWaiver(t, db, student.StudentID, 100)

	_, err := ProcessWaiver(db, req.WaiverRequestID, DecisionApprove, decimal.Zero, uuid.New())
	require.NoError(t, err)

	// keputusan kedua atas pengajuan yang sama harus ditolak
	_, err = ProcessWaiver(db, req.WaiverRequestID, DecisionApprove, decimal.Zero, uuid.New())
	require.ErrorIs(t, err, ErrAlreadyProcessed)

	_, err = ProcessWaiver(db, req.WaiverRequestID, DecisionReject, decimal.Zero, uuid.New())
	require.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestProcessWaiver_NotFoundAndBadInput(t *testing.T) {
	db := newTestDB(t)

	_, err := ProcessWaiver(db, uuid.New(), DecisionApprove, decimal.Zero, uuid.New())
	require.ErrorIs(t, err, ErrWaiverNotFound)

	_, err = ProcessWaiver(db, uuid.New(), "tunda", decimal.Zero, uuid.New())
	require.ErrorIs(t, err, ErrInvalidDecision)

	_, err = ProcessWaiver(db, uuid.New(), DecisionApprove, d(-5), uuid.New())
	require.ErrorIs(t, err, ErrInvalidAmount)
}
