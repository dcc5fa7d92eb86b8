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
	feemodel "sekolahku_backend/internals/features/finance/fees/model"
	feesvc "sekolahku_backend/internals/features/finance/fees/service"
	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
	paymentmodel "sekolahku_backend/internals/features/finance/payments/model"
	transportmodel "sekolahku_backend/internals/features/transport/model"
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
		&feemodel.FeeStructure{},
		&transportmodel.TransportRoute{},
		&transportmodel.TransportAssignment{},
		&invmodel.Invoice{},
		&invmodel.InvoiceItem{},
		&paymentmodel.Payment{},
	))
	return db
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func dp(v int64) *decimal.Decimal {
	dec := decimal.NewFromInt(v)
	return &dec
}

type cohort struct {
	courseID  uuid.UUID
	batchID   uuid.UUID
	sessionID uuid.UUID
}

func newCohort() cohort {
	return cohort{courseID: uuid.New(), batchID: uuid.New(), sessionID: uuid.New()}
}

func seedStudent(t *testing.T, db *gorm.DB, co cohort, active bool) *studentmodel.Student {
	t.Helper()
	number := "S-" + uuid.New().String()[:8]
	s := &studentmodel.Student{
		StudentName:      "Siswa Uji",
		StudentNumber:    &number,
		StudentCourseID:  co.courseID,
		StudentBatchID:   co.batchID,
		StudentSessionID: co.sessionID,
		StudentIsActive:  active,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func seedStructure(t *testing.T, db *gorm.DB, co cohort, mut func(*feemodel.FeeStructure)) *feemodel.FeeStructure {
	t.Helper()
	fs := &feemodel.FeeStructure{
		FeeStructureCourseID:       co.courseID,
		FeeStructureBatchID:        co.batchID,
		FeeStructureSessionID:      co.sessionID,
		FeeStructureTuitionAmount:  dp(1500),
		FeeStructureExamAmount:     dp(200),
		FeeStructureDurationMonths: 12,
		FeeStructureIsActive:       true,
	}
	if mut != nil {
		mut(fs)
	}
	require.NoError(t, db.Create(fs).Error)
	return fs
}

func itemSum(items []invmodel.InvoiceItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.InvoiceItemAmount)
	}
	return sum
}

func TestGenerate_SingleStudent(t *testing.T) {
	db := newTestDB(t)
	co := newCohort()
	student := seedStudent(t, db, co, true)
	seedStructure(t, db, co, nil)

	inv, items, err := Generate(db, student.StudentID, time.Time{}, 15)
	require.NoError(t, err)

	require.Len(t, items, 2)
	require.True(t, inv.InvoiceTotalAmount.Equal(d(1700)))
	require.True(t, inv.InvoicePaidAmount.IsZero())
	require.Equal(t, invmodel.InvoiceStatusPending, inv.InvoiceStatus)

	// Invariant round-trip: Σ items == total + discount
	require.True(t, itemSum(items).Equal(inv.InvoiceTotalAmount.Add(inv.InvoiceDiscountAmount)))

	// due_date default = issue + grace
	require.Equal(t, inv.InvoiceIssueDate.AddDate(0, 0, 15), inv.InvoiceDueDate)
}

func TestGenerate_TransportRouteFeeWins(t *testing.T) {
	db := newTestDB(t)
	co := newCohort()
	student := seedStudent(t, db, co, true)
	seedStructure(t, db, co, func(fs *feemodel.FeeStructure) {
		fs.FeeStructureTransportApplicable = true
		fs.FeeStructureTransportAmount = dp(100) // flat, harusnya kalah oleh rute
	})

	route := &transportmodel.TransportRoute{
		TransportRouteName:       "Rute A",
		TransportRouteMonthlyFee: d(250),
	}
	require.NoError(t, db.Create(route).Error)
	require.NoError(t, db.Create(&transportmodel.TransportAssignment{
		TransportAssignmentStudentID: student.StudentID,
		TransportAssignmentRouteID:   route.TransportRouteID,
		TransportAssignmentIsActive:  true,
	}).Error)

	inv, items, err := Generate(db, student.StudentID, time.Time{}, 15)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.True(t, inv.InvoiceTotalAmount.Equal(d(1950)), "1500 + 200 + 250 rute")
}

func TestGenerate_TransportFlatFallback(t *testing.T) {
	db := newTestDB(t)
	co := newCohort()
	student := seedStudent(t, db, co, true)
	seedStructure(t, db, co, func(fs *feemodel.FeeStructure) {
		fs.FeeStructureTransportApplicable = true
		fs.FeeStructureTransportAmount = dp(100)
	})

	inv, _, err := Generate(db, student.StudentID, time.Time{}, 15)
	require.NoError(t, err)
	require.True(t, inv.InvoiceTotalAmount.Equal(d(1800)))
}

func TestGenerate_InactiveStudent(t *testing.T) {
	db := newTestDB(t)
	co := newCohort()
	student := seedStudent(t, db, co, false)
	seedStructure(t, db, co, nil)

	_, _, err := Generate(db, student.StudentID, time.Time{}, 15)
	require.ErrorIs(t, err, ErrStudentNotFound)

	// flag nonaktif harus benar-benar tersimpan, bukan tertimpa default kolom
	var got studentmodel.Student
	require.NoError(t, db.Take(&got, "student_id = ?", student.StudentID).Error)
	require.False(t, got.StudentIsActive)
}

func TestTodayIn_FollowsLocationCalendar(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	got := todayIn(loc)

	now := time.Now().In(loc)
	require.Equal(t, now.Year(), got.Year())
	require.Equal(t, now.Month(), got.Month())
	require.Equal(t, now.Day(), got.Day(), "tanggal mengikuti kalender zona, bukan batas hari UTC")

	h, m, s := got.Clock()
	require.Zero(t, h)
	require.Zero(t, m)
	require.Zero(t, s)
	require.Equal(t, loc, got.Location())
}

func TestGenerate_NoFeeStructure(t *testing.T) {
	db := newTestDB(t)
	co := newCohort()
	student := seedStudent(t, db, co, true)

	_, _, err := Generate(db, student.StudentID, time.Time{}, 15)
	require.ErrorIs(t, err, feesvc.ErrFeeStructureNotFound)

	// gagal = tidak ada baris tertulis
	var count int64
	require.NoError(t, db.Model(&invmodel.Invoice{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestGenerate_NoChargeableComponent(t *testing.T) {
	db := newTestDB(t)
	co := newCohort()
	student := seedStudent(t, db, co, true)
	seedStructure(t, db, co, func(fs *feemodel.FeeStructure) {
		fs.FeeStructureTuitionAmount = dp(0)
		fs.FeeStructureExamAmount = nil
	})

	_, _, err := Generate(db, student.StudentID, time.Time{}, 15)
	require.ErrorIs(t, err, ErrNoChargeableComponent)
}

func TestGenerate_DueDateBeforeIssue(t *testing.T) {
	db := newTestDB(t)
	co := newCohort()
	student := seedStudent(t, db, co, true)
	seedStructure(t, db, co, nil)

	_, _, err := Generate(db, student.StudentID, time.Now().AddDate(0, 0, -3), 15)
	require.ErrorIs(t, err, ErrDueDateBeforeIssue)
}

func TestBulkGenerate(t *testing.T) {
	db := newTestDB(t)
	co := newCohort()
	seedStructure(t, db, co, nil)
	seedStudent(t, db, co, true)
	seedStudent(t, db, co, true)
	seedStudent(t, db, co, false) // nonaktif, dilewati

	count, err := BulkGenerate(db, co.courseID, co.batchID, time.Time{}, 15)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	var invoices int64
	require.NoError(t, db.Model(&invmodel.Invoice{}).Count(&invoices).Error)
	require.EqualValues(t, 2, invoices)
}

func TestBulkGenerate_AllOrNothing(t *testing.T) {
	db := newTestDB(t)
	co := newCohort()
	// struktur ada tapi tanpa komponen bernilai → setiap siswa gagal
	seedStructure(t, db, co, func(fs *feemodel.FeeStructure) {
		fs.FeeStructureTuitionAmount = nil
		fs.FeeStructureExamAmount = nil
	})
	seedStudent(t, db, co, true)
	seedStudent(t, db, co, true)

	_, err := BulkGenerate(db, co.courseID, co.batchID, time.Time{}, 15)
	require.ErrorIs(t, err, ErrNoChargeableComponent)

	var invoices int64
	require.NoError(t, db.Model(&invmodel.Invoice{}).Count(&invoices).Error)
	require.Zero(t, invoices)
}

func TestBulkGenerate_NoActiveStudents(t *testing.T) {
	db := newTestDB(t)
	co := newCohort()
	seedStructure(t, db, co, nil)

	_, err := BulkGenerate(db, co.courseID, co.batchID, time.Time{}, 15)
	require.ErrorIs(t, err, ErrNoActiveStudents)
}
