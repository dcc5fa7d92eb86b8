package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "sekolahku_backend/internals/features/finance/fees/model"
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
	require.NoError(t, db.AutoMigrate(&model.FeeStructure{}))
	return db
}

func dp(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func seedStructure(t *testing.T, db *gorm.DB, courseID, batchID, sessionID uuid.UUID, active bool) *model.FeeStructure {
	t.Helper()
	fs := &model.FeeStructure{
		FeeStructureCourseID:       courseID,
		FeeStructureBatchID:        batchID,
		FeeStructureSessionID:      sessionID,
		FeeStructureTuitionAmount:  dp(1500),
		FeeStructureExamAmount:     dp(200),
		FeeStructureDurationMonths: 12,
		FeeStructureIsActive:       active,
	}
	require.NoError(t, db.Create(fs).Error)
	return fs
}

func TestResolveFeeStructure(t *testing.T) {
	db := newTestDB(t)

	courseID, batchID, sessionID := uuid.New(), uuid.New(), uuid.New()
	want := seedStructure(t, db, courseID, batchID, sessionID, true)
	// struktur kohort lain tidak boleh ikut terambil
	seedStructure(t, db, uuid.New(), batchID, sessionID, true)

	got, err := ResolveFeeStructure(db, courseID, batchID, sessionID)
	require.NoError(t, err)
	require.Equal(t, want.FeeStructureID, got.FeeStructureID)
}

func TestResolveFeeStructure_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := ResolveFeeStructure(db, uuid.New(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, ErrFeeStructureNotFound)
}

// Flag is_active harus ikut tertulis apa adanya saat create — struktur yang
// dibuat nonaktif tidak boleh diam-diam tersimpan aktif.
func TestCreateInactiveStructure_PersistsInactive(t *testing.T) {
	db := newTestDB(t)

	fs := seedStructure(t, db, uuid.New(), uuid.New(), uuid.New(), false)

	var got model.FeeStructure
	require.NoError(t, db.Take(&got, "fee_structure_id = ?", fs.FeeStructureID).Error)
	require.False(t, got.FeeStructureIsActive)
}

func TestResolveFeeStructure_IgnoresInactive(t *testing.T) {
	db := newTestDB(t)

	courseID, batchID, sessionID := uuid.New(), uuid.New(), uuid.New()
	seedStructure(t, db, courseID, batchID, sessionID, false)

	_, err := ResolveFeeStructure(db, courseID, batchID, sessionID)
	require.ErrorIs(t, err, ErrFeeStructureNotFound)
}

func TestComponents_NormalizesAndSkipsZero(t *testing.T) {
	fs := model.FeeStructure{
		FeeStructureTuitionAmount: dp(1500),
		FeeStructureExamAmount:    dp(0),
		// admission & registration nil
		FeeStructureHostelApplicable: true,
		FeeStructureHostelAmount:     dp(800),
	}

	require.True(t, fs.AdmissionAmount().IsZero())
	require.True(t, fs.ExamAmount().IsZero())

	comps := fs.Components()
	require.Len(t, comps, 2)
	require.Equal(t, "Tuition Fee", comps[0].Description)
	require.Equal(t, "Hostel Fee", comps[1].Description)
}
