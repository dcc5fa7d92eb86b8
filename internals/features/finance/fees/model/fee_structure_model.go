// file: internals/features/finance/fees/model/fee_structure_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* =========================================================
   MODEL — fee_structures
   Template harga untuk satu kohort (course, batch, session).
   Maksimal satu struktur aktif per tuple (partial unique index
   di migrasi SQL; tag index di sini hanya dokumentasi).
========================================================= */

type FeeStructure struct {
	// PK
	FeeStructureID uuid.UUID `gorm:"column:fee_structure_id;type:uuid;primaryKey" json:"fee_structure_id"`

	// Kohort
	FeeStructureCourseID  uuid.UUID `gorm:"column:fee_structure_course_id;type:uuid;not null;index:idx_fee_structures_cohort,priority:1" json:"fee_structure_course_id"`
	FeeStructureBatchID   uuid.UUID `gorm:"column:fee_structure_batch_id;type:uuid;not null;index:idx_fee_structures_cohort,priority:2" json:"fee_structure_batch_id"`
	FeeStructureSessionID uuid.UUID `gorm:"column:fee_structure_session_id;type:uuid;not null;index:idx_fee_structures_cohort,priority:3" json:"fee_structure_session_id"`

	// Komponen biaya — numeric(12,2), NULL dinormalisasi nol oleh resolver
	FeeStructureAdmissionAmount    *decimal.Decimal `gorm:"column:fee_structure_admission_amount;type:numeric(12,2)" json:"fee_structure_admission_amount,omitempty"`
	FeeStructureRegistrationAmount *decimal.Decimal `gorm:"column:fee_structure_registration_amount;type:numeric(12,2)" json:"fee_structure_registration_amount,omitempty"`
	FeeStructureTuitionAmount      *decimal.Decimal `gorm:"column:fee_structure_tuition_amount;type:numeric(12,2)" json:"fee_structure_tuition_amount,omitempty"`
	FeeStructureExamAmount         *decimal.Decimal `gorm:"column:fee_structure_exam_amount;type:numeric(12,2)" json:"fee_structure_exam_amount,omitempty"`

	// Add-on opsional: flag + nominal flat (nominal rute dari modul transport menang kalau ada assignment)
	FeeStructureTransportApplicable bool             `gorm:"column:fee_structure_transport_applicable;not null" json:"fee_structure_transport_applicable"`
	FeeStructureTransportAmount     *decimal.Decimal `gorm:"column:fee_structure_transport_amount;type:numeric(12,2)" json:"fee_structure_transport_amount,omitempty"`
	FeeStructureHostelApplicable    bool             `gorm:"column:fee_structure_hostel_applicable;not null" json:"fee_structure_hostel_applicable"`
	FeeStructureHostelAmount        *decimal.Decimal `gorm:"column:fee_structure_hostel_amount;type:numeric(12,2)" json:"fee_structure_hostel_amount,omitempty"`

	FeeStructureDurationMonths int  `gorm:"column:fee_structure_duration_months;not null;default:12;check:fee_structure_duration_months > 0" json:"fee_structure_duration_months"`
	FeeStructureIsActive       bool `gorm:"column:fee_structure_is_active;not null;index" json:"fee_structure_is_active"`

	// Timestamps
	FeeStructureCreatedAt time.Time      `gorm:"column:fee_structure_created_at;not null;autoCreateTime" json:"fee_structure_created_at"`
	FeeStructureUpdatedAt time.Time      `gorm:"column:fee_structure_updated_at;not null;autoUpdateTime" json:"fee_structure_updated_at"`
	FeeStructureDeletedAt gorm.DeletedAt `gorm:"column:fee_structure_deleted_at;index" json:"-"`
}

func (FeeStructure) TableName() string { return "fee_structures" }

func (m *FeeStructure) BeforeCreate(tx *gorm.DB) error {
	if m.FeeStructureID == uuid.Nil {
		m.FeeStructureID = uuid.New()
	}
	return nil
}

/* =========================================================
   Komponen — dipakai Invoice Generator & ledger breakdown
========================================================= */

type FeeComponent struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// amt normalisasi NULL → 0 (kontrak resolver: tidak pernah nil)
func amt(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}

func (m *FeeStructure) AdmissionAmount() decimal.Decimal    { return amt(m.FeeStructureAdmissionAmount) }
func (m *FeeStructure) RegistrationAmount() decimal.Decimal { return amt(m.FeeStructureRegistrationAmount) }
func (m *FeeStructure) TuitionAmount() decimal.Decimal      { return amt(m.FeeStructureTuitionAmount) }
func (m *FeeStructure) ExamAmount() decimal.Decimal         { return amt(m.FeeStructureExamAmount) }
func (m *FeeStructure) TransportAmount() decimal.Decimal    { return amt(m.FeeStructureTransportAmount) }
func (m *FeeStructure) HostelAmount() decimal.Decimal       { return amt(m.FeeStructureHostelAmount) }

// Components mengembalikan komponen bernilai > 0, tanpa add-on transport
// (transport diputuskan generator karena bergantung assignment siswa).
func (m *FeeStructure) Components() []FeeComponent {
	candidates := []FeeComponent{
		{Description: "Admission Fee", Amount: m.AdmissionAmount()},
		{Description: "Registration Fee", Amount: m.RegistrationAmount()},
		{Description: "Tuition Fee", Amount: m.TuitionAmount()},
		{Description: "Exam Fee", Amount: m.ExamAmount()},
	}
	if m.FeeStructureHostelApplicable {
		candidates = append(candidates, FeeComponent{Description: "Hostel Fee", Amount: m.HostelAmount()})
	}

	out := make([]FeeComponent, 0, len(candidates))
	for _, comp := range candidates {
		if comp.Amount.GreaterThan(decimal.Zero) {
			out = append(out, comp)
		}
	}
	return out
}
