// file: internals/features/transport/model/transport_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* =========================================================
   MODEL — transport_routes & transport_assignments
   Modul transport penuh (armada, jadwal, dsb) di luar scope;
   ledger hanya butuh biaya bulanan rute siswa yang aktif.
========================================================= */

type TransportRoute struct {
	TransportRouteID         uuid.UUID       `gorm:"column:transport_route_id;type:uuid;primaryKey" json:"transport_route_id"`
	TransportRouteName       string          `gorm:"column:transport_route_name;type:varchar(120);not null" json:"transport_route_name"`
	TransportRouteMonthlyFee decimal.Decimal `gorm:"column:transport_route_monthly_fee;type:numeric(12,2);not null" json:"transport_route_monthly_fee"`

	TransportRouteCreatedAt time.Time      `gorm:"column:transport_route_created_at;not null;autoCreateTime" json:"transport_route_created_at"`
	TransportRouteUpdatedAt time.Time      `gorm:"column:transport_route_updated_at;not null;autoUpdateTime" json:"transport_route_updated_at"`
	TransportRouteDeletedAt gorm.DeletedAt `gorm:"column:transport_route_deleted_at;index" json:"-"`
}

func (TransportRoute) TableName() string { return "transport_routes" }

func (m *TransportRoute) BeforeCreate(tx *gorm.DB) error {
	if m.TransportRouteID == uuid.Nil {
		m.TransportRouteID = uuid.New()
	}
	return nil
}

type TransportAssignment struct {
	TransportAssignmentID        uuid.UUID `gorm:"column:transport_assignment_id;type:uuid;primaryKey" json:"transport_assignment_id"`
	TransportAssignmentStudentID uuid.UUID `gorm:"column:transport_assignment_student_id;type:uuid;not null;index" json:"transport_assignment_student_id"`
	TransportAssignmentRouteID   uuid.UUID `gorm:"column:transport_assignment_route_id;type:uuid;not null;index" json:"transport_assignment_route_id"`
	TransportAssignmentIsActive  bool      `gorm:"column:transport_assignment_is_active;not null;index" json:"transport_assignment_is_active"`

	TransportAssignmentCreatedAt time.Time      `gorm:"column:transport_assignment_created_at;not null;autoCreateTime" json:"transport_assignment_created_at"`
	TransportAssignmentUpdatedAt time.Time      `gorm:"column:transport_assignment_updated_at;not null;autoUpdateTime" json:"transport_assignment_updated_at"`
	TransportAssignmentDeletedAt gorm.DeletedAt `gorm:"column:transport_assignment_deleted_at;index" json:"-"`
}

func (TransportAssignment) TableName() string { return "transport_assignments" }

func (m *TransportAssignment) BeforeCreate(tx *gorm.DB) error {
	if m.TransportAssignmentID == uuid.Nil {
		m.TransportAssignmentID = uuid.New()
	}
	return nil
}

/* =========================================================
   QUERY — dipakai Invoice Generator
========================================================= */

// ActiveRouteFeeForStudent mengembalikan biaya bulanan rute aktif siswa.
// found=false kalau siswa tidak punya assignment aktif (bukan error).
func ActiveRouteFeeForStudent(tx *gorm.DB, studentID uuid.UUID) (fee decimal.Decimal, found bool, err error) {
	var row struct {
		TransportRouteMonthlyFee decimal.Decimal
	}
	err = tx.Table("transport_assignments").
		Select("transport_routes.transport_route_monthly_fee").
		Joins("JOIN transport_routes ON transport_routes.transport_route_id = transport_assignments.transport_assignment_route_id AND transport_routes.transport_route_deleted_at IS NULL").
		Where("transport_assignments.transport_assignment_student_id = ?", studentID).
		Where("transport_assignments.transport_assignment_is_active = ?", true).
		Where("transport_assignments.transport_assignment_deleted_at IS NULL").
		Limit(1).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}
	return row.TransportRouteMonthlyFee, true, nil
}
