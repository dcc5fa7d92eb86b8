// file: internals/features/academics/students/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   MODEL — students
   Data akademik (course/batch/session) dikelola modul Academics
   di service lain; di sini hanya kolom yang dikonsumsi ledger.
========================================================= */

type Student struct {
	// PK
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`

	// Identitas
	StudentName   string  `gorm:"column:student_name;type:varchar(120);not null" json:"student_name"`
	StudentNumber *string `gorm:"column:student_number;type:varchar(40);uniqueIndex" json:"student_number,omitempty"`

	// Kohort (course, batch, session aktif) — kunci resolusi fee structure
	StudentCourseID  uuid.UUID `gorm:"column:student_course_id;type:uuid;not null;index:idx_students_cohort,priority:1" json:"student_course_id"`
	StudentBatchID   uuid.UUID `gorm:"column:student_batch_id;type:uuid;not null;index:idx_students_cohort,priority:2" json:"student_batch_id"`
	StudentSessionID uuid.UUID `gorm:"column:student_session_id;type:uuid;not null;index" json:"student_session_id"`

	// Status
	StudentIsActive bool `gorm:"column:student_is_active;not null;index" json:"student_is_active"`

	// Timestamps
	StudentCreatedAt time.Time      `gorm:"column:student_created_at;not null;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;not null;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"-"`
}

func (Student) TableName() string { return "students" }

func (m *Student) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}
