// file: internals/features/academics/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "sekolahku_backend/internals/features/academics/students/model"
)

/* ===================== Requests ===================== */

type StudentCreateRequest struct {
	StudentName      string     `json:"student_name" validate:"required,min=2,max=120"`
	StudentNumber    *string    `json:"student_number,omitempty" validate:"omitempty,max=40"`
	StudentCourseID  uuid.UUID  `json:"student_course_id" validate:"required"`
	StudentBatchID   uuid.UUID  `json:"student_batch_id" validate:"required"`
	StudentSessionID uuid.UUID  `json:"student_session_id" validate:"required"`
}

type StudentUpdateRequest struct {
	StudentName      *string    `json:"student_name,omitempty" validate:"omitempty,min=2,max=120"`
	StudentNumber    *string    `json:"student_number,omitempty" validate:"omitempty,max=40"`
	StudentCourseID  *uuid.UUID `json:"student_course_id,omitempty"`
	StudentBatchID   *uuid.UUID `json:"student_batch_id,omitempty"`
	StudentSessionID *uuid.UUID `json:"student_session_id,omitempty"`
	StudentIsActive  *bool      `json:"student_is_active,omitempty"`
}

/* ===================== Response ===================== */

type StudentResponse struct {
	StudentID        uuid.UUID `json:"student_id"`
	StudentName      string    `json:"student_name"`
	StudentNumber    *string   `json:"student_number,omitempty"`
	StudentCourseID  uuid.UUID `json:"student_course_id"`
	StudentBatchID   uuid.UUID `json:"student_batch_id"`
	StudentSessionID uuid.UUID `json:"student_session_id"`
	StudentIsActive  bool      `json:"student_is_active"`
	StudentCreatedAt time.Time `json:"student_created_at"`
	StudentUpdatedAt time.Time `json:"student_updated_at"`
}

/* ===================== Mappers ===================== */

func (r *StudentCreateRequest) ToModel() *model.Student {
	return &model.Student{
		StudentName:      r.StudentName,
		StudentNumber:    r.StudentNumber,
		StudentCourseID:  r.StudentCourseID,
		StudentBatchID:   r.StudentBatchID,
		StudentSessionID: r.StudentSessionID,
		StudentIsActive:  true,
	}
}

func (r *StudentUpdateRequest) Apply(m *model.Student) {
	if r.StudentName != nil {
		m.StudentName = *r.StudentName
	}
	if r.StudentNumber != nil {
		m.StudentNumber = r.StudentNumber
	}
	if r.StudentCourseID != nil {
		m.StudentCourseID = *r.StudentCourseID
	}
	if r.StudentBatchID != nil {
		m.StudentBatchID = *r.StudentBatchID
	}
	if r.StudentSessionID != nil {
		m.StudentSessionID = *r.StudentSessionID
	}
	if r.StudentIsActive != nil {
		m.StudentIsActive = *r.StudentIsActive
	}
}

func FromModel(m *model.Student) StudentResponse {
	return StudentResponse{
		StudentID:        m.StudentID,
		StudentName:      m.StudentName,
		StudentNumber:    m.StudentNumber,
		StudentCourseID:  m.StudentCourseID,
		StudentBatchID:   m.StudentBatchID,
		StudentSessionID: m.StudentSessionID,
		StudentIsActive:  m.StudentIsActive,
		StudentCreatedAt: m.StudentCreatedAt,
		StudentUpdatedAt: m.StudentUpdatedAt,
	}
}

func FromModels(ms []model.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
