// file: internals/features/academics/students/controller/student_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/academics/students/dto"
	model "sekolahku_backend/internals/features/academics/students/model"
	helper "sekolahku_backend/internals/helpers"
)

type StudentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Validator: validator.New()}
}

// POST /students
func (h *StudentController) Create(c *fiber.Ctx) error {
	var req dto.StudentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return helper.JsonError(c, fiber.StatusConflict, "student_number sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan siswa")
	}
	return helper.JsonCreated(c, "Siswa dibuat", dto.FromModel(m))
}

// GET /students/:id
func (h *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	var m model.Student
	if err := h.DB.WithContext(c.Context()).
		First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(&m))
}

// GET /students
func (h *StudentController) List(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 20, 200)

	q := h.DB.WithContext(c.Context()).Model(&model.Student{})

	if v := strings.TrimSpace(c.Query("course_id")); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("student_course_id = ?", id)
		}
	}
	if v := strings.TrimSpace(c.Query("batch_id")); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("student_batch_id = ?", id)
		}
	}
	if v := strings.TrimSpace(c.Query("session_id")); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("student_session_id = ?", id)
		}
	}
	if v := strings.TrimSpace(c.Query("active")); v != "" {
		q = q.Where("student_is_active = ?", strings.EqualFold(v, "true"))
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		q = q.Where("LOWER(student_name) LIKE ?", "%"+strings.ToLower(v)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung siswa")
	}

	var rows []model.Student
	if err := q.Order("student_created_at DESC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar siswa")
	}

	p := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "ok", dto.FromModels(rows), &p)
}

// PATCH /students/:id
func (h *StudentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.StudentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var m model.Student
	if err := h.DB.WithContext(c.Context()).
		First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}

	req.Apply(&m)
	if err := h.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui siswa")
	}
	return helper.JsonUpdated(c, "Siswa diperbarui", dto.FromModel(&m))
}
