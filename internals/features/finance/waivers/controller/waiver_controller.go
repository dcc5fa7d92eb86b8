// file: internals/features/finance/waivers/controller/waiver_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/finance/waivers/dto"
	model "sekolahku_backend/internals/features/finance/waivers/model"
	service "sekolahku_backend/internals/features/finance/waivers/service"
	helper "sekolahku_backend/internals/helpers"
	authmw "sekolahku_backend/internals/middlewares/auth"
)

type WaiverController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewWaiverController(db *gorm.DB) *WaiverController {
	return &WaiverController{DB: db, Validator: validator.New()}
}

// POST /finance/waivers (route user) — wali/siswa mengajukan keringanan
func (h *WaiverController) Create(c *fiber.Ctx) error {
	var req dto.WaiverCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	m, err := service.RequestWaiver(
		h.DB.WithContext(c.Context()),
		req.StudentID, strings.ToLower(strings.TrimSpace(req.FeeType)),
		req.Amount, req.Reason,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStudentNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat pengajuan")
		}
	}
	return helper.JsonCreated(c, "Pengajuan keringanan dibuat", dto.FromModel(m))
}

// PUT /finance/waivers/:id/decision — approve / reject oleh staf
func (h *WaiverController) Decide(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.WaiverDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	decision, err := service.ParseDecision(req.Decision)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	processedBy, err := authmw.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak memuat user id")
	}

	m, err := service.ProcessWaiver(h.DB.WithContext(c.Context()), id, decision, req.Amount, processedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWaiverNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyProcessed):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidDecision), errors.Is(err, service.ErrInvalidAmount):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses pengajuan")
		}
	}
	return helper.JsonUpdated(c, "Pengajuan diproses", dto.FromModel(m))
}

// GET /finance/waivers — antrian pengajuan untuk staf
func (h *WaiverController) List(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 20, 200)

	q := h.DB.WithContext(c.Context()).Model(&model.WaiverRequest{})

	switch status := strings.ToLower(strings.TrimSpace(c.Query("status"))); status {
	case "":
		q = q.Where("waiver_request_status = ?", model.WaiverStatusPending)
	case "all":
	case string(model.WaiverStatusPending), string(model.WaiverStatusApproved), string(model.WaiverStatusRejected):
		q = q.Where("waiver_request_status = ?", status)
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "status tidak dikenal")
	}

	if v := strings.TrimSpace(c.Query("student_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id harus uuid valid")
		}
		q = q.Where("waiver_request_student_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("course_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "course_id harus uuid valid")
		}
		q = q.Joins("JOIN students ON students.student_id = waiver_requests.waiver_request_student_id").
			Where("students.student_course_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung pengajuan")
	}

	var rows []model.WaiverRequest
	if err := q.Order("waiver_request_created_at ASC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pengajuan")
	}

	p := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "ok", dto.FromModels(rows), &p)
}
