// file: internals/features/finance/fees/controller/fee_structure_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/finance/fees/dto"
	model "sekolahku_backend/internals/features/finance/fees/model"
	feesvc "sekolahku_backend/internals/features/finance/fees/service"
	helper "sekolahku_backend/internals/helpers"
)

type FeeStructureController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewFeeStructureController(db *gorm.DB) *FeeStructureController {
	return &FeeStructureController{DB: db, Validator: validator.New()}
}

// POST /finance/fee-structures
func (h *FeeStructureController) Create(c *fiber.Ctx) error {
	var req dto.FeeStructureCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if req.HasNegativeAmount() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nominal komponen tidak boleh negatif")
	}

	// Maksimal satu struktur aktif per (course, batch, session)
	var existing int64
	if err := h.DB.WithContext(c.Context()).Model(&model.FeeStructure{}).
		Where("fee_structure_course_id = ?", req.FeeStructureCourseID).
		Where("fee_structure_batch_id = ?", req.FeeStructureBatchID).
		Where("fee_structure_session_id = ?", req.FeeStructureSessionID).
		Where("fee_structure_is_active = ?", true).
		Count(&existing).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa struktur aktif")
	}
	if existing > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Sudah ada fee structure aktif untuk kohort ini")
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan fee structure")
	}
	return helper.JsonCreated(c, "Fee structure dibuat", dto.FromModel(m))
}

// GET /finance/fee-structures/:id
func (h *FeeStructureController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	var m model.FeeStructure
	if err := h.DB.WithContext(c.Context()).
		First(&m, "fee_structure_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Fee structure tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil fee structure")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(&m))
}

// GET /finance/fee-structures
func (h *FeeStructureController) List(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 20, 200)

	q := h.DB.WithContext(c.Context()).Model(&model.FeeStructure{})
	if v := strings.TrimSpace(c.Query("course_id")); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("fee_structure_course_id = ?", id)
		}
	}
	if v := strings.TrimSpace(c.Query("batch_id")); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("fee_structure_batch_id = ?", id)
		}
	}
	if v := strings.TrimSpace(c.Query("session_id")); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("fee_structure_session_id = ?", id)
		}
	}
	if v := strings.TrimSpace(c.Query("active")); v != "" {
		q = q.Where("fee_structure_is_active = ?", strings.EqualFold(v, "true"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung fee structure")
	}

	var rows []model.FeeStructure
	if err := q.Order("fee_structure_created_at DESC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil fee structure")
	}

	p := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "ok", dto.FromModels(rows), &p)
}

// PATCH /finance/fee-structures/:id
func (h *FeeStructureController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.FeeStructureUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var m model.FeeStructure
	if err := h.DB.WithContext(c.Context()).
		First(&m, "fee_structure_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Fee structure tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil fee structure")
	}

	req.Apply(&m)
	if err := h.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui fee structure")
	}
	return helper.JsonUpdated(c, "Fee structure diperbarui", dto.FromModel(&m))
}

// GET /finance/fee-structures/resolve?course_id=&batch_id=&session_id=
// Dipakai staf untuk cek struktur mana yang akan dipakai generator.
func (h *FeeStructureController) Resolve(c *fiber.Ctx) error {
	courseID, err1 := uuid.Parse(strings.TrimSpace(c.Query("course_id")))
	batchID, err2 := uuid.Parse(strings.TrimSpace(c.Query("batch_id")))
	sessionID, err3 := uuid.Parse(strings.TrimSpace(c.Query("session_id")))
	if err1 != nil || err2 != nil || err3 != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id, batch_id, dan session_id wajib uuid valid")
	}

	fs, err := feesvc.ResolveFeeStructure(h.DB.WithContext(c.Context()), courseID, batchID, sessionID)
	if err != nil {
		if errors.Is(err, feesvc.ErrFeeStructureNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal resolve fee structure")
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"fee_structure": dto.FromModel(fs),
		"components":    fs.Components(),
	})
}
