// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/finance/payments/dto"
	model "sekolahku_backend/internals/features/finance/payments/model"
	service "sekolahku_backend/internals/features/finance/payments/service"
	helper "sekolahku_backend/internals/helpers"
	authmw "sekolahku_backend/internals/middlewares/auth"
)

type PaymentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db, Validator: validator.New()}
}

// POST /finance/payments/collect
// Kasir menyetor satu nominal; alokasi per-invoice diputuskan service.
func (h *PaymentController) Collect(c *fiber.Ctx) error {
	var req dto.CollectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	collectedBy, err := authmw.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak memuat user id")
	}

	result, err := service.Collect(h.DB.WithContext(c.Context()), service.CollectInput{
		StudentID:   req.StudentID,
		Amount:      req.Amount,
		Mode:        model.PaymentMode(strings.ToLower(req.Mode)),
		CollectedBy: collectedBy,
		Note:        helper.StrPtrIfNotEmpty(req.Note),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrInvalidMode):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStudentNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNoOutstandingBalance):
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses pembayaran")
		}
	}

	return helper.JsonCreated(c, "Pembayaran dialokasikan", result)
}

// GET /finance/payments — riwayat setoran (terbaru dulu)
func (h *PaymentController) List(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 20, 200)

	q := h.DB.WithContext(c.Context()).Model(&model.Payment{})

	if v := strings.TrimSpace(c.Query("invoice_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invoice_id harus uuid valid")
		}
		q = q.Where("payment_invoice_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("student_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id harus uuid valid")
		}
		q = q.Joins("JOIN invoices ON invoices.invoice_id = payments.payment_invoice_id").
			Where("invoices.invoice_student_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("mode")); v != "" {
		if !model.ValidPaymentMode(v) {
			return helper.JsonError(c, fiber.StatusBadRequest, "mode tidak dikenal")
		}
		q = q.Where("payment_mode = ?", strings.ToLower(v))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung pembayaran")
	}

	var rows []model.Payment
	if err := q.Order("payment_date DESC, payment_created_at DESC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran")
	}

	p := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "ok", dto.FromModels(rows), &p)
}
