// file: internals/features/transport/controller/transport_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/transport/model"
	helper "sekolahku_backend/internals/helpers"
)

type TransportController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTransportController(db *gorm.DB) *TransportController {
	return &TransportController{DB: db, Validator: validator.New()}
}

/* ===================== Routes (master) ===================== */

type routeCreateRequest struct {
	TransportRouteName       string          `json:"transport_route_name" validate:"required,min=2,max=120"`
	TransportRouteMonthlyFee decimal.Decimal `json:"transport_route_monthly_fee" validate:"required"`
}

// POST /transport/routes
func (h *TransportController) CreateRoute(c *fiber.Ctx) error {
	var req routeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if req.TransportRouteMonthlyFee.IsNegative() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Biaya bulanan tidak boleh negatif")
	}

	m := model.TransportRoute{
		TransportRouteName:       req.TransportRouteName,
		TransportRouteMonthlyFee: req.TransportRouteMonthlyFee,
	}
	if err := h.DB.WithContext(c.Context()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan rute")
	}
	return helper.JsonCreated(c, "Rute transport dibuat", m)
}

// GET /transport/routes
func (h *TransportController) ListRoutes(c *fiber.Ctx) error {
	var rows []model.TransportRoute
	if err := h.DB.WithContext(c.Context()).
		Order("transport_route_name ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil rute")
	}
	return helper.JsonOK(c, "ok", rows)
}

/* ===================== Assignments ===================== */

type assignRequest struct {
	TransportAssignmentStudentID uuid.UUID `json:"transport_assignment_student_id" validate:"required"`
	TransportAssignmentRouteID   uuid.UUID `json:"transport_assignment_route_id" validate:"required"`
}

// POST /transport/assignments — assignment aktif lama dimatikan (satu rute aktif per siswa)
func (h *TransportController) AssignStudent(c *fiber.Ctx) error {
	var req assignRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var route model.TransportRoute
	if err := h.DB.WithContext(c.Context()).
		First(&route, "transport_route_id = ?", req.TransportAssignmentRouteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Rute tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil rute")
	}

	m := model.TransportAssignment{
		TransportAssignmentStudentID: req.TransportAssignmentStudentID,
		TransportAssignmentRouteID:   req.TransportAssignmentRouteID,
		TransportAssignmentIsActive:  true,
	}
	err := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.TransportAssignment{}).
			Where("transport_assignment_student_id = ? AND transport_assignment_is_active = ?", req.TransportAssignmentStudentID, true).
			Update("transport_assignment_is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan assignment")
	}
	return helper.JsonCreated(c, "Siswa di-assign ke rute", m)
}

// DELETE /transport/assignments/:student_id — nonaktifkan assignment aktif siswa
func (h *TransportController) UnassignStudent(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	res := h.DB.WithContext(c.Context()).Model(&model.TransportAssignment{}).
		Where("transport_assignment_student_id = ? AND transport_assignment_is_active = ?", studentID, true).
		Update("transport_assignment_is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menonaktifkan assignment")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak punya assignment aktif")
	}
	return helper.JsonDeleted(c, "Assignment dinonaktifkan", fiber.Map{"student_id": studentID})
}
