// file: internals/features/finance/invoices/controller/invoice_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	feesvc "sekolahku_backend/internals/features/finance/fees/service"
	dto "sekolahku_backend/internals/features/finance/invoices/dto"
	model "sekolahku_backend/internals/features/finance/invoices/model"
	service "sekolahku_backend/internals/features/finance/invoices/service"
	helper "sekolahku_backend/internals/helpers"
	authmw "sekolahku_backend/internals/middlewares/auth"
)

type InvoiceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{DB: db, Validator: validator.New()}
}

// Whitelist kolom sorting — jangan pernah oper input user mentah ke ORDER BY
var invoiceSortColumns = map[string]string{
	"due_date":   "invoice_due_date",
	"issue_date": "invoice_issue_date",
	"total":      "invoice_total_amount",
	"paid":       "invoice_paid_amount",
	"created_at": "invoice_created_at",
}

// POST /finance/invoices/generate  — bulk per kohort (course, batch)
func (h *InvoiceController) GenerateBulk(c *fiber.Ctx) error {
	var req dto.GenerateBulkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	dueDate, err := parseOptionalDueDate(req.DueDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "due_date harus format YYYY-MM-DD")
	}

	count, err := service.BulkGenerate(
		h.DB.WithContext(c.Context()),
		req.CourseID, req.BatchID,
		dueDate, configs.InvoiceGracePeriodDays,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveStudents):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, feesvc.ErrFeeStructureNotFound),
			errors.Is(err, service.ErrNoChargeableComponent),
			errors.Is(err, service.ErrDueDateBeforeIssue):
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal generate invoice")
		}
	}

	return helper.JsonCreated(c, "Invoice kohort diterbitkan", fiber.Map{
		"generated_count": count,
	})
}

// POST /finance/invoices/generate-one — satu siswa
func (h *InvoiceController) GenerateOne(c *fiber.Ctx) error {
	var req dto.GenerateOneRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	dueDate, err := parseOptionalDueDate(req.DueDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "due_date harus format YYYY-MM-DD")
	}

	inv, items, err := service.Generate(
		h.DB.WithContext(c.Context()),
		req.StudentID, dueDate, configs.InvoiceGracePeriodDays,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, feesvc.ErrFeeStructureNotFound),
			errors.Is(err, service.ErrNoChargeableComponent),
			errors.Is(err, service.ErrDueDateBeforeIssue):
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal generate invoice")
		}
	}

	return helper.JsonCreated(c, "Invoice diterbitkan", dto.FromModel(inv, items))
}

// GET /finance/invoices — listing dengan filter status/siswa/jatuh tempo
func (h *InvoiceController) List(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 20, 200)

	q := h.DB.WithContext(c.Context()).Model(&model.Invoice{})

	switch status := strings.ToLower(strings.TrimSpace(c.Query("status"))); status {
	case "":
		// default: hanya yang masih outstanding
		q = q.Where("invoice_status IN ?", model.OutstandingStatuses)
	case "all":
	case string(model.InvoiceStatusPending), string(model.InvoiceStatusPartial),
		string(model.InvoiceStatusPaid), string(model.InvoiceStatusWaived):
		q = q.Where("invoice_status = ?", status)
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "status tidak dikenal")
	}

	if v := strings.TrimSpace(c.Query("student_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id harus uuid valid")
		}
		q = q.Where("invoice_student_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("due_before")); v != "" {
		t, err := helper.ParseDateYMD(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "due_before harus format YYYY-MM-DD")
		}
		q = q.Where("invoice_due_date <= ?", t)
	}

	sortCol, ok := invoiceSortColumns[strings.TrimSpace(c.Query("sort_by", "due_date"))]
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "sort_by tidak dikenal")
	}
	sortDir := "ASC"
	if strings.EqualFold(c.Query("sort_dir", "asc"), "desc") {
		sortDir = "DESC"
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung invoice")
	}

	var rows []model.Invoice
	if err := q.Order(sortCol + " " + sortDir).
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil invoice")
	}

	p := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "ok", dto.FromModels(rows), &p)
}

// GET /finance/students/:student_id/ledger
func (h *InvoiceController) StudentLedger(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return h.respondLedger(c, studentID)
}

// GET /finance/me/ledger — siswa melihat ledger miliknya sendiri
func (h *InvoiceController) MyLedger(c *fiber.Ctx) error {
	studentID, err := authmw.GetStudentID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak memuat student_id")
	}
	return h.respondLedger(c, studentID)
}

func (h *InvoiceController) respondLedger(c *fiber.Ctx, studentID uuid.UUID) error {
	ledger, err := service.BuildStudentLedger(h.DB.WithContext(c.Context()), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun ledger")
	}
	return helper.JsonOK(c, "ok", ledger)
}

// GET /finance/students/:student_id/refundable-balance
func (h *InvoiceController) RefundableBalance(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	rb, err := service.ComputeRefundableBalance(h.DB.WithContext(c.Context()), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung saldo")
	}
	return helper.JsonOK(c, "ok", rb)
}

// parseOptionalDueDate: kosong = pakai grace period
func parseOptionalDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return helper.ParseDateYMD(s)
}
