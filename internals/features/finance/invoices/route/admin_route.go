package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	invctl "sekolahku_backend/internals/features/finance/invoices/controller"
)

/*
Admin routes — invoice generation & reporting
*/
func InvoiceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := invctl.NewInvoiceController(db)

	inv := admin.Group("/finance/invoices")
	{
		inv.Post("/generate", h.GenerateBulk)
		inv.Post("/generate-one", h.GenerateOne)
		inv.Get("/", h.List)
	}

	students := admin.Group("/finance/students")
	{
		students.Get("/:student_id/ledger", h.StudentLedger)
		students.Get("/:student_id/refundable-balance", h.RefundableBalance)
	}
}
