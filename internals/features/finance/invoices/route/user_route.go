package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	invctl "sekolahku_backend/internals/features/finance/invoices/controller"
)

/*
User routes — siswa membaca posisi keuangannya sendiri
*/
func InvoiceUserRoutes(user fiber.Router, db *gorm.DB) {
	h := invctl.NewInvoiceController(db)

	user.Get("/finance/me/ledger", h.MyLedger)
}
