package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	payctl "sekolahku_backend/internals/features/finance/payments/controller"
	"sekolahku_backend/internals/middlewares"
)

/*
Admin routes — kasir & riwayat pembayaran
*/
func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := payctl.NewPaymentController(db)

	grp := admin.Group("/finance/payments")
	{
		// collect dibatasi rate terpisah: endpoint uang, bukan endpoint baca
		grp.Post("/collect", middlewares.PaymentRateLimiter(), h.Collect)
		grp.Get("/", h.List)
	}
}
