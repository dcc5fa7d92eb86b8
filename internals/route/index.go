// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentroute "sekolahku_backend/internals/features/academics/students/route"
	feeroute "sekolahku_backend/internals/features/finance/fees/route"
	invroute "sekolahku_backend/internals/features/finance/invoices/route"
	payroute "sekolahku_backend/internals/features/finance/payments/route"
	waiverroute "sekolahku_backend/internals/features/finance/waivers/route"
	transportroute "sekolahku_backend/internals/features/transport/route"
	authmw "sekolahku_backend/internals/middlewares/auth"
)

/* =========================================================
   ROUTE INDEX
   /api/a → staf (admin / bendahara), /api/u → user login
========================================================= */

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	api := app.Group("/api")

	// ✅ User biasa cukup login
	user := api.Group("/u", authmw.AuthMiddleware())

	// ✅ Grup staf: login + gate role keuangan
	admin := api.Group("/a",
		authmw.AuthMiddleware(),
		authmw.OnlyRoles("❌ Akses ditolak: khusus staf keuangan", authmw.RoleAdmin, authmw.RoleBendahara),
	)

	// ---- Staf ----
	studentroute.StudentAdminRoutes(admin, db)
	transportroute.TransportAdminRoutes(admin, db)
	feeroute.FeeStructureAdminRoutes(admin, db)
	invroute.InvoiceAdminRoutes(admin, db)
	payroute.PaymentAdminRoutes(admin, db)
	waiverroute.WaiverAdminRoutes(admin, db)

	// ---- User ----
	invroute.InvoiceUserRoutes(user, db)
	waiverroute.WaiverUserRoutes(user, db)
}
