package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feectl "sekolahku_backend/internals/features/finance/fees/controller"
)

/*
Admin routes — fee structures (template harga per kohort)
*/
func FeeStructureAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := feectl.NewFeeStructureController(db)

	grp := admin.Group("/finance/fee-structures")
	{
		grp.Post("/", h.Create)
		grp.Get("/", h.List)
		grp.Get("/resolve", h.Resolve)
		grp.Get("/:id", h.GetByID)
		grp.Patch("/:id", h.Update)
	}
}
