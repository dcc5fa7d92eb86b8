package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	waiverctl "sekolahku_backend/internals/features/finance/waivers/controller"
)

/*
Admin routes — antrian & keputusan keringanan
*/
func WaiverAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := waiverctl.NewWaiverController(db)

	grp := admin.Group("/finance/waivers")
	{
		grp.Get("/", h.List)
		grp.Put("/:id/decision", h.Decide)
	}
}
