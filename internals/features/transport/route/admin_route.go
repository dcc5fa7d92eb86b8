package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	transportctl "sekolahku_backend/internals/features/transport/controller"
)

/*
Admin routes — rute transport & assignment (sumber add-on fee untuk invoice)
*/
func TransportAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := transportctl.NewTransportController(db)

	grp := admin.Group("/transport")
	{
		grp.Post("/routes", h.CreateRoute)
		grp.Get("/routes", h.ListRoutes)
		grp.Post("/assignments", h.AssignStudent)
		grp.Delete("/assignments/:student_id", h.UnassignStudent)
	}
}
