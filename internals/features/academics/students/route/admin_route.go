package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentctl "sekolahku_backend/internals/features/academics/students/controller"
)

/*
Admin routes — data siswa (kohort untuk ledger)
*/
func StudentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := studentctl.NewStudentController(db)

	grp := admin.Group("/students")
	{
		grp.Post("/", h.Create)
		grp.Get("/", h.List)
		grp.Get("/:id", h.GetByID)
		grp.Patch("/:id", h.Update)
	}
}
