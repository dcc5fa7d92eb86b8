package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	waiverctl "sekolahku_backend/internals/features/finance/waivers/controller"
)

/*
User routes — pengajuan keringanan dari wali/siswa
*/
func WaiverUserRoutes(user fiber.Router, db *gorm.DB) {
	h := waiverctl.NewWaiverController(db)

	user.Post("/finance/waivers", h.Create)
}
