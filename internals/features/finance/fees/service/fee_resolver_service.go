// file: internals/features/finance/fees/service/fee_resolver_service.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/finance/fees/model"
)

// ErrFeeStructureNotFound: tidak ada struktur aktif untuk tuple (course, batch, session).
// Caller (Invoice Generator) WAJIB gagal total, tidak boleh mengarang nominal default.
var ErrFeeStructureNotFound = errors.New("fee structure tidak ditemukan untuk kohort ini")

// ResolveFeeStructure mencari satu struktur aktif untuk tuple kohort.
// Menerima tx supaya bisa ikut transaksi pemanggil (bulk generation).
func ResolveFeeStructure(tx *gorm.DB, courseID, batchID, sessionID uuid.UUID) (*model.FeeStructure, error) {
	var fs model.FeeStructure
	err := tx.
		Where("fee_structure_course_id = ?", courseID).
		Where("fee_structure_batch_id = ?", batchID).
		Where("fee_structure_session_id = ?", sessionID).
		Where("fee_structure_is_active = ?", true).
		Take(&fs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeStructureNotFound
		}
		return nil, err
	}
	return &fs, nil
}
