// file: internals/helpers/db.go
package helper

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockForUpdate menambahkan SELECT ... FOR UPDATE pada dialect yang mendukung.
// SQLite (dipakai di unit test) tidak mengenal FOR UPDATE; transaksi SQLite
// sudah serialized sehingga aman dilewati.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
