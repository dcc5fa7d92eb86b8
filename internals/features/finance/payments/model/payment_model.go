// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM — mode pembayaran
========================================================= */

type PaymentMode string

const (
	PaymentModeCash     PaymentMode = "cash"
	PaymentModeTransfer PaymentMode = "transfer"
	PaymentModeQRIS     PaymentMode = "qris"
)

func ValidPaymentMode(v string) bool {
	switch PaymentMode(strings.ToLower(strings.TrimSpace(v))) {
	case PaymentModeCash, PaymentModeTransfer, PaymentModeQRIS:
		return true
	}
	return false
}

/* =========================================================
   MODEL — payments
   Satu baris per invoice yang tersentuh alokasi. Immutable:
   tidak ada update/delete, koreksi lewat pembayaran baru.
========================================================= */

type Payment struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`

	// FK → invoices
	PaymentInvoiceID uuid.UUID `gorm:"column:payment_invoice_id;type:uuid;not null;index" json:"payment_invoice_id"`

	// Nomor referensi unik, dibagikan ke siswa sebagai bukti
	PaymentTransactionID string `gorm:"column:payment_transaction_id;type:varchar(48);not null;uniqueIndex" json:"payment_transaction_id"`

	PaymentAmount decimal.Decimal `gorm:"column:payment_amount;type:numeric(12,2);not null;check:payment_amount > 0" json:"payment_amount"`
	PaymentMode   PaymentMode     `gorm:"column:payment_mode;type:varchar(20);not null" json:"payment_mode"`
	PaymentDate   time.Time       `gorm:"column:payment_date;not null" json:"payment_date"`

	// Petugas yang menerima setoran (user id dari token)
	PaymentCollectedBy uuid.UUID `gorm:"column:payment_collected_by;type:uuid;not null" json:"payment_collected_by"`

	PaymentNote *string           `gorm:"column:payment_note;type:text" json:"payment_note,omitempty"`
	PaymentMeta datatypes.JSONMap `gorm:"column:payment_meta" json:"payment_meta,omitempty"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;not null;autoCreateTime" json:"payment_created_at"`
}

func (Payment) TableName() string { return "payments" }

func (m *Payment) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	if m.PaymentTransactionID == "" {
		m.PaymentTransactionID = NewTransactionID()
	}
	return nil
}

// NewTransactionID membuat nomor referensi "TRX-" + 20 hex dari uuid baru.
func NewTransactionID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "TRX-" + raw[:20]
}
