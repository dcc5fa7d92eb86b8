package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestComputeStatus(t *testing.T) {
	tests := []struct {
		name     string
		paid     decimal.Decimal
		total    decimal.Decimal
		discount decimal.Decimal
		want     InvoiceStatus
	}{
		{"baru terbit", d(0), d(500), d(0), InvoiceStatusPending},
		{"bayar sebagian", d(100), d(500), d(0), InvoiceStatusPartial},
		{"lunas pas", d(500), d(500), d(0), InvoiceStatusPaid},
		{"lunas lebih", d(600), d(500), d(0), InvoiceStatusPaid},
		{"total habis oleh waiver tanpa bayaran", d(0), d(0), d(500), InvoiceStatusWaived},
		{"sudah bayar lalu sisanya diwaive", d(200), d(200), d(300), InvoiceStatusPaid},
		{"waiver sebagian masih menyisakan tagihan", d(0), d(200), d(300), InvoiceStatusPending},
		{"invoice nol tanpa diskon", d(0), d(0), d(0), InvoiceStatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStatus(tt.paid, tt.total, tt.discount))
		})
	}
}

func TestOutstanding(t *testing.T) {
	inv := Invoice{InvoiceTotalAmount: d(500), InvoicePaidAmount: d(120)}
	assert.True(t, inv.Outstanding().Equal(d(380)))
}

func TestRecomputeStatus(t *testing.T) {
	inv := Invoice{
		InvoiceTotalAmount:    d(500),
		InvoicePaidAmount:     d(500),
		InvoiceDiscountAmount: d(0),
		InvoiceStatus:         InvoiceStatusPartial,
	}
	inv.RecomputeStatus()
	assert.Equal(t, InvoiceStatusPaid, inv.InvoiceStatus)
}
