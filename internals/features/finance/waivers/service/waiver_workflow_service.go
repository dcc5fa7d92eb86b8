// file: internals/features/finance/waivers/service/waiver_workflow_service.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	studentmodel "sekolahku_backend/internals/features/academics/students/model"
	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
	model "sekolahku_backend/internals/features/finance/waivers/model"
	helper "sekolahku_backend/internals/helpers"
)

var (
	ErrWaiverNotFound   = errors.New("pengajuan keringanan tidak ditemukan")
	ErrAlreadyProcessed = errors.New("pengajuan sudah pernah diproses")
	ErrInvalidDecision  = errors.New("decision harus approve atau reject")
	ErrInvalidAmount    = errors.New("nominal keringanan harus lebih dari nol")
	ErrStudentNotFound  = errors.New("siswa tidak ditemukan")
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func ParseDecision(v string) (Decision, error) {
	switch Decision(strings.ToLower(strings.TrimSpace(v))) {
	case DecisionApprove:
		return DecisionApprove, nil
	case DecisionReject:
		return DecisionReject, nil
	}
	return "", ErrInvalidDecision
}

// RequestWaiver membuat pengajuan baru berstatus pending.
func RequestWaiver(db *gorm.DB, studentID uuid.UUID, feeType string, amount decimal.Decimal, reason string) (*model.WaiverRequest, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	var exists int64
	if err := db.Model(&studentmodel.Student{}).
		Where("student_id = ?", studentID).
		Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrStudentNotFound
	}

	req := model.WaiverRequest{
		WaiverRequestStudentID:       studentID,
		WaiverRequestFeeType:         feeType,
		WaiverRequestRequestedAmount: amount,
		WaiverRequestReason:          reason,
		WaiverRequestStatus:          model.WaiverStatusPending,
	}
	if err := db.Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// ProcessWaiver mengeksekusi keputusan staf atas satu pengajuan.
// amount zero → pakai nominal yang diajukan. Approve menyerap diskon ke
// invoice terbuka paling tua; clamp menjamin total tidak pernah turun di
// bawah paid (uang yang sudah diterima tidak ikut terhapus).
// Approve tanpa invoice terbuka tetap tercatat approved, tanpa penyesuaian.
func ProcessWaiver(db *gorm.DB, requestID uuid.UUID, decision Decision, amount decimal.Decimal, processedBy uuid.UUID) (*model.WaiverRequest, error) {
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, ErrInvalidDecision
	}
	if !amount.IsZero() && amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	var req model.WaiverRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		// Kunci baris pengajuan: re-check pending DI DALAM transaksi,
		// dua approver bersamaan hanya satu yang lolos.
		if err := helper.LockForUpdate(tx).
			Take(&req, "waiver_request_id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWaiverNotFound
			}
			return err
		}
		if req.IsProcessed() {
			return ErrAlreadyProcessed
		}

		now := time.Now()
		req.WaiverRequestProcessedBy = &processedBy
		req.WaiverRequestProcessedDate = &now

		if decision == DecisionReject {
			req.WaiverRequestStatus = model.WaiverStatusRejected
			return tx.Save(&req).Error
		}

		approved := amount
		if approved.IsZero() {
			approved = req.WaiverRequestRequestedAmount
		}

		var inv invmodel.Invoice
		findErr := helper.LockForUpdate(tx).
			Where("invoice_student_id = ?", req.WaiverRequestStudentID).
			Where("invoice_status IN ?", invmodel.OutstandingStatuses).
			Order("invoice_due_date ASC, invoice_created_at ASC").
			Take(&inv).Error
		if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		req.WaiverRequestStatus = model.WaiverStatusApproved

		if findErr == nil {
			// Clamp: diskon maksimal sebesar outstanding
			applied := approved
			if applied.GreaterThan(inv.Outstanding()) {
				applied = inv.Outstanding()
			}

			inv.InvoiceTotalAmount = inv.InvoiceTotalAmount.Sub(applied)
			inv.InvoiceDiscountAmount = inv.InvoiceDiscountAmount.Add(applied)
			inv.RecomputeStatus()
			if err := tx.Model(&invmodel.Invoice{}).
				Where("invoice_id = ?", inv.InvoiceID).
				Updates(map[string]any{
					"invoice_total_amount":    inv.InvoiceTotalAmount,
					"invoice_discount_amount": inv.InvoiceDiscountAmount,
					"invoice_status":          inv.InvoiceStatus,
				}).Error; err != nil {
				return err
			}

			req.WaiverRequestAppliedInvoiceID = &inv.InvoiceID
			req.WaiverRequestAppliedAmount = &applied
		}

		return tx.Save(&req).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}
