// file: internals/features/finance/invoices/service/invoice_generator_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	studentmodel "sekolahku_backend/internals/features/academics/students/model"
	feemodel "sekolahku_backend/internals/features/finance/fees/model"
	feesvc "sekolahku_backend/internals/features/finance/fees/service"
	invmodel "sekolahku_backend/internals/features/finance/invoices/model"
	transportmodel "sekolahku_backend/internals/features/transport/model"
)

var (
	ErrStudentNotFound       = errors.New("siswa tidak ditemukan atau tidak aktif")
	ErrNoChargeableComponent = errors.New("fee structure tidak punya komponen bernilai untuk ditagihkan")
	ErrNoActiveStudents      = errors.New("tidak ada siswa aktif untuk kohort ini")
	ErrDueDateBeforeIssue    = errors.New("due_date tidak boleh sebelum tanggal terbit")
)

// GenerateForStudent membuat satu invoice + line items untuk satu siswa,
// di dalam transaksi milik pemanggil. dueDate zero → issue + graceDays.
func GenerateForStudent(tx *gorm.DB, studentID uuid.UUID, dueDate time.Time, graceDays int) (*invmodel.Invoice, []invmodel.InvoiceItem, error) {
	var student studentmodel.Student
	if err := tx.
		Where("student_id = ? AND student_is_active = ?", studentID, true).
		Take(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrStudentNotFound
		}
		return nil, nil, err
	}

	return generateForStudentRow(tx, &student, dueDate, graceDays)
}

// generateForStudentRow: jalur bersama single & bulk (siswa sudah ter-fetch).
func generateForStudentRow(tx *gorm.DB, student *studentmodel.Student, dueDate time.Time, graceDays int) (*invmodel.Invoice, []invmodel.InvoiceItem, error) {
	// 1) Resolve fee structure — absen = gagal total, bukan nominal default
	fs, err := feesvc.ResolveFeeStructure(tx, student.StudentCourseID, student.StudentBatchID, student.StudentSessionID)
	if err != nil {
		return nil, nil, err
	}

	// 2) Susun line items: komponen bernilai + add-on transport
	components := fs.Components()

	if fs.FeeStructureTransportApplicable {
		routeFee, found, err := transportmodel.ActiveRouteFeeForStudent(tx, student.StudentID)
		switch {
		case err != nil:
			return nil, nil, err
		case found && routeFee.GreaterThan(decimal.Zero):
			// Nominal rute assignment menang atas nominal flat struktur
			components = append(components, feemodel.FeeComponent{Description: "Transport Fee", Amount: routeFee})
		case fs.TransportAmount().GreaterThan(decimal.Zero):
			components = append(components, feemodel.FeeComponent{Description: "Transport Fee", Amount: fs.TransportAmount()})
		}
	}

	if len(components) == 0 {
		return nil, nil, ErrNoChargeableComponent
	}

	// 3) Total & tanggal
	total := decimal.Zero
	for _, comp := range components {
		total = total.Add(comp.Amount)
	}

	issueDate := todayIn(configs.AppLocation())
	if dueDate.IsZero() {
		dueDate = issueDate.AddDate(0, 0, graceDays)
	} else if dueDate.Before(issueDate) {
		return nil, nil, ErrDueDateBeforeIssue
	}

	// 4) Persist invoice lalu items — satu transaksi (milik pemanggil)
	inv := invmodel.Invoice{
		InvoiceStudentID:      student.StudentID,
		InvoiceIssueDate:      issueDate,
		InvoiceDueDate:        dueDate,
		InvoiceTotalAmount:    total,
		InvoicePaidAmount:     decimal.Zero,
		InvoiceDiscountAmount: decimal.Zero,
		InvoiceStatus:         invmodel.ComputeStatus(decimal.Zero, total, decimal.Zero),
	}
	if err := tx.Create(&inv).Error; err != nil {
		return nil, nil, err
	}

	items := make([]invmodel.InvoiceItem, 0, len(components))
	for _, comp := range components {
		items = append(items, invmodel.InvoiceItem{
			InvoiceItemInvoiceID:   inv.InvoiceID,
			InvoiceItemDescription: comp.Description,
			InvoiceItemAmount:      comp.Amount,
		})
	}
	if err := tx.Create(&items).Error; err != nil {
		return nil, nil, err
	}

	return &inv, items, nil
}

// todayIn: tengah malam hari ini menurut kalender zona loc.
// Jangan potong pada batas hari UTC: di zona +07:00 itu menggeser
// tanggal terbit mundur sehari antara 00:00–07:00 lokal.
func todayIn(loc *time.Location) time.Time {
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

// Generate: wrapper transaksional untuk satu siswa.
func Generate(db *gorm.DB, studentID uuid.UUID, dueDate time.Time, graceDays int) (*invmodel.Invoice, []invmodel.InvoiceItem, error) {
	var (
		inv   *invmodel.Invoice
		items []invmodel.InvoiceItem
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		inv, items, err = GenerateForStudent(tx, studentID, dueDate, graceDays)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return inv, items, nil
}

// BulkGenerate menerbitkan invoice untuk semua siswa aktif pada (course, batch),
// all-or-nothing: satu siswa gagal resolve → seluruh batch rollback, supaya
// tidak ada siswa yang diam-diam tidak tertagih.
func BulkGenerate(db *gorm.DB, courseID, batchID uuid.UUID, dueDate time.Time, graceDays int) (int, error) {
	count := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		var students []studentmodel.Student
		if err := tx.
			Where("student_course_id = ? AND student_batch_id = ?", courseID, batchID).
			Where("student_is_active = ?", true).
			Order("student_created_at ASC").
			Find(&students).Error; err != nil {
			return err
		}
		if len(students) == 0 {
			return ErrNoActiveStudents
		}

		for i := range students {
			if _, _, err := generateForStudentRow(tx, &students[i], dueDate, graceDays); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
