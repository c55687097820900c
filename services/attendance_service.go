package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yeremiapane/hr-attendance-app/models"
	"github.com/yeremiapane/hr-attendance-app/utils"
	"gorm.io/gorm"
)

// LateCutoff adalah batas jam masuk. Check-in tepat 09:00:00 masih
// on-time; lewat satu detik dihitung terlambat. Satu konstanta global,
// tidak per karyawan.
const LateCutoff = 9 * time.Hour

var (
	ErrValidation        = errors.New("validation failed")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmployeeArchived  = errors.New("employee is archived")
	ErrNoRecord          = errors.New("no attendance record for this day")
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("must check in first")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrConcurrentWrite   = errors.New("concurrent attendance write, please retry")
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusLate    AttendanceStatus = "late"
	StatusAbsent  AttendanceStatus = "absent"
)

// CheckEvent adalah input check-in / check-out dari klien.
type CheckEvent struct {
	Latitude  float64
	Longitude float64
	Address   string
	Notes     string
}

// CheckOutResult membawa record final plus durasi kerja dalam jam.
type CheckOutResult struct {
	Record    *models.AttendanceRecord
	WorkHours float64
}

type AttendanceService struct {
	DB *gorm.DB
	// Now bisa diganti di test untuk menguji batas keterlambatan
	// dan durasi secara deterministik.
	Now func() time.Time

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{
		DB:    db,
		Now:   time.Now,
		locks: make(map[uint]*sync.Mutex),
	}
}

// employeeLock mengembalikan mutex per karyawan sehingga transisi
// read-check-then-write pada hari yang sama terserialisasi. Ukuran map
// dibatasi jumlah karyawan, tidak perlu pembersihan.
func (s *AttendanceService) employeeLock(employeeID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[employeeID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[employeeID] = l
	}
	return l
}

func (ev CheckEvent) validate() error {
	if ev.Latitude < -90 || ev.Latitude > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrValidation)
	}
	if ev.Longitude < -180 || ev.Longitude > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrValidation)
	}
	if strings.TrimSpace(ev.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrValidation)
	}
	if len(ev.Address) > 255 {
		return fmt.Errorf("%w: address must not exceed 255 characters", ErrValidation)
	}
	if len(ev.Notes) > 500 {
		return fmt.Errorf("%w: notes must not exceed 500 characters", ErrValidation)
	}
	return nil
}

func (s *AttendanceService) activeEmployee(employeeID uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.DB.First(&employee, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if employee.IsArchived() {
		return nil, ErrEmployeeArchived
	}
	return &employee, nil
}

// CheckIn mencatat jam masuk untuk (employee, day). Record dibuat bila
// belum ada; baris pre-seeded tanpa jam masuk diisi di tempat. Percobaan
// kedua ditolak tanpa mutasi apa pun.
func (s *AttendanceService) CheckIn(employeeID uint, day time.Time, ev CheckEvent) (*models.AttendanceRecord, error) {
	if err := ev.validate(); err != nil {
		return nil, err
	}
	if _, err := s.activeEmployee(employeeID); err != nil {
		return nil, err
	}

	lock := s.employeeLock(employeeID)
	lock.Lock()
	defer lock.Unlock()

	workDate := day.Format(models.WorkDateLayout)
	now := s.Now()

	var record models.AttendanceRecord
	err := s.DB.Where("employee_id = ? AND work_date = ?", employeeID, workDate).First(&record).Error
	switch {
	case err == nil:
		if record.HasCheckedIn() {
			return nil, ErrAlreadyCheckedIn
		}
		// Baris pre-seeded: isi jam masuk di tempat.
		record.CheckInTime = &now
		record.CheckInLat = &ev.Latitude
		record.CheckInLng = &ev.Longitude
		record.CheckInAddress = ev.Address
		if ev.Notes != "" {
			record.Notes = ev.Notes
		}
		if err := s.DB.Save(&record).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		record = models.AttendanceRecord{
			EmployeeID:     employeeID,
			WorkDate:       workDate,
			CheckInTime:    &now,
			CheckInLat:     &ev.Latitude,
			CheckInLng:     &ev.Longitude,
			CheckInAddress: ev.Address,
			Notes:          ev.Notes,
		}
		if err := s.DB.Create(&record).Error; err != nil {
			// Unique index (employee_id, work_date) menangkap penulis
			// kedua dari proses lain yang lolos dari mutex lokal.
			if isDuplicateKey(err) {
				return nil, ErrConcurrentWrite
			}
			return nil, err
		}
	default:
		return nil, err
	}

	utils.InfoLogger.Printf("Check-in recorded: employee=%d date=%s late=%v", employeeID, workDate, IsLate(now))
	return &record, nil
}

// CheckOut menutup hari kerja. Prasyarat: record ada, sudah check-in,
// dan belum check-out.
func (s *AttendanceService) CheckOut(employeeID uint, day time.Time, ev CheckEvent) (*CheckOutResult, error) {
	if err := ev.validate(); err != nil {
		return nil, err
	}
	if _, err := s.activeEmployee(employeeID); err != nil {
		return nil, err
	}

	lock := s.employeeLock(employeeID)
	lock.Lock()
	defer lock.Unlock()

	workDate := day.Format(models.WorkDateLayout)

	var record models.AttendanceRecord
	err := s.DB.Where("employee_id = ? AND work_date = ?", employeeID, workDate).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotCheckedIn
	}
	if err != nil {
		return nil, err
	}

	if !record.HasCheckedIn() {
		return nil, ErrNotCheckedIn
	}
	if record.HasCheckedOut() {
		return nil, ErrAlreadyCheckedOut
	}

	now := s.Now()
	record.CheckOutTime = &now
	record.CheckOutLat = &ev.Latitude
	record.CheckOutLng = &ev.Longitude
	record.CheckOutAddress = ev.Address
	if ev.Notes != "" {
		record.Notes = ev.Notes
	}

	if err := s.DB.Save(&record).Error; err != nil {
		return nil, err
	}

	hours := utils.WorkHours(*record.CheckInTime, *record.CheckOutTime)
	utils.InfoLogger.Printf("Check-out recorded: employee=%d date=%s hours=%.2f", employeeID, workDate, hours)

	return &CheckOutResult{Record: &record, WorkHours: hours}, nil
}

// TodayRecord mengembalikan record hari tertentu atau ErrNoRecord.
func (s *AttendanceService) TodayRecord(employeeID uint, day time.Time) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := s.DB.Where("employee_id = ? AND work_date = ?", employeeID, day.Format(models.WorkDateLayout)).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// RecordByID mengambil satu record untuk jalur koreksi admin.
func (s *AttendanceService) RecordByID(recordID uint) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := s.DB.Preload("Employee").First(&record, recordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// History mengembalikan riwayat kehadiran terbaru lebih dulu, dipaginasi.
func (s *AttendanceService) History(employeeID uint, page, size int) ([]models.AttendanceRecord, int64, error) {
	var total int64
	if err := s.DB.Model(&models.AttendanceRecord{}).
		Where("employee_id = ?", employeeID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.AttendanceRecord
	err := s.DB.Where("employee_id = ?", employeeID).
		Order("work_date desc").
		Offset((page - 1) * size).
		Limit(size).
		Find(&records).Error
	return records, total, err
}

// RecordsInRange mengembalikan record dalam [start, end] inklusif,
// urut tanggal naik (untuk laporan periode).
func (s *AttendanceService) RecordsInRange(employeeID uint, start, end time.Time) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := s.DB.Where("employee_id = ? AND work_date >= ? AND work_date <= ?",
		employeeID, start.Format(models.WorkDateLayout), end.Format(models.WorkDateLayout)).
		Order("work_date asc").
		Find(&records).Error
	return records, err
}

// RecordPatch adalah koreksi manual admin. Field nil tidak diubah.
type RecordPatch struct {
	CheckInTime     *time.Time
	CheckOutTime    *time.Time
	CheckInLat      *float64
	CheckInLng      *float64
	CheckInAddress  *string
	CheckOutLat     *float64
	CheckOutLng     *float64
	CheckOutAddress *string
	Notes           *string
}

// AdminUpdate adalah jalur koreksi manual yang melewati state machine,
// tapi tetap memvalidasi ulang invarian check-out >= check-in dan
// rentang koordinat sebelum disimpan.
func (s *AttendanceService) AdminUpdate(recordID uint, patch RecordPatch) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := s.DB.First(&record, recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoRecord
		}
		return nil, err
	}

	lock := s.employeeLock(record.EmployeeID)
	lock.Lock()
	defer lock.Unlock()

	if patch.CheckInTime != nil {
		record.CheckInTime = patch.CheckInTime
	}
	if patch.CheckOutTime != nil {
		record.CheckOutTime = patch.CheckOutTime
	}
	if patch.CheckInLat != nil {
		record.CheckInLat = patch.CheckInLat
	}
	if patch.CheckInLng != nil {
		record.CheckInLng = patch.CheckInLng
	}
	if patch.CheckInAddress != nil {
		record.CheckInAddress = *patch.CheckInAddress
	}
	if patch.CheckOutLat != nil {
		record.CheckOutLat = patch.CheckOutLat
	}
	if patch.CheckOutLng != nil {
		record.CheckOutLng = patch.CheckOutLng
	}
	if patch.CheckOutAddress != nil {
		record.CheckOutAddress = *patch.CheckOutAddress
	}
	if patch.Notes != nil {
		record.Notes = *patch.Notes
	}

	if record.CheckOutTime != nil && record.CheckInTime == nil {
		return nil, fmt.Errorf("%w: check-out requires a check-in time", ErrValidation)
	}
	if record.CheckInTime != nil && record.CheckOutTime != nil &&
		record.CheckOutTime.Before(*record.CheckInTime) {
		return nil, fmt.Errorf("%w: check-out must not be before check-in", ErrValidation)
	}
	for _, coord := range []*float64{record.CheckInLat, record.CheckOutLat} {
		if coord != nil && (*coord < -90 || *coord > 90) {
			return nil, fmt.Errorf("%w: latitude must be between -90 and 90", ErrValidation)
		}
	}
	for _, coord := range []*float64{record.CheckInLng, record.CheckOutLng} {
		if coord != nil && (*coord < -180 || *coord > 180) {
			return nil, fmt.Errorf("%w: longitude must be between -180 and 180", ErrValidation)
		}
	}

	if err := s.DB.Save(&record).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Attendance record %d corrected by admin", record.ID)
	return &record, nil
}

// IsLate melaporkan apakah jam masuk melewati batas. Tepat di batas
// masih on-time.
func IsLate(checkIn time.Time) bool {
	tod := time.Duration(checkIn.Hour())*time.Hour +
		time.Duration(checkIn.Minute())*time.Minute +
		time.Duration(checkIn.Second())*time.Second +
		time.Duration(checkIn.Nanosecond())
	return tod > LateCutoff
}

// Classify menentukan status satu record: tanpa check-in = absent
// (tidak pernah late), lewat batas = late, selain itu present.
func Classify(record *models.AttendanceRecord) AttendanceStatus {
	if record == nil || !record.HasCheckedIn() {
		return StatusAbsent
	}
	if IsLate(*record.CheckInTime) {
		return StatusLate
	}
	return StatusPresent
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
