package repositories

import (
	"errors"
	"time"

	"gymtrack_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAttendanceNotFound = errors.New("attendance record not found")

type AttendanceRepository interface {
	Create(record *models.Attendance) error
	ExistsForDate(memberID string, date time.Time) (bool, error)
	FindByMember(memberID string) ([]models.Attendance, error)
	FindAll(date *time.Time) ([]models.Attendance, error)
}

type AttendanceRepositoryImpl struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &AttendanceRepositoryImpl{db: db}
}

func (r *AttendanceRepositoryImpl) Create(record *models.Attendance) error {
	return r.db.Create(record).Error
}

func (r *AttendanceRepositoryImpl) ExistsForDate(memberID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.Attendance{}).
		Where("member_id = ? AND date = ?", memberID, date).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AttendanceRepositoryImpl) FindByMember(memberID string) ([]models.Attendance, error) {
	var records []models.Attendance
	if err := r.db.Where("member_id = ?", memberID).Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *AttendanceRepositoryImpl) FindAll(date *time.Time) ([]models.Attendance, error) {
	var records []models.Attendance
	query := r.db.Order("date DESC")
	if date != nil {
		query = query.Where("date = ?", *date)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
