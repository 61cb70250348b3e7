package services

import (
	"time"

	"gymtrack_backend/internal/dto"
	"gymtrack_backend/internal/models"
	"gymtrack_backend/internal/repositories"
	"gymtrack_backend/pkg/apperrors"
)

type AttendanceService interface {
	// MarkAttendance records one visit per member per day; a second mark for
	// the same day is rejected.
	MarkAttendance(actorID string, req *dto.MarkAttendanceRequest) (*models.Attendance, error)
	ListAttendance(date *time.Time) ([]models.Attendance, error)
	ListMemberAttendance(memberID string) ([]models.Attendance, error)
}

type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	userRepo       repositories.UserRepository

	now func() time.Time
}

func NewAttendanceService(attendanceRepo repositories.AttendanceRepository, userRepo repositories.UserRepository) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		now:            time.Now,
	}
}

func (s *attendanceService) MarkAttendance(actorID string, req *dto.MarkAttendanceRequest) (*models.Attendance, error) {
	if _, err := s.userRepo.FindByID(req.MemberID); err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	checkIn := s.now()
	date := checkIn
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid date")
		}
		date = parsed
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	exists, err := s.attendanceRepo.ExistsForDate(req.MemberID, day)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrAttendanceAlreadyMarked
	}

	record := &models.Attendance{
		MemberID:    req.MemberID,
		Date:        day,
		Present:     true,
		CheckInTime: &checkIn,
		MarkedBy:    actorID,
	}
	if err := s.attendanceRepo.Create(record); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return record, nil
}

func (s *attendanceService) ListAttendance(date *time.Time) ([]models.Attendance, error) {
	records, err := s.attendanceRepo.FindAll(date)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return records, nil
}

func (s *attendanceService) ListMemberAttendance(memberID string) ([]models.Attendance, error) {
	records, err := s.attendanceRepo.FindByMember(memberID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return records, nil
}
