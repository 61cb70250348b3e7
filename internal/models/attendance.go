package models

import "time"

// Attendance records one gym visit per member per day.
type Attendance struct {
	BaseModel
	MemberID     string    `gorm:"not null;uniqueIndex:idx_attendance_member_date"`
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:idx_attendance_member_date;index"`
	Present      bool      `gorm:"default:true"`
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	MarkedBy     string `gorm:"index"`

	// Relations
	Member User `gorm:"foreignKey:MemberID"`
}
