package models

import "time"

type User struct {
	BaseModel
	Name         string     `gorm:"not null"`
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'Member'"`
	Status       UserStatus `gorm:"type:varchar(20);default:'pending'"`
	DOB          *time.Time

	// Relations
	Subscriptions []Subscription `gorm:"foreignKey:MemberID"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
