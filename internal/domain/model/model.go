package model

import "time"

// User is the identity record. The password hash never leaves the
// service layer; transport DTOs copy everything but.
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	Username     string `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	FullName     string `gorm:"size:100"`
	AvatarURL    string `gorm:"size:500"`
	IsActive     bool   `gorm:"not null;default:true"`
	IsSuperuser  bool   `gorm:"not null;default:false"`
	IsVerified   bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }

// Item is a user-owned resource. Every query against it carries the
// owner id, so cross-user access is impossible at the query layer.
type Item struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"size:200;not null;index"`
	Description string `gorm:"type:text"`
	Priority    int    `gorm:"not null;default:0"`
	IsActive    bool   `gorm:"not null;default:true"`
	OwnerID     int64  `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Item) TableName() string { return "items" }

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	UserID       int64
}
