package user

import "time"

// Profile mirrors the authenticated principal. IDs come from the identity
// provider and are never generated here.
type Profile struct {
	ID        string    `gorm:"primaryKey"`
	Email     string    `gorm:"not null"`
	Username  string    `gorm:"not null"`
	FirstName string    `gorm:"not null"`
	LastName  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "user_profiles"
}

type Page struct {
	Limit  int
	Offset int
}
