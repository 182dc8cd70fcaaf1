package models

import "time"

// Account represents the users table.
// PasswordHash holds an unsalted SHA-256 hex digest; see utils.HashPassword.
type Account struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;->"`
}

// TableName specifies the table name for Account model
func (Account) TableName() string {
	return "users"
}
