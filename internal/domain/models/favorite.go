package models

import "time"

// Favorite links an account to a mineral it marked
type Favorite struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	MineralID uint      `gorm:"primaryKey;index" json:"mineral_id"`
	CreatedAt time.Time `json:"created_at"`
}
