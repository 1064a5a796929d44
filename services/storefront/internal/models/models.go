package models

import "time"

// CartState is the persisted cart of one session.
type CartState struct {
	SessionID string    `gorm:"primaryKey;size:64"  json:"session_id"`
	Payload   string    `gorm:"type:text;not null"  json:"payload"`
	UpdatedAt time.Time `gorm:"not null"            json:"updated_at"`
}

func (CartState) TableName() string {
	return "cart_states"
}
