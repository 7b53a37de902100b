package models

import "time"

// ClientPurpose: müşteri adı -> numune amacı (dışa aktarımda kullanılır)
type ClientPurpose struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Client    string    `gorm:"size:150;not null;uniqueIndex" json:"client"`
	Purpose   string    `gorm:"size:500" json:"purpose"`
	UpdatedAt time.Time `json:"updated_at"`
}
