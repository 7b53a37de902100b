package models

import "time"

// SchemaMigration: uygulanmış migration adımları
type SchemaMigration struct {
	Name      string `gorm:"primaryKey;size:100"`
	AppliedAt time.Time
}
