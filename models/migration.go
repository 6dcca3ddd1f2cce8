package models

import "time"

// Migration is a ledger row recording one applied SQL migration file.
// A filename appears at most once; the applied set only grows.
type Migration struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Filename   string    `json:"filename" gorm:"type:varchar(255);not null"`
	ExecutedAt time.Time `json:"executed_at" gorm:"autoCreateTime"`
}

// TableName matches the ledger table the runner maintains.
func (Migration) TableName() string {
	return "migrations"
}
