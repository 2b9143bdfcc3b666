package models

import "time"

// ProfileRecord stores one serialized HealthProfile under a fixed key
type ProfileRecord struct {
	RecordKey string    `gorm:"primaryKey;size:128"`
	Document  []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for ProfileRecord
func (ProfileRecord) TableName() string {
	return "profile_records"
}
