package models

import "time"

// Config is a single global key-value setting row. Writes go through
// upsert-by-key semantics in the config service.
type Config struct {
	Key   string `gorm:"primaryKey;size:191" json:"key"`
	Value string `json:"value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Config) TableName() string {
	return "configs"
}
