package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type FaqEntry struct {
	Question  string          `gorm:"type:varchar(500);primaryKey"`
	Answer    string          `gorm:"type:text"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small uses 1536 dimensions
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (FaqEntry) TableName() string {
	return "faq_entries"
}
