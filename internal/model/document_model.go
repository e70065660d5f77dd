package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string
	Source    string `gorm:"index"`
	Content   string `gorm:"type:text"`
	Metadata  datatypes.JSON
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func (Document) TableName() string {
	return "documents"
}
