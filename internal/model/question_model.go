package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Question struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PeriodId  uuid.UUID      `gorm:"type:uuid;not null;index:idx_questions_period_position,priority:1"`
	Text      string         `gorm:"type:text;not null"`
	Kind      string         `gorm:"type:varchar(20);not null"`
	ScaleMin  float64        `gorm:"default:0"`
	ScaleMax  float64        `gorm:"default:0"`
	Position  int            `gorm:"not null;index:idx_questions_period_position,priority:2"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Question) TableName() string {
	return "questions"
}
