package model

import (
	"time"

	"github.com/google/uuid"
)

type Period struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string     `gorm:"type:varchar(255);not null"`
	Status    string     `gorm:"type:varchar(50);not null;default:'draft';index"`
	OpensAt   *time.Time `gorm:"index"`
	ClosesAt  *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Period) TableName() string {
	return "periods"
}
