// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleStudent UserRole = "student"
	UserRoleAdmin   UserRole = "admin"

	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// User mirrors the campus identity provider's account. Accounts are
// provisioned by import or on first token sight, never by password
// signup here.
type User struct {
	Id            uuid.UUID
	Email         string
	FullName      string
	StudentNumber *string // empty for admins
	Role          UserRole
	Status        UserStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
