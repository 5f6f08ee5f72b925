// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleMember   UserRole = "member"
	UserRoleBusiness UserRole = "business"
	UserRoleAdmin    UserRole = "admin"

	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

type User struct {
	Id       uuid.UUID
	Email    string
	FullName string
	Role     UserRole
	Status   UserStatus

	// Set for staff accounts that manage a business.
	BusinessId *uuid.UUID

	// Credits is the cached balance in minor units. It is derived from the
	// credit transaction ledger and only the ledger code mutates it.
	Credits int64

	StripeCustomerId *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
