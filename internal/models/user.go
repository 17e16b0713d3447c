package models

import (
	"time"

	"gorm.io/gorm"
)

// Role controls access to the admin console.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// IsAdmin reports whether the role may use the admin console.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is the signed-in user carried in the session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  Role   `json:"role"`
}

// AuthSession is the persisted auth blob (user plus bearer token).
type AuthSession struct {
	User        *User  `json:"user"`
	AccessToken string `json:"accessToken"`
}

// Authenticated reports whether the session carries a user.
func (s AuthSession) Authenticated() bool {
	return s.User != nil && s.User.ID != ""
}

// UserRecord is a user as listed by the admin users endpoints.
type UserRecord struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Account is the stored user row behind the sandbox API.
type Account struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string         `json:"name" gorm:"type:varchar(100)"`
	Email     string         `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Phone     string         `json:"phone" gorm:"type:varchar(32)"`
	Password  string         `json:"-" gorm:"type:varchar(255)"`
	Role      Role           `json:"role" gorm:"type:varchar(20);default:user"`
	Provider  string         `json:"provider" gorm:"type:varchar(20);default:local"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// SessionUser projects the account onto the session shape.
func (a Account) SessionUser() User {
	return User{ID: a.ID, Name: a.Name, Email: a.Email, Phone: a.Phone, Role: a.Role}
}

// Record projects the account onto the admin listing shape.
func (a Account) Record() UserRecord {
	return UserRecord{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		Provider:  a.Provider,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// RegisterInput is the body of POST /auth/register.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,numeric"`
}

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginInput is the body of POST /auth/google.
type GoogleLoginInput struct {
	Credential string `json:"credential" validate:"required"`
}

// AdminInput is the body of POST /users/create-admin.
type AdminInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UserUpdate is the body of PUT /users/:id. Nil fields are left unchanged.
type UserUpdate struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Role     *Role   `json:"role,omitempty" validate:"omitempty,oneof=user admin superadmin"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
}
