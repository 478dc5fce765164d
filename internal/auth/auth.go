package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Fixed role set seeded at bootstrap.
const (
	RoleAdmin   = "admin"
	RoleSales   = "sales"
	RoleStock   = "stock"
	RoleAccount = "account"
)

// BootstrapUsername and BootstrapPassword are the well-known credentials of
// the administrator created when the user table is empty. The password is a
// placeholder meant to be changed on first login.
const (
	BootstrapUsername = "admin"
	BootstrapPassword = "admin"
)

type Role struct {
	Code  string `gorm:"column:code;primaryKey" json:"code"`
	Label string `gorm:"column:label" json:"label"`
}

func (Role) TableName() string {
	return "roles"
}

// DefaultRoles returns the role rows seeded with insert-or-ignore
// semantics, so re-seeding is a no-op.
func DefaultRoles() []Role {
	return []Role{
		{Code: RoleAdmin, Label: "Administrateur"},
		{Code: RoleSales, Label: "Commercial"},
		{Code: RoleStock, Label: "Stock"},
		{Code: RoleAccount, Label: "Comptable"},
	}
}

type User struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	Username     string    `gorm:"column:username;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	RoleCode     string    `gorm:"column:role_code" json:"role"`
	IsActive     bool      `gorm:"column:is_active" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.RoleCode == RoleAdmin
}

// Claims represents JWT token claims
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenGeneratorAPI creates and validates session tokens.
type TokenGeneratorAPI interface {
	GenerateAccessToken(user *User) (string, error)
	GenerateRefreshToken(user *User) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type ServiceAPI interface {
	Authenticate(username, password string) (*User, error)
	Login(dto LoginDTO) (SessionDTO, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	Bootstrap() error
	HashPassword(password string) (string, error)
}

type RepositoryAPI interface {
	GetByUsername(username string) (*User, error)
	GetByID(id int64) (*User, error)
	CountUsers() (int64, error)
	SeedRoles(roles []Role) error
	CreateUser(user *User) error
}
