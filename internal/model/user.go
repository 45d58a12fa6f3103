package model

// User is a front-office staff account. PasswordHash never leaves the
// server.
type User struct {
	Base
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         string `db:"role" json:"role"`
	Active       bool   `db:"active" json:"active"`
}

// User roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)
