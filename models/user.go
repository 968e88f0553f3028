package models

// Role is the coarse access level attached to a user.
// Roles are compared exactly; there is no hierarchy.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an account in the system.
// It maps to the `users` table in SQLite. PasswordHash holds the bcrypt
// digest and is never serialized.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password" json:"-"`
	Role         Role   `db:"role" json:"role"`
}

// NewUser is the input for creating a user. Password is plaintext and is
// hashed by the repository before it reaches storage.
type NewUser struct {
	Username string
	Email    string
	Password string
	Role     Role
}
