package models

import "time"

type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// roleRank orders the closed role set. Guest is the implicit role of an
// unauthenticated caller and is never written to the store.
var roleRank = map[Role]int{
	RoleGuest: 0,
	RoleUser:  1,
	RoleAdmin: 2,
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r carries at least the privilege of required.
// Unknown roles rank below guest.
func (r Role) AtLeast(required Role) bool {
	return r.Valid() && roleRank[r] >= roleRank[required]
}

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	Phone        string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Name is the display form used in identity summaries.
func (u User) Name() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type AuditAction string

const (
	AuditLoginSucceeded  AuditAction = "login_succeeded"
	AuditLoginFailed     AuditAction = "login_failed"
	AuditUserRegistered  AuditAction = "user_registered"
	AuditPasswordChanged AuditAction = "password_changed"
	AuditRoleChanged     AuditAction = "role_changed"
	AuditUserDeactivated AuditAction = "user_deactivated"
	AuditUserDeleted     AuditAction = "user_deleted"
)

type AuditEvent struct {
	ID        string
	UserID    string
	Action    AuditAction
	IPAddress string
	Detail    string
	CreatedAt time.Time
}
