package domain

import "time"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

type Account struct {
	ID          int64
	Email       string
	Role        Role
	IsApproved  bool
	IsActive    bool
	FirstName   string
	LastName    string
	Age         *int
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Eligible reports whether the account may hold a session. Admins are never
// subject to the approval and block flags.
func (a Account) Eligible() bool {
	if a.Role == RoleAdmin {
		return true
	}
	return a.IsActive && a.IsApproved
}

func (a Account) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

type AccountWithPassword struct {
	Account
	PasswordHash string
}

// AccountState is the live slice of an account the access gate re-checks on
// every member request.
type AccountState struct {
	ID         int64
	Role       Role
	IsApproved bool
	IsActive   bool
}

type NewAccount struct {
	Email        string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	Age          *int
	PhoneNumber  string
}

type ProfileUpdate struct {
	FirstName   string
	LastName    string
	Age         *int
	PhoneNumber string
}

// Principal is the caller identity resolved from a verified session token.
type Principal struct {
	UserID int64
	Role   Role
}

type PasswordResetToken struct {
	ID        int64
	UserID    int64
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
	UsedAt    *time.Time
}
