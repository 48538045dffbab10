package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	role         Role
	firstName    string
	lastName     string
	createdAt    time.Time
}

func NewUser(email Email, passwordHash string, role Role, firstName, lastName string) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		firstName:    strings.TrimSpace(firstName),
		lastName:     strings.TrimSpace(lastName),
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) FirstName() string    { return u.firstName }
func (u *User) LastName() string     { return u.lastName }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// DisplayName is what the board caches into a slot label at reserve time.
func (u *User) DisplayName() string {
	return DisplayName(u.firstName, u.lastName)
}

func DisplayName(firstName, lastName string) string {
	name := strings.TrimSpace(firstName + " " + lastName)
	if name == "" {
		return "Reserved"
	}
	return name
}
