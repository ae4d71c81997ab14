package model

import (
	"strings"
	"time"
)

// User represents a registered storefront account.
//
// The password is stored exactly as supplied and compared as plain text.
// This is a demo storefront with no real trust boundary; a documented
// weakness, not an oversight.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}

// Profile is the cached subset of a user that travels with the session.
type Profile struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile returns the session-cacheable view of the user.
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email}
}

// FirstName returns the first word of the profile name, or "".
func (p Profile) FirstName() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Initial returns the uppercased first letter of the name, defaulting to "U".
func (p Profile) Initial() string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return "U"
	}
	return strings.ToUpper(string([]rune(name)[0]))
}
