package domain

import (
	"fmt"
	"net/url"
)

// UserRole is the system-wide role of a user.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// IsValid reports whether t is a known theme.
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// UserPreferences holds per-user display settings.
type UserPreferences struct {
	Theme Theme `json:"theme"`
}

// UserProfile represents a user of the application in the domain.
type UserProfile struct {
	ID          string           `json:"id"`
	Email       string           `json:"email"` // unique, case-sensitive as stored
	Name        string           `json:"name"`
	AvatarURL   string           `json:"avatarUrl,omitempty"`
	Role        UserRole         `json:"role"`
	Preferences *UserPreferences `json:"preferences,omitempty"`
	AuditFields
}

// IsAdmin reports whether the user holds the admin role.
func (u UserProfile) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Clone returns a deep copy of the profile.
func (u UserProfile) Clone() UserProfile {
	if u.Preferences != nil {
		p := *u.Preferences
		u.Preferences = &p
	}
	return u
}

// UserUpdate carries a partial update of a UserProfile. Nil fields are left untouched.
type UserUpdate struct {
	Name      *string
	AvatarURL *string
	Role      *UserRole
	Theme     *Theme
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.AvatarURL == nil && u.Role == nil && u.Theme == nil
}

// AvatarURLFor builds the generated avatar reference for a display name.
func AvatarURLFor(seed string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", url.QueryEscape(seed))
}
