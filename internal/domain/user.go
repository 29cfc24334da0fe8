package domain

// DefaultDisplayName is the greeting name when a profile carries neither a
// full name nor a username.
const DefaultDisplayName = "User"

// UserProfile is the subset of a users record needed to address an email.
// Every field except ID may be empty.
type UserProfile struct {
	ID       string `json:"id" firestore:"-"`
	Email    string `json:"email,omitempty" firestore:"email,omitempty"`
	FullName string `json:"fullName,omitempty" firestore:"fullName,omitempty"`
	Username string `json:"username,omitempty" firestore:"username,omitempty"`
}

// DisplayName falls back from full name to username to DefaultDisplayName.
func (u *UserProfile) DisplayName() string {
	if u == nil {
		return DefaultDisplayName
	}
	if u.FullName != "" {
		return u.FullName
	}
	if u.Username != "" {
		return u.Username
	}
	return DefaultDisplayName
}

// HasEmail reports whether the profile can receive email.
func (u *UserProfile) HasEmail() bool {
	return u != nil && u.Email != ""
}
