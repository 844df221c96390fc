package message

// User identifies the sender of a message on some platform.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsBot     bool   `json:"is_bot,omitempty"`
}

// NewUser creates a User with the given platform-assigned ID.
func NewUser(id string) User {
	return User{ID: id}
}

// DisplayName returns the best human-readable name for the user:
// username, then first/last name, then the raw ID.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	if u.FirstName != "" {
		if u.LastName != "" {
			return u.FirstName + " " + u.LastName
		}
		return u.FirstName
	}
	return u.ID
}

func (u User) String() string {
	return u.DisplayName()
}
