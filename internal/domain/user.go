package domain

// User is a chat user known to the bot. Only the identifier matters for
// broadcast and counting; the display fields are kept for operator
// convenience.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
}
