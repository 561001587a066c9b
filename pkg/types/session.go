package types

// Session is the current authenticated identity. A nil *Session means
// anonymous. DisplayName is resolved from the profile record keyed by
// UserID; resolution failure leaves it empty without invalidating the
// session.
type Session struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}
