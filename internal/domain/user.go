package domain

// User is the authenticated identity returned by the store's auth.me call.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}
