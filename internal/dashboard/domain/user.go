package domain

// Auth methods
const (
	AuthEmail    = "email"
	AuthGoogle   = "google"
	AuthFacebook = "facebook"
)

// User — зарегистрированный путешественник
type User struct {
	ID             ID     `json:"id"`
	FullName       string `json:"fullName"`
	Slug           string `json:"slug"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
	Contact        string `json:"contact"`
	AuthMethod     string `json:"authMethod"`
	Verified       bool   `json:"verified"`
	IsSuspended    bool   `json:"isSuspended"`
	LastActiveAt   string `json:"lastActiveAt"`
	CreatedAt      string `json:"createdAt"`
}
