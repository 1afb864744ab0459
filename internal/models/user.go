package models

// User is the authenticated principal. Email and Role come straight from the
// backend auth response; Token is the opaque bearer credential attached to
// authenticated requests.
type User struct {
	ID      int64  `json:"id,omitempty"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Role    string `json:"role"`
	Token   string `json:"token,omitempty"`
}

const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterRequest struct {
	Name      string `json:"name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	AdminCode string `json:"adminCode,omitempty"`
}
