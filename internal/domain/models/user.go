package models

// Role is the privilege level of an account
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// IsAdmin reports whether the role may manage the catalog
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User is a catalog account
type User struct {
	BaseModel
	Username string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password string `gorm:"type:varchar(100);not null" json:"-"` // bcrypt hash, never serialized
	Role     Role   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
}

// Profile is the authenticated user's own view of the account
type Profile struct {
	User      *User  `json:"user"`
	Favorites []uint `json:"favorites"`
}
