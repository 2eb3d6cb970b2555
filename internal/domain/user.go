package domain

// UserRole separates administrators from regular recruiters.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// User is a staff member of the recruiting team (hf_users table).
type User struct {
	ID        uint     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username  string   `gorm:"column:username;uniqueIndex" json:"username"`
	Password  string   `gorm:"column:password" json:"-"`
	Role      UserRole `gorm:"column:role" json:"role"`
	Specialty string   `gorm:"column:specialty" json:"specialty"`
}

func (User) TableName() string {
	return "hf_users"
}

// LoginRequest is an email/password sign-in attempt.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and the signed-in user.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UserRequest creates or updates a staff member.
type UserRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password"`
	Specialty string `json:"specialty"`
}
