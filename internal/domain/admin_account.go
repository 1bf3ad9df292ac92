package domain

// AdminAccount is an admin login managed through the admins endpoints.
type AdminAccount struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	FullName    string   `json:"full_name,omitempty"`
	Role        Role     `json:"role"`
	IsActive    bool     `json:"is_active"`
	LastLogin   *string  `json:"last_login"`
	Permissions []string `json:"permissions"`
}

// NewAdminAccount is the payload for creating an admin account.
type NewAdminAccount struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	FullName    string   `json:"full_name"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
}
