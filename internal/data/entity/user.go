package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	Username     string   `db:"username"`
	Email        *string  `db:"email"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
	TotalSpent   int64    `db:"total_spent"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
