package user

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

type User struct {
	Id          int
	Uid         string
	Email       string
	DisplayName string
	// Role is persisted for future use; no endpoint branches on it.
	Role         Role
	PasswordHash string
}
