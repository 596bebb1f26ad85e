package dto

import "github.com/sipstop/backend/internal/entity"

// User is the outward-facing projection of a user record, with the password
// hash stripped.
type User struct {
	Id    int             `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  entity.UserRole `json:"role"`
}

func UserFromEntity(u *entity.User) User {
	return User{
		Id:    u.Id,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func UsersFromEntities(users []entity.User) []User {
	out := make([]User, 0, len(users))
	for i := range users {
		out = append(out, UserFromEntity(&users[i]))
	}
	return out
}
