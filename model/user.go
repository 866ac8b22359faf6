package model

type UserDTO struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// User is the logged-in account owner.
type User struct {
	ID       int
	Email    string
	Username string
}

func UserFromAPI(dto UserDTO) User {
	return User{ID: dto.ID, Email: dto.Email, Username: dto.Username}
}

func (u User) ToAPIFormat() UserDTO {
	return UserDTO{ID: u.ID, Email: u.Email, Username: u.Username}
}

// DisplayName prefers the username and falls back to the email address.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}

	return u.Email
}
