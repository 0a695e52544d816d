package user

type User struct {
	ID           int    `json:"id" db:"user_id"`
	Username     string `json:"username" db:"username"`
	Role         string `json:"role" db:"role"`
	PasswordHash []byte `json:"-" db:"password_hash"`
}

type UserNew struct {
	Username        string `json:"username" validate:"required,gte=3,lte=30"`
	Password        string `json:"password" validate:"required,gte=8,lte=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type UserLogin struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
