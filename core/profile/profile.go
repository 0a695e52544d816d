package profile

type Profile struct {
	UserID    int    `json:"userId" db:"user_id"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Phone     string `json:"phone" db:"phone"`
	Email     string `json:"email" db:"email"`
	Address   string `json:"address" db:"address"`
	City      string `json:"city" db:"city"`
	State     string `json:"state" db:"state"`
	Zip       string `json:"zip" db:"zip"`
}

// ProfileUp carries a full overwrite of the caller's profile. The
// userId field is accepted but never trusted: the profile written is
// always the session user's own.
type ProfileUp struct {
	UserID    int    `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}
