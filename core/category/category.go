package category

type Category struct {
	ID          int    `json:"id" db:"category_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

type CategoryNew struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CategoryUp carries a full overwrite: every field is persisted as
// given, there are no partial-update semantics.
type CategoryUp struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}
