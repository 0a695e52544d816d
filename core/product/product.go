package product

type Product struct {
	ID          int     `json:"id" db:"product_id"`
	Name        string  `json:"name" db:"name"`
	Price       float64 `json:"price" db:"price"`
	CategoryID  int     `json:"categoryId" db:"category_id"`
	Description string  `json:"description" db:"description"`
	Color       string  `json:"color" db:"color"`
	ImageURL    string  `json:"imageUrl" db:"image_url"`
	Stock       int     `json:"stock" db:"stock"`
	Featured    bool    `json:"featured" db:"featured"`
}

type ProductNew struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	CategoryID  int     `json:"categoryId" validate:"required,gte=1"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Featured    bool    `json:"featured"`
}

type ProductUp struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	CategoryID  int     `json:"categoryId" validate:"required,gte=1"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Featured    bool    `json:"featured"`
}
