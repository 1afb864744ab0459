package models

// Product is a read-only snapshot from the catalog. The price is captured at
// add-time and is not re-validated against the latest catalog price unless a
// server resync occurs.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Category    string  `json:"category"`
	CategoryID  int64   `json:"categoryId,omitempty"`
	Stock       int64   `json:"stock"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductFormData carries the editable fields of a product (admin forms).
type ProductFormData struct {
	Name        string  `json:"name" validate:"required,min=3,max=200"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	ImageURL    string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
	CategoryID  int64   `json:"categoryId" validate:"required"`
	Stock       int64   `json:"stock" validate:"gte=0"`
}
