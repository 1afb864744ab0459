package models

// CartItem pairs a product snapshot with a quantity.
// Invariants kept by the cart engine: Quantity >= 1, and at most one item per
// product ID within a cart.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
}

// CartMode says whether cart operations are served from local persisted
// storage (anonymous) or the remote cart resource (authenticated).
type CartMode string

const (
	CartModeLocal  CartMode = "local"
	CartModeServer CartMode = "server"
)
