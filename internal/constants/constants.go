package constants

// Storage slot keys for the client-side key-value store.
const (
	StorageKeyCart  = "cart"
	StorageKeyUser  = "user"
	StorageKeyToken = "token"
)

// Limits mirrored from the storefront UI.
const (
	MaxProductsPerPage = 50
	MaxCartQuantity    = 99
)

// User-facing messages, kept in Spanish as shipped to the Colombian store.
const (
	MsgProductAdded    = "Producto añadido al carrito"
	MsgProductRemoved  = "Producto eliminado del carrito"
	MsgCartUpdated     = "Carrito actualizado"
	MsgCartSynced      = "Carrito sincronizado"
	MsgProductCreated  = "Producto creado exitosamente"
	MsgProductUpdated  = "Producto actualizado exitosamente"
	MsgProductDeleted  = "Producto eliminado exitosamente"
	MsgLoadingError    = "Error al cargar los datos"
	MsgAuthError       = "Credenciales incorrectas"
	MsgServerError     = "Error de conexión con el servidor"
	MsgNoStock         = "Producto sin stock disponible"
	MsgMaxStockReached = "Stock máximo alcanzado"
	MsgSessionExpired  = "Tu sesión ha expirado"
	MsgPaymentError    = "Error al procesar el pago. Intenta nuevamente."
)

// DefaultCurrency is the only currency the store trades in.
const DefaultCurrency = "COP"
