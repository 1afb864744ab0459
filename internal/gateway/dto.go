package gateway

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/techhub/storefront/internal/models"
)

// The backend speaks Spanish field names; the wire shapes live here and
// nowhere else. Everything crossing this boundary is decoded into a strongly
// typed value or rejected with a decode error.

// copNumber tolerates prices transmitted either as a JSON number or as a
// string-shaped decimal (the backend serializes BigDecimal inconsistently).
type copNumber float64

func (n *copNumber) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		value, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("price %q is not numeric: %w", s, err)
		}

		*n = copNumber(value)

		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	*n = copNumber(value)

	return nil
}

type productoResponse struct {
	IDProducto      int64     `json:"idProducto"`
	Nombre          string    `json:"nombre"`
	Descripcion     string    `json:"descripcion"`
	Precio          copNumber `json:"precio"`
	Stock           int64     `json:"stock"`
	CategoriaID     int64     `json:"categoriaId"`
	CategoriaNombre string    `json:"categoriaNombre"`
	ImagenURL       string    `json:"imagenUrl"`
}

type productoRequest struct {
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion,omitempty"`
	Precio      float64 `json:"precio"`
	Stock       int64   `json:"stock"`
	CategoriaID int64   `json:"categoriaId"`
	ImagenURL   string  `json:"imagenUrl,omitempty"`
}

type categoriaResponse struct {
	IDCategoria int64  `json:"idCategoria"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

type addToCarritoRequest struct {
	ProductoID int64 `json:"productoId"`
	Cantidad   int64 `json:"cantidad"`
}

type actualizarCarritoRequest struct {
	Items []addToCarritoRequest `json:"items"`
}

type carritoItemResponse struct {
	ProductoID          int64     `json:"productoId"`
	NombreProducto      string    `json:"nombreProducto"`
	DescripcionProducto string    `json:"descripcionProducto"`
	Cantidad            int64     `json:"cantidad"`
	Precio              copNumber `json:"precio"`
	ImagenURL           string    `json:"imagenUrl"`
}

type carritoResponse struct {
	CarritoID int64                 `json:"carritoId"`
	Items     []carritoItemResponse `json:"items"`
}

type loginRequest struct {
	Correo     string `json:"correo"`
	Contrasena string `json:"contrasena"`
}

type registerRequest struct {
	Correo      string `json:"correo"`
	Contrasena  string `json:"contrasena"`
	Nombre      string `json:"nombre"`
	Telefono    string `json:"telefono,omitempty"`
	Direccion   string `json:"direccion,omitempty"`
	CodigoAdmin string `json:"codigoAdmin,omitempty"`
}

type authResponse struct {
	Token  string `json:"token"`
	Correo string `json:"correo"`
	Rol    string `json:"rol"`
}

// CartSnapshot is the server's native cart representation, decoded but not
// interpreted. The cart engine maps it into the local item shape.
type CartSnapshot struct {
	CartID int64
	Items  []CartLine
}

// CartLine carries what the cart endpoint enumerates per item. Stock and
// category are not part of the server cart shape; callers must not rely on
// them after a pure cart sync.
type CartLine struct {
	ProductID   int64
	Name        string
	Description string
	Price       float64
	Quantity    int64
	ImageURL    string
}

// ItemUpdate is one (product, quantity) pair of a bulk cart update.
type ItemUpdate struct {
	ProductID int64
	Quantity  int64
}

var sanitizer = bluemonday.StrictPolicy()

func (r carritoResponse) toSnapshot() *CartSnapshot {
	snapshot := &CartSnapshot{CartID: r.CarritoID}

	for _, item := range r.Items {
		snapshot.Items = append(snapshot.Items, CartLine{
			ProductID:   item.ProductoID,
			Name:        sanitizer.Sanitize(item.NombreProducto),
			Description: sanitizer.Sanitize(item.DescripcionProducto),
			Price:       float64(item.Precio),
			Quantity:    item.Cantidad,
			ImageURL:    item.ImagenURL,
		})
	}

	return snapshot
}

func (r productoResponse) toProduct() models.Product {
	return models.Product{
		ID:          r.IDProducto,
		Name:        sanitizer.Sanitize(r.Nombre),
		Description: sanitizer.Sanitize(r.Descripcion),
		Price:       float64(r.Precio),
		ImageURL:    r.ImagenURL,
		Category:    r.CategoriaNombre,
		CategoryID:  r.CategoriaID,
		Stock:       r.Stock,
	}
}

func (r categoriaResponse) toCategory() models.Category {
	return models.Category{
		ID:          r.IDCategoria,
		Name:        sanitizer.Sanitize(r.Nombre),
		Description: sanitizer.Sanitize(r.Descripcion),
	}
}
