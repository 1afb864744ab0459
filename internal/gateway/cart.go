package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// CartAPI maps the four remote cart operations onto HTTP calls. It holds no
// state and does not validate or interpret the server's answer; failures
// surface unmodified for the reconciliation engine to handle.
type CartAPI interface {
	AddItem(ctx context.Context, productID, quantity int64) (*CartSnapshot, error)
	GetCart(ctx context.Context) (*CartSnapshot, error)
	RemoveItem(ctx context.Context, productID int64) error
	UpdateItems(ctx context.Context, updates []ItemUpdate) (*CartSnapshot, error)
}

type cartAPI struct {
	client *Client
}

func NewCartAPI(client *Client) CartAPI {
	return &cartAPI{client: client}
}

func (c *cartAPI) AddItem(ctx context.Context, productID, quantity int64) (*CartSnapshot, error) {

	payload := addToCarritoRequest{ProductoID: productID, Cantidad: quantity}

	var resp carritoResponse

	if err := c.client.do(ctx, http.MethodPost, "/carrito/agregar", payload, &resp); err != nil {
		return nil, err
	}

	return resp.toSnapshot(), nil
}

func (c *cartAPI) GetCart(ctx context.Context) (*CartSnapshot, error) {

	var resp carritoResponse

	if err := c.client.do(ctx, http.MethodGet, "/carrito", nil, &resp); err != nil {
		return nil, err
	}

	return resp.toSnapshot(), nil
}

func (c *cartAPI) RemoveItem(ctx context.Context, productID int64) error {
	return c.client.do(ctx, http.MethodDelete, fmt.Sprintf("/carrito/eliminar/%d", productID), nil, nil)
}

func (c *cartAPI) UpdateItems(ctx context.Context, updates []ItemUpdate) (*CartSnapshot, error) {

	payload := actualizarCarritoRequest{Items: make([]addToCarritoRequest, 0, len(updates))}

	for _, u := range updates {
		payload.Items = append(payload.Items, addToCarritoRequest{ProductoID: u.ProductID, Cantidad: u.Quantity})
	}

	var resp carritoResponse

	if err := c.client.do(ctx, http.MethodPut, "/carrito/actualizar", payload, &resp); err != nil {
		return nil, err
	}

	return resp.toSnapshot(), nil
}
