package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/techhub/storefront/internal/errors"
	"github.com/techhub/storefront/internal/models"
)

// Catalog covers the public product/category reads plus the admin CRUD the
// storefront's admin panel uses.
type Catalog interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)

	CreateProduct(ctx context.Context, form *models.ProductFormData) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, form *models.ProductFormData) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type catalog struct {
	client    *Client
	validator *validator.Validate
}

func NewCatalog(client *Client) Catalog {
	return &catalog{
		client:    client,
		validator: validator.New(),
	}
}

func (c *catalog) ListProducts(ctx context.Context) ([]models.Product, error) {

	var resp []productoResponse

	if err := c.client.do(ctx, http.MethodGet, "/productos", nil, &resp); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(resp))

	for _, p := range resp {
		products = append(products, p.toProduct())
	}

	return products, nil
}

func (c *catalog) GetProduct(ctx context.Context, id int64) (*models.Product, error) {

	var resp productoResponse

	if err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/productos/%d", id), nil, &resp); err != nil {
		return nil, err
	}

	product := resp.toProduct()

	return &product, nil
}

func (c *catalog) ListCategories(ctx context.Context) ([]models.Category, error) {

	var resp []categoriaResponse

	if err := c.client.do(ctx, http.MethodGet, "/categorias", nil, &resp); err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(resp))

	for _, cat := range resp {
		categories = append(categories, cat.toCategory())
	}

	return categories, nil
}

func (c *catalog) GetCategory(ctx context.Context, id int64) (*models.Category, error) {

	var resp categoriaResponse

	if err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/categorias/%d", id), nil, &resp); err != nil {
		return nil, err
	}

	category := resp.toCategory()

	return &category, nil
}

func (c *catalog) CreateProduct(ctx context.Context, form *models.ProductFormData) (*models.Product, error) {

	if err := c.validator.Struct(form); err != nil {
		return nil, errors.ValidationError("Invalid product data").WithError(err)
	}

	var resp productoResponse

	if err := c.client.do(ctx, http.MethodPost, "/productos", formToRequest(form), &resp); err != nil {
		return nil, err
	}

	product := resp.toProduct()

	return &product, nil
}

func (c *catalog) UpdateProduct(ctx context.Context, id int64, form *models.ProductFormData) (*models.Product, error) {

	if err := c.validator.Struct(form); err != nil {
		return nil, errors.ValidationError("Invalid product data").WithError(err)
	}

	var resp productoResponse

	if err := c.client.do(ctx, http.MethodPut, fmt.Sprintf("/productos/%d", id), formToRequest(form), &resp); err != nil {
		return nil, err
	}

	product := resp.toProduct()

	return &product, nil
}

func (c *catalog) DeleteProduct(ctx context.Context, id int64) error {
	return c.client.do(ctx, http.MethodDelete, fmt.Sprintf("/productos/%d", id), nil, nil)
}

func formToRequest(form *models.ProductFormData) productoRequest {
	return productoRequest{
		Nombre:      form.Name,
		Descripcion: form.Description,
		Precio:      form.Price,
		Stock:       form.Stock,
		CategoriaID: form.CategoryID,
		ImagenURL:   form.ImageURL,
	}
}
