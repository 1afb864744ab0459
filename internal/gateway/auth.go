package gateway

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/techhub/storefront/internal/errors"
	"github.com/techhub/storefront/internal/models"
)

// Auth talks to the identity collaborator. Login and registration hand back
// the principal plus its opaque bearer credential; session bookkeeping is the
// account service's job, not this client's.
type Auth interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Logout(ctx context.Context)
}

type auth struct {
	client    *Client
	validator *validator.Validate
}

func NewAuth(client *Client) Auth {
	return &auth{
		client:    client,
		validator: validator.New(),
	}
}

func (a *auth) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {

	if err := a.validator.Struct(req); err != nil {
		return nil, errors.ValidationError("Invalid credentials").WithError(err)
	}

	payload := loginRequest{Correo: req.Email, Contrasena: req.Password}

	var resp authResponse

	if err := a.client.do(ctx, http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return nil, err
	}

	return &models.User{
		Email: resp.Correo,
		Role:  resp.Rol,
		Token: resp.Token,
	}, nil
}

func (a *auth) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	if err := a.validator.Struct(req); err != nil {
		return nil, errors.ValidationError("Invalid registration data").WithError(err)
	}

	payload := registerRequest{
		Correo:      req.Email,
		Contrasena:  req.Password,
		Nombre:      req.Name,
		Telefono:    req.Phone,
		Direccion:   req.Address,
		CodigoAdmin: req.AdminCode,
	}

	var resp authResponse

	if err := a.client.do(ctx, http.MethodPost, "/auth/register", payload, &resp); err != nil {
		return nil, err
	}

	return &models.User{
		Email: resp.Correo,
		Role:  resp.Rol,
		Token: resp.Token,
	}, nil
}

// Logout is a fire-and-forget notification; the session is torn down locally
// whether or not the server heard about it.
func (a *auth) Logout(ctx context.Context) {
	if err := a.client.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		slog.Debug("Server logout notification failed", slog.String("error", err.Error()))
	}
}
