package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/techhub/storefront/internal/config"
	"github.com/techhub/storefront/internal/constants"
	"github.com/techhub/storefront/internal/errors"
	"github.com/techhub/storefront/internal/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TokenFunc supplies the current bearer credential, or "" when anonymous.
// It is called fresh on every request so a mid-session logout takes effect
// immediately.
type TokenFunc func() string

// Client is the shared HTTP plumbing for every backend collaborator:
// base URL resolution, bearer injection, correlation IDs, typed decoding and
// status-to-error mapping. Sub-clients (cart, catalog, auth, payments) are
// stateless request/response mappers on top of it.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
}

func NewClient(cfg config.API, token TokenFunc) *Client {
	if token == nil {
		token = func() string { return "" }
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		token: token,
	}
}

// backendError is the error shape the backend uses for non-2xx responses.
type backendError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// The catalog read endpoints are public; the token is withheld there so an
// expired credential can never break product browsing.
func isPublicGet(method, path string) bool {
	return method == http.MethodGet &&
		(strings.HasPrefix(path, "/productos") || strings.HasPrefix(path, "/categorias"))
}

// do issues a JSON request and decodes the response into out (out may be nil
// for empty-body endpoints). All failures come back as *errors.AppError.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {

	var reqBody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.InternalError("Failed to encode request body").WithError(err)
		}

		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.InternalError("Failed to build request").WithError(err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := c.token(); token != "" && !isPublicGet(method, path) {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.GatewayRequest(method, 0, time.Since(start))
		slog.Warn("Backend request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)

		return errors.NetworkError(constants.MsgServerError).WithError(err)
	}

	defer resp.Body.Close()

	metrics.GatewayRequest(method, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 400 {
		return c.statusError(resp, method, path)
	}

	if out == nil {
		return nil
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	if err := decoder.Decode(out); err != nil {
		slog.Error("Backend response did not match expected schema",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)

		return errors.DecodeError("Unexpected response from server").WithError(err)
	}

	return nil
}

func (c *Client) statusError(resp *http.Response, method, path string) error {

	var detail string

	var backendErr backendError

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if readErr == nil && json.Unmarshal(data, &backendErr) == nil {
		if backendErr.Message != "" {
			detail = backendErr.Message
		} else {
			detail = backendErr.Error
		}
	}

	slog.Warn("Backend rejected request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.String("detail", detail),
	)

	var appErr *errors.AppError

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		appErr = errors.UnauthorizedError(constants.MsgSessionExpired)
	case resp.StatusCode == http.StatusForbidden:
		appErr = errors.ForbiddenError("Operación no permitida")
	case resp.StatusCode == http.StatusNotFound:
		appErr = errors.NotFoundError("Recurso no encontrado")
	case resp.StatusCode >= 500:
		appErr = errors.NetworkError(constants.MsgServerError)
	default:
		appErr = errors.BadRequestError(fmt.Sprintf("Solicitud rechazada (%d)", resp.StatusCode))
	}

	return appErr.WithDetail(detail)
}
