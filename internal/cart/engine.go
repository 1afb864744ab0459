package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/techhub/storefront/internal/constants"
	"github.com/techhub/storefront/internal/errors"
	"github.com/techhub/storefront/internal/gateway"
	"github.com/techhub/storefront/internal/kvstore"
	"github.com/techhub/storefront/internal/metrics"
	"github.com/techhub/storefront/internal/models"
	"github.com/techhub/storefront/internal/money"
	"github.com/techhub/storefront/internal/notify"
)

// SessionFunc supplies the current principal, or nil when anonymous. The
// engine calls it fresh on every operation; a mid-session logout changes the
// behavior of the very next call.
type SessionFunc func() *models.User

// Engine is the single authoritative in-memory view of the cart. Anonymous
// operations mutate local state backed by the persisted store; authenticated
// operations delegate to the remote cart resource and resync from its
// answers. Every observed mutation is written through to the store, so
// persistence never lags the in-memory view.
//
// The mutex is held across a whole operation, network round-trip included:
// one operation owns the cart at a time, and each server response is applied
// before the next operation starts.
type Engine struct {
	mu       sync.Mutex
	items    []models.CartItem
	open     bool
	session  SessionFunc
	api      gateway.CartAPI
	store    kvstore.Store
	notifier notify.Notifier
}

func NewEngine(ctx context.Context, api gateway.CartAPI, store kvstore.Store, notifier notify.Notifier, session SessionFunc) *Engine {
	if session == nil {
		session = func() *models.User { return nil }
	}

	e := &Engine{
		session:  session,
		api:      api,
		store:    store,
		notifier: notifier,
	}

	var saved []models.CartItem

	found, err := store.Get(ctx, constants.StorageKeyCart, &saved)
	if err != nil {
		slog.Warn("Failed to restore cart from storage", slog.String("error", err.Error()))
	} else if found {
		e.items = saved
	}

	metrics.SetCartItems(len(e.items))

	return e
}

func (e *Engine) authenticated() bool {
	user := e.session()

	return user != nil && user.Token != ""
}

func (e *Engine) mode() models.CartMode {
	if e.authenticated() {
		return models.CartModeServer
	}

	return models.CartModeLocal
}

// AddItem puts one unit of the product into the cart.
func (e *Engine) AddItem(ctx context.Context, product models.Product) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	mode := string(e.mode())

	if product.Stock <= 0 {
		e.notifier.Warning(constants.MsgNoStock)
		metrics.CartOperation("add", mode, "rejected")

		return errors.OutOfStockError(constants.MsgNoStock)
	}

	if e.authenticated() {
		// No optimistic mutation here: the server's returned cart replaces
		// the whole collection on success, nothing changes on failure.
		snapshot, err := e.api.AddItem(ctx, product.ID, 1)
		if err != nil {
			e.notifyFailure(err)
			metrics.CartOperation("add", mode, "error")

			return err
		}

		e.applySnapshotLocked(ctx, snapshot)
		e.notifier.Success(constants.MsgProductAdded)
		metrics.CartOperation("add", mode, "ok")

		return nil
	}

	if idx := e.indexOfLocked(product.ID); idx >= 0 {
		if e.items[idx].Quantity+1 > product.Stock {
			e.notifier.Warning(constants.MsgMaxStockReached)
			metrics.CartOperation("add", mode, "rejected")

			return errors.OutOfStockError(constants.MsgMaxStockReached)
		}

		e.items[idx].Quantity++
	} else {
		e.items = append(e.items, models.CartItem{Product: product, Quantity: 1})
	}

	e.persistLocked(ctx)
	e.notifier.Success(constants.MsgProductAdded)
	metrics.CartOperation("add", mode, "ok")

	return nil
}

// RemoveItem drops the product from the cart entirely. In authenticated mode
// the removal is always followed by a reconciling read, whatever the delete
// call returned.
func (e *Engine) RemoveItem(ctx context.Context, productID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.removeLocked(ctx, productID)
}

func (e *Engine) removeLocked(ctx context.Context, productID int64) error {
	mode := string(e.mode())

	if e.authenticated() {
		removeErr := e.api.RemoveItem(ctx, productID)
		if removeErr != nil {
			e.notifyFailure(removeErr)
		}

		refetchErr := e.loadLocked(ctx)

		if removeErr != nil {
			metrics.CartOperation("remove", mode, "error")

			return removeErr
		}

		if refetchErr != nil {
			metrics.CartOperation("remove", mode, "error")

			return refetchErr
		}

		metrics.CartOperation("remove", mode, "ok")

		return nil
	}

	filtered := e.items[:0]

	for _, item := range e.items {
		if item.Product.ID != productID {
			filtered = append(filtered, item)
		}
	}

	e.items = filtered
	e.persistLocked(ctx)
	metrics.CartOperation("remove", mode, "ok")

	return nil
}

// SetQuantity applies a new quantity to the matching item. Zero or negative
// quantities (or forceRemove) degrade to removal. In authenticated mode the
// new quantity is applied optimistically and a failed server update is rolled
// back by refetching the authoritative cart, not by restoring a remembered
// value; the brief flicker is accepted behavior.
func (e *Engine) SetQuantity(ctx context.Context, productID, quantity int64, forceRemove bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if forceRemove || quantity <= 0 {
		return e.removeLocked(ctx, productID)
	}

	mode := string(e.mode())

	if idx := e.indexOfLocked(productID); idx >= 0 {
		e.items[idx].Quantity = quantity
		e.persistLocked(ctx)
	}

	if !e.authenticated() {
		metrics.CartOperation("set_quantity", mode, "ok")

		return nil
	}

	_, err := e.api.UpdateItems(ctx, []gateway.ItemUpdate{{ProductID: productID, Quantity: quantity}})
	if err != nil {
		e.notifyFailure(err)

		// Discard the optimistic value by refetching, whatever the server
		// currently holds wins.
		if loadErr := e.loadLocked(ctx); loadErr != nil {
			slog.Warn("Failed to refetch cart after update failure", slog.String("error", loadErr.Error()))
		}

		metrics.CartOperation("set_quantity", mode, "error")

		return err
	}

	metrics.CartOperation("set_quantity", mode, "ok")

	return nil
}

// IncrementQuantity raises the matching item's quantity by one. No-op when
// the item is absent; in anonymous mode the captured stock caps the value.
func (e *Engine) IncrementQuantity(ctx context.Context, productID int64) error {
	e.mu.Lock()

	idx := e.indexOfLocked(productID)
	if idx < 0 {
		e.mu.Unlock()

		return nil
	}

	item := e.items[idx]

	if !e.authenticated() && item.Product.Stock > 0 && item.Quantity+1 > item.Product.Stock {
		e.notifier.Warning(constants.MsgMaxStockReached)
		metrics.CartOperation("increment", string(e.mode()), "rejected")
		e.mu.Unlock()

		return errors.OutOfStockError(constants.MsgMaxStockReached)
	}

	quantity := item.Quantity + 1
	e.mu.Unlock()

	return e.SetQuantity(ctx, productID, quantity, false)
}

// DecrementQuantity lowers the matching item's quantity by one; reaching zero
// removes the item. No-op when the item is absent.
func (e *Engine) DecrementQuantity(ctx context.Context, productID int64) error {
	e.mu.Lock()

	idx := e.indexOfLocked(productID)
	if idx < 0 {
		e.mu.Unlock()

		return nil
	}

	quantity := e.items[idx].Quantity - 1
	e.mu.Unlock()

	return e.SetQuantity(ctx, productID, quantity, false)
}

// Clear empties the in-memory collection unconditionally. No server call;
// logout relies on this.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
	e.persistLocked(ctx)
	metrics.CartOperation("clear", string(e.mode()), "ok")
}

// LoadFromServer replaces the in-memory collection with the authoritative
// server cart. No-op when anonymous. A failed fetch leaves the previous
// state untouched.
func (e *Engine) LoadFromServer(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.authenticated() {
		return nil
	}

	return e.loadLocked(ctx)
}

func (e *Engine) loadLocked(ctx context.Context) error {
	snapshot, err := e.api.GetCart(ctx)
	if err != nil {
		e.notifier.Error(constants.MsgLoadingError)

		return err
	}

	e.applySnapshotLocked(ctx, snapshot)

	return nil
}

// applySnapshotLocked maps the server's cart representation into the local
// shape and replaces the whole collection (full resync, not merge). The cart
// endpoint does not enumerate stock or category, so those default to
// zero/empty on synced items.
func (e *Engine) applySnapshotLocked(ctx context.Context, snapshot *gateway.CartSnapshot) {
	items := make([]models.CartItem, 0, len(snapshot.Items))

	for _, line := range snapshot.Items {
		if line.Quantity <= 0 {
			continue
		}

		items = append(items, models.CartItem{
			Product: models.Product{
				ID:          line.ProductID,
				Name:        line.Name,
				Description: line.Description,
				Price:       line.Price,
				ImageURL:    line.ImageURL,
			},
			Quantity: line.Quantity,
		})
	}

	e.items = items
	e.persistLocked(ctx)
}

func (e *Engine) persistLocked(ctx context.Context) {
	if err := e.store.Set(ctx, constants.StorageKeyCart, e.items); err != nil {
		// Persistence trouble must never break a cart operation.
		slog.Warn("Failed to persist cart", slog.String("error", err.Error()))
	}

	metrics.SetCartItems(len(e.items))
}

func (e *Engine) indexOfLocked(productID int64) int {
	for i, item := range e.items {
		if item.Product.ID == productID {
			return i
		}
	}

	return -1
}

func (e *Engine) notifyFailure(err error) {
	if appErr, ok := errors.IsAppError(err); ok {
		e.notifier.Error(appErr.Message)

		return
	}

	e.notifier.Error(constants.MsgServerError)
}

// Items returns a snapshot copy of the current collection.
func (e *Engine) Items() []models.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.CartItem, len(e.items))
	copy(out, e.items)

	return out
}

// Count is the sum of quantities over all items.
func (e *Engine) Count() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	var count int64

	for _, item := range e.items {
		count += item.Quantity
	}

	return count
}

// Total is the sum of price times quantity over all items, recomputed on
// every call so it can never go stale.
func (e *Engine) Total() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return money.Total(e.items)
}

// Mode reports whether operations currently run against local storage or the
// server-backed cart.
func (e *Engine) Mode() models.CartMode {
	return e.mode()
}

// Visibility flag for the cart sidebar. UI state only, not part of the
// reconciliation contract.

func (e *Engine) Toggle() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.open = !e.open
}

func (e *Engine) Open() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.open = true
}

func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.open = false
}

func (e *Engine) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.open
}
