package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/techhub/storefront/internal/account"
	"github.com/techhub/storefront/internal/cart"
	"github.com/techhub/storefront/internal/checkout"
	"github.com/techhub/storefront/internal/config"
	"github.com/techhub/storefront/internal/constants"
	"github.com/techhub/storefront/internal/gateway"
	"github.com/techhub/storefront/internal/health"
	"github.com/techhub/storefront/internal/kvstore"
	"github.com/techhub/storefront/internal/models"
	"github.com/techhub/storefront/internal/money"
	"github.com/techhub/storefront/internal/notify"
	"github.com/techhub/storefront/internal/session"
	"github.com/techhub/storefront/internal/telemetry"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Warn("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
		}
	}()

	// Storage setup
	store, err := newStore(cfg)
	if err != nil {
		slog.Error("❌ Error initializing storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("⚠️ Error closing storage", slog.String("error", err.Error()))
		}
	}()

	sessions := session.NewManager(ctx, store)

	if sessions.TokenExpired() {
		slog.Warn("Stored session token has expired, clearing session")

		if err := sessions.Clear(ctx); err != nil {
			slog.Warn("Failed to clear expired session", slog.String("error", err.Error()))
		}
	}

	notifier := notify.NewSlogNotifier(logger)

	client := gateway.NewClient(cfg.API, sessions.Token)
	cartAPI := gateway.NewCartAPI(client)
	catalogAPI := gateway.NewCatalog(client)
	authAPI := gateway.NewAuth(client)
	paymentsAPI := gateway.NewPayments(client)

	engine := cart.NewEngine(ctx, cartAPI, store, notifier, sessions.Current)
	accounts := account.NewService(authAPI, sessions, engine, notifier)
	payments := checkout.NewService(paymentsAPI, sessions, engine, notifier, cfg.Payments)

	slog.Info("Storefront initialized",
		slog.String("env", cfg.Env),
		slog.String("api", cfg.API.BaseURL),
		slog.String("mode", string(engine.Mode())),
	)

	app := &cli{
		cfg:      cfg,
		catalog:  catalogAPI,
		cart:     engine,
		accounts: accounts,
		payments: payments,
		sessions: sessions,
	}

	args := os.Args[1:]
	if flag.Parsed() {
		args = flag.Args()
	}

	if err := app.run(ctx, args); err != nil {
		slog.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Storage.Backend {
	case "file":
		return kvstore.NewFileStore(cfg.Storage.Path)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		return kvstore.NewRedisStore(client, "storefront"), nil
	case "none":
		return kvstore.NewNoopStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

type cli struct {
	cfg      *config.Config
	catalog  gateway.Catalog
	cart     *cart.Engine
	accounts *account.Service
	payments *checkout.Service
	sessions *session.Manager
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.usage()
	}

	switch args[0] {
	case "products":
		return c.listProducts(ctx)
	case "product":
		return c.showProduct(ctx, args[1:])
	case "categories":
		return c.listCategories(ctx)
	case "cart":
		return c.cartCommand(ctx, args[1:])
	case "login":
		return c.login(ctx, args[1:])
	case "register":
		return c.register(ctx, args[1:])
	case "logout":
		c.accounts.Logout(ctx)
		fmt.Println("Sesión cerrada")

		return nil
	case "whoami":
		return c.whoami()
	case "checkout":
		return c.checkout(ctx)
	case "confirm":
		return c.confirm(ctx, args[1:])
	case "status":
		return c.status(ctx, args[1:])
	case "health":
		return c.health()
	default:
		return c.usage()
	}
}

func (c *cli) usage() error {
	fmt.Fprintln(os.Stderr, `usage: storefront <command>

  products                list the catalog
  product <id>            show one product
  categories              list categories
  cart                    show the cart
  cart add <id>           add one unit of a product
  cart rm <id>            remove a product
  cart set <id> <qty>     set a quantity
  cart clear              empty the cart
  cart sync               pull the server cart (authenticated)
  login <email> <pass>    sign in
  register <email> <pass> <name>
  logout                  sign out
  whoami                  show the current session
  checkout                start a PSE payment for the cart
  confirm <reference>     settle a returning PSE payment
  status <reference>      poll a PSE payment
  health                  check collaborator reachability`)

	return fmt.Errorf("missing or unknown command")
}

func (c *cli) listProducts(ctx context.Context) error {
	products, err := c.catalog.ListProducts(ctx)
	if err != nil {
		return err
	}

	for _, p := range products {
		fmt.Printf("%-6d %-40s %12s  stock:%d\n", p.ID, p.Name, money.FormatCOP(p.Price), p.Stock)
	}

	return nil
}

func (c *cli) showProduct(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	p, err := c.catalog.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n%s\n%s  stock:%d  categoría:%s\n", p.Name, p.Description, money.FormatCOP(p.Price), p.Stock, p.Category)

	return nil
}

func (c *cli) listCategories(ctx context.Context) error {
	categories, err := c.catalog.ListCategories(ctx)
	if err != nil {
		return err
	}

	for _, cat := range categories {
		fmt.Printf("%-6d %s\n", cat.ID, cat.Name)
	}

	return nil
}

func (c *cli) cartCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.showCart()
	}

	switch args[0] {
	case "add":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}

		product, err := c.catalog.GetProduct(ctx, id)
		if err != nil {
			return err
		}

		if err := c.cart.AddItem(ctx, *product); err != nil {
			return err
		}

		return c.showCart()
	case "rm":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}

		if err := c.cart.RemoveItem(ctx, id); err != nil {
			return err
		}

		return c.showCart()
	case "set":
		if len(args) < 3 {
			return fmt.Errorf("usage: cart set <id> <qty>")
		}

		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id: %s", args[1])
		}

		qty, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid quantity: %s", args[2])
		}

		if err := c.cart.SetQuantity(ctx, id, qty, false); err != nil {
			return err
		}

		return c.showCart()
	case "clear":
		c.cart.Clear(ctx)
		fmt.Println("Carrito vacío")

		return nil
	case "sync":
		if err := c.cart.LoadFromServer(ctx); err != nil {
			return err
		}

		fmt.Println(constants.MsgCartSynced)

		return c.showCart()
	default:
		return fmt.Errorf("unknown cart subcommand: %s", args[0])
	}
}

func parseID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing product id")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id: %s", args[0])
	}

	return id, nil
}

func (c *cli) showCart() error {
	items := c.cart.Items()

	if len(items) == 0 {
		fmt.Println("El carrito está vacío")

		return nil
	}

	for _, item := range items {
		fmt.Printf("%-6d %-40s x%-3d %12s\n",
			item.Product.ID,
			item.Product.Name,
			item.Quantity,
			money.FormatCOP(money.Subtotal(item.Product.Price, item.Quantity)),
		)
	}

	fmt.Printf("%51s %12s\n", "total:", money.FormatCOP(c.cart.Total()))

	return nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: login <email> <password>")
	}

	user, err := c.accounts.Login(ctx, &models.LoginRequest{Email: args[0], Password: args[1]})
	if err != nil {
		return err
	}

	fmt.Printf("Sesión iniciada como %s (%s)\n", user.Email, user.Role)

	return nil
}

func (c *cli) register(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: register <email> <password> <name>")
	}

	user, err := c.accounts.Register(ctx, &models.RegisterRequest{
		Email:    args[0],
		Password: args[1],
		Name:     args[2],
	})
	if err != nil {
		return err
	}

	fmt.Printf("Cuenta creada para %s\n", user.Email)

	return nil
}

func (c *cli) whoami() error {
	user := c.sessions.Current()
	if user == nil {
		fmt.Println("Sesión anónima")

		return nil
	}

	fmt.Printf("%s (%s)\n", user.Email, user.Role)

	if expiresAt, ok := c.sessions.TokenExpiresAt(); ok {
		fmt.Printf("token expira: %s\n", expiresAt.Format(time.RFC3339))
	}

	return nil
}

func (c *cli) checkout(ctx context.Context) error {
	resp, err := c.payments.Start(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("referencia: %s\n", resp.Reference)
	fmt.Printf("continúa el pago en: %s\n", resp.RedirectURL)

	return nil
}

func (c *cli) confirm(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: confirm <reference>")
	}

	tx, err := c.payments.Confirm(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s (%s)\n", tx.Reference, tx.Status, money.FormatCOP(tx.Amount))

	return nil
}

func (c *cli) status(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: status <reference>")
	}

	tx, err := c.payments.Status(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s (%s)\n", tx.Reference, tx.Status, money.FormatCOP(tx.Amount))

	return nil
}

func (c *cli) health() error {
	h, err := health.NewHealthHandler(c.cfg)
	if err != nil {
		return err
	}

	rec := h.Measure(context.Background())

	fmt.Printf("status: %s\n", rec.Status)

	for name, check := range rec.Failures {
		fmt.Printf("  %s: %s\n", name, check)
	}

	if rec.Status != "OK" {
		return fmt.Errorf("health check failed: %d", http.StatusServiceUnavailable)
	}

	return nil
}
