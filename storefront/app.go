// Package storefront is the command-line shop front: it renders the catalog, drives the
// cart and runs checkout against the backend API.
package storefront

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"lessence/cart"
	"lessence/catalog"
	"lessence/checkout"
	"lessence/config"
	"lessence/storage"
	"lessence/utils"
)

// App holds the collaborators every command needs
type App struct {
	Source     catalog.Source
	Slots      storage.KeyValueStore
	Reconciler checkout.StockReconciler
	Channel    checkout.MessagingChannel
	Out        io.Writer
	Logger     *zap.Logger
}

// Run builds an App from the environment and executes args. Output goes to out.
func Run(ctx context.Context, args []string, out io.Writer, logger *zap.Logger) error {
	config.LoadDotEnv()
	cfg, err := config.LoadStorefront()
	if err != nil {
		return err
	}

	app, cleanup, err := New(ctx, cfg, out, logger)
	if err != nil {
		return err
	}
	defer cleanup()
	return app.Execute(ctx, args)
}

// New wires an App from cfg. The returned func releases any database connection.
func New(ctx context.Context, cfg config.Storefront, out io.Writer, logger *zap.Logger) (*App, func(), error) {
	app := &App{
		Source:     catalog.NewHTTPSource(cfg.APIURL, http.DefaultClient),
		Reconciler: checkout.NewHTTPReconciler(cfg.APIURL, http.DefaultClient),
		Out:        out,
		Logger:     logger,
	}
	cleanup := func() {}

	switch cfg.CartBackend {
	case config.CartBackendMongo:
		client, err := utils.ConnectDB(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open cart store")
		}
		app.Slots = storage.NewMongoStore(client, cfg.MongoDatabase, "storefront")
		cleanup = func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("failed to disconnect mongo", zap.Error(err))
			}
		}
	default:
		app.Slots = storage.NewFileStore(cfg.CartDir)
	}

	switch cfg.Channel {
	case config.ChannelEmail:
		mailer, err := utils.NewEmailService(cfg.SendGridAPIKey, cfg.EmailSender, logger)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		app.Channel = &checkout.EmailChannel{Mailer: mailer, To: cfg.OrderEmailTo}
	default:
		app.Channel = checkout.NewWhatsAppChannel(cfg.WhatsAppNumber, app.openLink)
	}

	return app, cleanup, nil
}

// openLink prints the hand-off link, since the browser may not come up, and then opens it
func (a *App) openLink(url string) error {
	fmt.Fprintf(a.Out, "Send your order on WhatsApp: %s\n", url)
	return checkout.OpenBrowser(url)
}

// loadCatalog fetches the product list. A failure is printed and yields an empty catalog
// with ok false.
func (a *App) loadCatalog(ctx context.Context) (store *catalog.Store, ok bool) {
	store, err := catalog.Load(ctx, a.Source, a.Logger)
	if err != nil {
		fmt.Fprintln(a.Out, "Failed to load products. Please check if backend is running.")
		return store, false
	}
	return store, true
}

func (a *App) openCart(ctx context.Context, products cart.Catalog) *cart.Store {
	if products == nil {
		products = catalog.NewStore(nil)
	}
	return cart.NewStore(ctx, products, a.Slots, a.Logger)
}
