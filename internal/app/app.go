package app

import (
	"context"
	"log"
	"time"

	"github.com/Abusayem99133/kacha-bazaar/internal/admin"
	"github.com/Abusayem99133/kacha-bazaar/internal/cart"
	"github.com/Abusayem99133/kacha-bazaar/internal/catalog"
	"github.com/Abusayem99133/kacha-bazaar/internal/checkout"
	"github.com/Abusayem99133/kacha-bazaar/internal/config"
	"github.com/Abusayem99133/kacha-bazaar/internal/remote"
	"github.com/Abusayem99133/kacha-bazaar/internal/repository"
	"github.com/Abusayem99133/kacha-bazaar/internal/session"
)

// App is the composed client state: one remote client, the table
// gateways and every stateful service, wired together with explicit
// lifecycle instead of ambient globals.
type App struct {
	Remote   *remote.Client
	Products repository.ProductRepository
	Orders   repository.OrderRepository

	Session  *session.Service
	Catalog  *catalog.Service
	Cart     *cart.Service
	Checkout *checkout.Service
	Admin    *admin.Service

	unsubSession func()
}

func New(cfg config.Config) *App {
	client := remote.New(remote.Config{
		BaseURL: cfg.RemoteURL,
		AnonKey: cfg.RemoteAnonKey,
		Timeout: cfg.RequestTimeout,
	})

	products := repository.NewProductRepository(client)
	cartRepo := repository.NewCartRepository(client)
	orders := repository.NewOrderRepository(client)
	profiles := repository.NewProfileRepository(client)

	sess := session.NewService(client.Auth(), profiles)
	cat := catalog.NewService(products, cfg.CatalogInitialCount, cfg.CatalogIncrement)
	crt := cart.NewService(sess, cartRepo)
	chk := checkout.NewService(sess, crt, orders, products)
	adm := admin.NewService(sess, products, orders, profiles)

	return &App{
		Remote:   client,
		Products: products,
		Orders:   orders,
		Session:  sess,
		Catalog:  cat,
		Cart:     crt,
		Checkout: chk,
		Admin:    adm,
	}
}

// Init rehydrates session state, loads the catalog and cart, and wires
// the cart to rebuild on every identity change.
func (a *App) Init(ctx context.Context) error {
	if err := a.Session.Init(ctx); err != nil {
		return err
	}
	if err := a.Catalog.Refresh(ctx); err != nil {
		return err
	}
	if err := a.Cart.Refresh(ctx); err != nil {
		return err
	}

	a.unsubSession = a.Session.Subscribe(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Cart.Refresh(ctx); err != nil {
			log.Printf("refresh cart after auth change: %v", err)
		}
	})
	return nil
}

// Close tears down subscriptions.
func (a *App) Close() {
	if a.unsubSession != nil {
		a.unsubSession()
		a.unsubSession = nil
	}
	a.Session.Close()
}
