// internal/platform/di/container.go
package di

import (
	"log"
	"net/http"

	orderapi "tableside/internal/adapters/in/http/orderapi"
	orderapiHandler "tableside/internal/adapters/in/http/orderapi/handler"
	"tableside/internal/adapters/out/memory"
	"tableside/internal/adapters/out/sqlite"
	usecase "tableside/internal/application/usecase"
	cartdom "tableside/internal/domain/cart"
	"tableside/internal/domain/menu"
	"tableside/internal/platform/bus"
	"tableside/internal/platform/config"
)

// Container wires the reference cart service: repository -> usecase ->
// handlers -> mux, with the bus feeding the event stream.
type Container struct {
	Bus     *bus.Bus
	Repo    cartdom.Repository
	Usecase *usecase.CartUsecase
	Handler http.Handler

	closers []func() error
}

// NewContainer builds the service per cfg.
func NewContainer(cfg config.Config) (*Container, error) {
	c := &Container{Bus: bus.New()}

	switch cfg.Backend {
	case config.BackendSQLite:
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		c.Repo = repo
		c.closers = append(c.closers, repo.Close)
		log.Printf("[di] cart repository backend=sqlite path=%s", cfg.SQLitePath)
	default:
		c.Repo = memory.NewCartRepositoryMem()
		log.Printf("[di] cart repository backend=memory")
	}

	c.Usecase = usecase.NewCartUsecase(c.Repo, DefaultCatalog(), c.Bus)

	mux := http.NewServeMux()
	orderapi.Register(mux, orderapi.Deps{
		Cart:   orderapiHandler.NewCartHandler(c.Usecase),
		Events: orderapiHandler.NewEventsHandler(c.Bus),
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	c.Handler = mux

	return c, nil
}

// Close releases backend resources.
func (c *Container) Close() error {
	var first error
	c.Bus.Close()
	for _, fn := range c.closers {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// DefaultCatalog is the built-in demo menu of the reference service.
func DefaultCatalog() *menu.Catalog {
	return menu.NewCatalog([]menu.Item{
		{
			ID:        "menu-burger",
			Name:      "Classic Burger",
			BasePrice: 1000,
			Options: []menu.CustomizationOption{
				{ID: "opt-cheese", Name: "Extra Cheese", Price: 150},
				{ID: "opt-bacon", Name: "Bacon", Price: 250},
			},
		},
		{
			ID:        "menu-fries",
			Name:      "Fries",
			BasePrice: 450,
			Options: []menu.CustomizationOption{
				{ID: "opt-truffle", Name: "Truffle Salt", Price: 100},
			},
		},
		{
			ID:        "menu-cola",
			Name:      "Cola",
			BasePrice: 350,
		},
	})
}
