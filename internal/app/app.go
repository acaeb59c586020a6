package app

import (
	"net/http"

	"foodgram-go/internal/config"
	"foodgram-go/internal/db"
	catalogdomain "foodgram-go/internal/domain/catalog"
	recipesdomain "foodgram-go/internal/domain/recipes"
	shoppingdomain "foodgram-go/internal/domain/shopping"
	subscriptionsdomain "foodgram-go/internal/domain/subscriptions"
	userdomain "foodgram-go/internal/domain/user"
	catalogrepo "foodgram-go/internal/repository/postgres/catalog"
	recipesrepo "foodgram-go/internal/repository/postgres/recipes"
	shoppingrepo "foodgram-go/internal/repository/postgres/shopping"
	subscriptionsrepo "foodgram-go/internal/repository/postgres/subscriptions"
	userrepo "foodgram-go/internal/repository/postgres/user"
	"foodgram-go/internal/transport/httpserver"
	"foodgram-go/internal/transport/httpserver/handler"
	"foodgram-go/migrations"
	"foodgram-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	log        logger.Logger
	db         *gorm.DB
	handler    http.Handler
	httpServer *http.Server

	Catalog       *catalogdomain.Service
	Recipes       *recipesdomain.Service
	Shopping      *shoppingdomain.Service
	Subscriptions *subscriptionsdomain.Service
	Users         *userdomain.Service
}

// New opens the configured store and wires every service around it.
func New(cfg config.Config, log logger.Logger) (*App, error) {
	log.Info("app: initializing database", "driver", cfg.DB.Driver)
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	application, err := NewWithDB(cfg, dbConn, log)
	if err != nil {
		if sqlDB, dbErr := dbConn.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return application, nil
}

// NewWithDB wires the services around an already open store. The caller
// hands ownership of dbConn to the App.
func NewWithDB(cfg config.Config, dbConn *gorm.DB, log logger.Logger) (*App, error) {
	renderer, err := shoppingdomain.NewRendererFromFile(cfg.ShoppingList.TemplatePath)
	if err != nil {
		return nil, err
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	catalog := catalogdomain.NewService(catalogrepo.NewPostgres(dbConn))
	recipes := recipesdomain.NewService(recipesrepo.NewPostgres(dbConn))
	shopping := shoppingdomain.NewService(shoppingrepo.NewPostgres(dbConn), renderer, cfg.ShoppingList.Filename)
	subscriptions := subscriptionsdomain.NewService(subscriptionsrepo.NewPostgres(dbConn))

	log.Info("app: initializing router")
	handlers := handler.New(catalog, recipes, shopping, subscriptions, users, log)
	router := httpserver.NewRouter(cfg, handlers, users, log)

	return &App{
		cfg:           cfg,
		log:           log,
		db:            dbConn,
		handler:       router,
		httpServer:    httpserver.New(cfg, router),
		Catalog:       catalog,
		Recipes:       recipes,
		Shopping:      shopping,
		Subscriptions: subscriptions,
		Users:         users,
	}, nil
}

// Migrate brings the schema up to date and returns the applied steps.
func (a *App) Migrate() ([]string, error) {
	driver := a.cfg.DB.Driver
	if driver == "" {
		driver = db.DriverPostgres
	}
	return db.Prepare(a.db, driver, migrations.FS)
}

func (a *App) Handler() http.Handler {
	return a.handler
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
