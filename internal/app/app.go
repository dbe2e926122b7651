package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/niksmo/fashion-store/config"
	"github.com/niksmo/fashion-store/internal/adapter"
	"github.com/niksmo/fashion-store/internal/adapter/auth"
	"github.com/niksmo/fashion-store/internal/adapter/httphandler"
	"github.com/niksmo/fashion-store/internal/adapter/imagestore"
	"github.com/niksmo/fashion-store/internal/adapter/kafka"
	"github.com/niksmo/fashion-store/internal/adapter/redisstore"
	"github.com/niksmo/fashion-store/internal/adapter/storage"
	"github.com/niksmo/fashion-store/internal/core/port"
	"github.com/niksmo/fashion-store/internal/core/service"
	"github.com/niksmo/fashion-store/pkg/schema"
)

type repositories struct {
	products storage.ProductsRepository
	sections storage.SectionsRepository
	settings storage.SettingsRepository
	orders   storage.OrdersRepository
}

// streaming is nil when the broker is disabled.
type streaming struct {
	producer kafka.OrderEventsProducer
	tracker  *kafka.OrderTrackerProcessor
	view     *kafka.OrderTrackingView
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	sqlDB      storage.SQLDB
	redis      redisstore.Client
	repos      repositories
	sessions   redisstore.SessionStore
	operator   auth.Operator
	images     imagestore.FileStore
	streaming  *streaming
	orders     service.OrderService
	services   httphandler.Services
	httpServer httphandler.HTTPServer
	wg         sync.WaitGroup
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initSessions()
	app.initImages()
	app.initStreaming()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	db, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}

	app.sqlDB = db
	app.repos = repositories{
		products: storage.NewProductsRepository(db),
		sections: storage.NewSectionsRepository(db),
		settings: storage.NewSettingsRepository(db),
		orders:   storage.NewOrdersRepository(db),
	}
}

func (app *App) initSessions() {
	const op = "App.initSessions"
	cfg := app.cfg

	rdb, err := redisstore.NewClient(
		app.ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	tokens := redisstore.NewTokenStore(rdb, cfg.Admin.TokenTTL)
	operator, err := auth.NewOperator(
		cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.PasswordHash, tokens,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.redis = rdb
	app.sessions = redisstore.NewSessionStore(rdb, cfg.Session.TTL)
	app.operator = operator
}

func (app *App) initImages() {
	const op = "App.initImages"

	images, err := imagestore.New(app.cfg.Uploads.Dir, app.cfg.Uploads.URLPrefix())
	if err != nil {
		app.fallDown(op, err)
	}
	app.images = images
}

func (app *App) initStreaming() {
	const op = "App.initStreaming"
	log := slog.With("op", op)
	bcfg := app.cfg.Broker

	if !bcfg.Enabled() {
		log.Warn("broker is disabled, order events are not published")
		return
	}

	sec, err := BrokerSecurity(app.cfg)
	if err != nil {
		app.fallDown(op, err)
	}
	kafka.ApplyGokaSecurity(sec)

	registry, err := schema.NewRegistryIdentifier(bcfg.SchemaRegistryURLs...)
	if err != nil {
		app.fallDown(op, err)
	}

	serde, err := schema.NewSerdeOrderEventV1(
		app.ctx,
		schema.SubjectOpt(bcfg.OrderEventsTopic+"-value"),
		schema.SchemaIdentifierOpt(registry),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewOrderEventsProducer(
		kafka.ProducerClientOpt(app.ctx, bcfg.SeedBrokers, bcfg.OrderEventsTopic, sec),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	tracker, err := kafka.NewOrderTrackerProc(
		bcfg.SeedBrokers, bcfg.OrderEventsTopic, bcfg.OrderTrackingGroup, serde,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewOrderTrackingView(bcfg.SeedBrokers, bcfg.OrderTrackingGroup)
	if err != nil {
		app.fallDown(op, err)
	}

	app.streaming = &streaming{
		producer: producer,
		tracker:  tracker,
		view:     view,
	}
}

// BrokerSecurity builds the broker TLS and SASL settings from the config.
func BrokerSecurity(cfg config.Config) (kafka.Security, error) {
	bcfg := cfg.Broker
	sec := kafka.Security{User: bcfg.SASL.User, Pass: bcfg.SASL.Pass}

	if bcfg.TLS.CAFile == "" {
		return sec, nil
	}

	tlsCfg, err := adapter.MakeTLSConfig(
		bcfg.TLS.CAFile, bcfg.TLS.CertFile, bcfg.TLS.KeyFile,
	)
	if err != nil {
		return kafka.Security{}, err
	}
	sec.TLS = tlsCfg
	return sec, nil
}

func (app *App) initCoreService() {
	var (
		publisher port.OrderEventPublisher
		tracker   port.OrderTracker
	)
	if app.streaming != nil {
		publisher = app.streaming.producer
		tracker = app.streaming.view
	}

	catalog := service.NewCatalog(
		app.repos.products, app.repos.sections, app.repos.settings,
	)
	orders := service.NewOrders(app.repos.orders, publisher, tracker)
	app.orders = orders

	app.services = httphandler.Services{
		Catalog:      catalog,
		CatalogAdmin: catalog,
		Bag:          service.NewBag(app.sessions, app.repos.products),
		Checkout: service.NewCheckout(
			app.sessions, orders, app.repos.settings, app.images,
		),
		Orders: orders,
		Admin: service.NewAdmin(
			app.operator, app.repos.products, app.repos.orders, app.images,
		),
	}
}

func (app *App) initInboundAdapters() {
	handler := httphandler.NewRouter(
		httphandler.RouterConfig{
			SessionTTL:   app.cfg.Session.TTL,
			SecureCookie: app.cfg.Session.SecureCookie,
			UploadsDir:   app.images.Dir(),
			UploadsPath:  app.cfg.Uploads.Path,
		},
		app.services,
	)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	if app.streaming != nil {
		app.wg.Add(2)
		go app.streaming.tracker.Run(app.ctx, stopFn, &app.wg)
		go app.streaming.view.Run(app.ctx, &app.wg)
	}

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.orders.Wait()

	if app.streaming != nil {
		app.wg.Wait()
		app.streaming.tracker.Close()
		app.streaming.producer.Close()
	}

	app.redis.Close()
	app.sqlDB.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
