package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/SergeyBogomolovv/storefront-checkout/docs"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/app"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/config"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/handler"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/notify"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/payment"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/postgres"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/repo"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/service"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/cache"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/trm"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// @title           Storefront Checkout API
// @version         1.0
// @description     Оформление заказов, проверка оплаты и каталог
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	handler.RegisterMetrics()

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	panicIfErr("failed to apply migrations", postgres.Migrate(db))

	orderRepo := repo.NewOrderRepo(db)
	productRepo := repo.NewProductRepo(db)
	txManager := trm.NewManager(db)

	productCache, redisCache := newCache(logger, conf)

	pricing, err := service.NewPricing(conf.Pricing)
	panicIfErr("invalid pricing", err)

	gateway := payment.NewRazorpayClient(logger, conf.Razorpay)
	verifier := payment.NewVerifier(conf.Razorpay.KeySecret)

	mailer := notify.NewSMTPMailer(conf.SMTP)
	publisher := notify.NewEventPublisher(logger, conf.Kafka)
	senders := []notify.Sender{publisher}
	if conf.SMTP.Enabled() {
		senders = append(senders, notify.NewEmailSender(logger, mailer))
	} else {
		logger.Warn("smtp is not configured, confirmation emails are disabled")
	}
	dispatcher := notify.NewDispatcher(logger, conf.Notifications, senders...)

	orderService := service.NewOrderService(logger, txManager, orderRepo, productRepo, gateway, pricing, conf.Razorpay.Currency)
	paymentService := service.NewPaymentService(logger, orderRepo, verifier, dispatcher)
	catalogService := service.NewCatalogService(logger, productRepo, productCache)

	adminNotifier := notify.NewAdminNotifier(logger, mailer, conf.SMTP.AdminEmail, conf.Notifications.AppURL)
	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, adminNotifier)
	httpHandler := handler.NewHTTPHandler(logger, orderService, paymentService, gateway.KeyID())
	catalogHandler := handler.NewCatalogHandler(logger, catalogService)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler, catalogHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(productCache, dispatcher, cacheWarmUp{logger: logger, svc: catalogService, count: conf.Cache.Capacity})

	// Диспетчер закрывается раньше издателя: при остановке он ещё дописывает очередь
	closers := []io.Closer{dispatcher, publisher}
	if redisCache != nil {
		closers = append(closers, redisCache)
	}
	app.SetClosers(closers...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type startableCache interface {
	service.Cache
	Start(ctx context.Context) error
}

func newCache(logger *slog.Logger, conf config.Config) (startableCache, *cache.RedisCache) {
	if conf.Cache.Driver == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		c := cache.NewRedisCache(logger, client, "products", conf.Cache.TTL)
		return c, c
	}
	return cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL), nil
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

// Прогрев кэша не должен мешать запуску: пустой кэш просто наполнится запросами
type cacheWarmUp struct {
	logger *slog.Logger
	svc    warmUpper
	count  int
}

func (w cacheWarmUp) Start(ctx context.Context) error {
	if err := w.svc.WarmUpCache(ctx, w.count); err != nil {
		w.logger.Warn("failed to warm up cache", "err", err)
	}
	return nil
}
