package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"careercompass/internal/cache"
	"careercompass/internal/catalog"
	"careercompass/internal/config"
	"careercompass/internal/logger"
	"careercompass/internal/notify"
	"careercompass/internal/repository"
	"careercompass/internal/service"
	"careercompass/internal/transport/rest"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Static inputs: a broken bundle is fatal, the engine refuses to
	// serve on it.
	cat, err := catalog.Load(cfg.DataDir)
	if err != nil {
		log.Fatal("catalog load failed", "dataDir", cfg.DataDir, "error", err)
	}
	log.Info("catalog loaded",
		"questions", cat.Len(),
		"careers", len(cat.Careers()),
		"mirrorIndex", cat.MirrorIndex())

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("mongodb connect failed", "error", err)
	}
	defer mongoClient.Disconnect(context.Background())

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("mongodb ping failed", "error", err)
	}
	log.Info("connected to mongodb")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("redis ping failed", "error", err)
	}
	log.Info("connected to redis")

	// Repositories and caches
	sessionRepo := repository.NewSessionRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	sessionCache := cache.NewSessionCache(rdb)
	throttleCache := cache.NewThrottleCache(rdb)

	// Services
	authSvc := service.NewAuthService(cfg.JWTSecret)
	scoringSvc := service.NewScoringService(cat)
	matchingSvc := service.NewMatchingService(cat)
	mirrorSvc := service.NewMirrorService(cat, scoringSvc)
	notifier := notify.NewPublisher(rdb, log)
	sessionSvc := service.NewSessionService(
		sessionRepo, profileRepo, sessionCache,
		cat, scoringSvc, matchingSvc, mirrorSvc,
		notifier, log, cfg.InactivityTimeout,
	)

	router := rest.NewRouter(&rest.Container{
		AuthService:    authSvc,
		SessionService: sessionSvc,
		Throttle:       throttleCache,
		CatalogSize:    cat.Len(),
		Config:         cfg,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// Background abandonment sweep
	g.Go(func() error {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if _, err := sessionSvc.SweepAbandoned(gctx); err != nil {
					log.Error("abandonment sweep failed", "error", err)
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server exited", "error", err)
	}
	log.Info("server exited")
}
