// launching the server, log storage and batch worker
package appServer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/citasalud/notifier/config"
	"github.com/citasalud/notifier/internal/database"
	"github.com/citasalud/notifier/internal/service"
	"github.com/citasalud/notifier/internal/transport"
	"github.com/citasalud/notifier/internal/worker"
	"github.com/citasalud/notifier/pkg/channel"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))

	appointmentRepo := database.NewAppointmentStore()

	var logRepo database.NotificationLogRepository
	if cfg.Log.Backend == "redis" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			MaxRetries:   cfg.Redis.MaxRetries,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			PoolTimeout:  cfg.Redis.PoolTimeout,
		})
		logRepo = database.NewRedisLogRepository(redisClient)
	} else {
		logRepo = database.NewFileLogRepository(cfg.Log.File)
	}

	selectChannel := func(ctx context.Context) channel.Channel {
		return channel.New(ctx, cfg)
	}

	notificationUseCase := service.NewNotificationUseCase(
		appointmentRepo,
		logRepo,
		selectChannel,
		service.NewEligibility(cfg.App.LookaheadDays),
		cfg.App.Throttle,
		cfg.App.AutoRun,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifyWorker := worker.NewNotifyWorker(notificationUseCase)
	go notifyWorker.Start(ctx)

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(notificationUseCase)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
