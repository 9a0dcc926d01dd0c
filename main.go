package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinema_booking/config"
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/events"
	"cinema_booking/handler"
	"cinema_booking/helper"
	"cinema_booking/logger"
	"cinema_booking/repository"
	"cinema_booking/router"
	"cinema_booking/service"
	"cinema_booking/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func openStore(cfg *config.AppConfig, log *logger.Logger) (repository.Store, func(), error) {
	var (
		db  *gorm.DB
		err error
	)
	if cfg.Database.Driver == "sqlite" {
		db, err = repository.OpenSQLite(cfg.Database.SQLitePath)
	} else if db, err = database.Connect(cfg.Database); err == nil {
		err = database.Migrate(db)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.Database.Driver, err)
	}
	log.Info(constants.LOG_DATABASE, "connection opened and schema migrated")
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return repository.NewGormStore(db), closeDB, nil
}

func openPublisher(cfg *config.AppConfig, log *logger.Logger) (events.Publisher, func()) {
	if !cfg.Kafka.Enabled {
		return events.NewLogPublisher(log), func() {}
	}
	p := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
	log.Info(constants.LOG_EVENT, fmt.Sprintf("publishing status changes to kafka topic %s", cfg.Kafka.Topic))
	return p, func() { _ = p.Close() }
}

func openLocker(cfg *config.AppConfig, log *logger.Logger) (gocron.Locker, func()) {
	if cfg.Redis.Addr == "" {
		return nil, func() {}
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn(constants.LOG_SWEEP, fmt.Sprintf("redis unavailable, sweeps run without a distributed lock: %v", err))
		_ = client.Close()
		return nil, func() {}
	}
	return helper.NewRedisLocker(client), func() { _ = client.Close() }
}

func main() {
	cfg := config.Load()
	log, err := logger.New(logger.Options{Dir: cfg.LogDir, Level: cfg.LogLevel})
	if err != nil {
		stdlog.Fatal(err)
	}
	defer log.Close()

	if cfg.JWT.Secret == "" {
		log.Error(constants.LOG_SYSTEM, "JWT_SECRET must be set")
		os.Exit(1)
	}
	loc := utils.LoadLocation(cfg.Timezone)
	clock := utils.SystemClock{Location: loc}

	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Error(constants.LOG_DATABASE, err.Error())
		os.Exit(1)
	}
	defer closeStore()
	if created, err := database.SeedAdmin(context.Background(), store, cfg.Admin); err != nil {
		log.Error(constants.LOG_DATABASE, fmt.Sprintf("seed admin: %v", err))
	} else if created {
		log.Info(constants.LOG_DATABASE, "admin account created for "+cfg.Admin.Email)
	}

	publisher, closePublisher := openPublisher(cfg, log)
	defer closePublisher()
	locker, closeLocker := openLocker(cfg, log)
	defer closeLocker()

	h := handler.New(service.Deps{Store: store, Clock: clock, Log: log, Events: publisher}, cfg.JWT.Secret, time.Duration(cfg.JWT.TTLMinutes)*time.Minute)

	promoteAt, err := utils.ParseClockTime(cfg.Sweep.PromoteAt)
	if err != nil {
		log.Error(constants.LOG_SWEEP, fmt.Sprintf("SWEEP_PROMOTE_AT: %v", err))
		os.Exit(1)
	}
	endAt, err := utils.ParseClockTime(cfg.Sweep.EndAt)
	if err != nil {
		log.Error(constants.LOG_SWEEP, fmt.Sprintf("SWEEP_END_AT: %v", err))
		os.Exit(1)
	}
	movieScheduler, err := helper.StartMovieStatusScheduler(service.NewMovieSweep(store, h.Movies, log), clock, log, helper.MovieSchedulerOptions{
		Location:  loc,
		PromoteAt: promoteAt,
		EndAt:     endAt,
		Locker:    locker,
	})
	if err != nil {
		log.Error(constants.LOG_SWEEP, err.Error())
		os.Exit(1)
	}
	scheduleCloser, err := helper.StartScheduleCloser(h.Schedules, clock, log, cfg.Sweep.ScheduleCloseCron)
	if err != nil {
		log.Error(constants.LOG_SCHEDULE, err.Error())
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 4 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CorsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))
	router.SetupRoutes(app, h)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error(constants.LOG_HTTP, err.Error())
		}
	}()
	log.Info(constants.LOG_SYSTEM, "listening on :"+cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info(constants.LOG_SYSTEM, "shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error(constants.LOG_HTTP, err.Error())
	}
	helper.StopScheduleCloser(scheduleCloser)
	if err := movieScheduler.Shutdown(); err != nil {
		log.Error(constants.LOG_SWEEP, err.Error())
	}
}
