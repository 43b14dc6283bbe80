package main

import (
	"AptInspect/internal/config"
	"AptInspect/internal/handlers"
	"AptInspect/internal/middleware"
	"AptInspect/internal/repo"
	"AptInspect/internal/retention"
	"AptInspect/internal/service"
	"AptInspect/internal/storage"
	"context"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	store, err := storage.NewMinioStore(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioBucket,
		cfg.MinioUseSSL,
	)
	if err != nil {
		sugar.Fatalw("failed to initialize object store", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	reportRepo := repo.NewReportRepository(gormDB)
	equipmentRepo := repo.NewEquipmentRepository(gormDB)
	visualRepo := repo.NewVisualRepository(gormDB)
	boardRepo := repo.NewBoardRepository(gormDB)

	sweeper := retention.NewSweeper(reportRepo, visualRepo, equipmentRepo, boardRepo, store, sugar)
	scheduler := retention.NewScheduler(sweeper, cfg.SweepSchedule, sugar)
	if err := scheduler.Start(ctx); err != nil {
		sugar.Fatalw("failed to start retention scheduler", "error", err)
	}
	defer scheduler.Stop()

	userService := service.NewUserService(userRepo)
	reportService := service.NewReportService(reportRepo, equipmentRepo, visualRepo, store, sweeper, sugar)
	customerService := service.NewCustomerService(reportRepo, equipmentRepo, visualRepo, store, sugar)
	boardService := service.NewBoardService(boardRepo, reportRepo, sugar)

	h := handlers.NewHandler(userService, reportService, customerService, boardService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"MinioEndpoint", cfg.MinioEndpoint,
		"MinioBucket", cfg.MinioBucket,
		"SweepSchedule", cfg.SweepSchedule,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
