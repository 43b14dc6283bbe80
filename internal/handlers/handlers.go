package handlers

import (
	"AptInspect/internal/config"
	"AptInspect/internal/middleware"
	"AptInspect/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	reportService *service.ReportService,
	customerService *service.CustomerService,
	boardService *service.BoardService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	reportHandler := NewReportHandler(reportService, logger, config)
	customerHandler := NewCustomerHandler(customerService, boardService, logger)
	boardHandler := NewBoardHandler(boardService, logger)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)

	// Report routes (staff)
	r.Post("/api/reports", reportHandler.Create)
	r.Get("/api/reports", reportHandler.List)
	r.Get("/api/reports/{reportID}", reportHandler.Get)
	r.Delete("/api/reports/{reportID}", reportHandler.Delete)
	r.Put("/api/reports/{reportID}/equipment", reportHandler.SaveEquipment)
	r.Get("/api/reports/{reportID}/equipment", reportHandler.GetEquipment)
	r.Put("/api/reports/{reportID}/visual", reportHandler.SaveVisual)
	r.Get("/api/reports/{reportID}/visual", reportHandler.GetVisual)

	// Board routes (staff)
	r.Post("/api/board", boardHandler.Publish)
	r.Get("/api/board", boardHandler.List)
	r.Patch("/api/board/{entryID}/status", boardHandler.ToggleStatus)
	r.Delete("/api/board/{entryID}", boardHandler.Remove)

	// Customer routes (no auth: ссылка на отчёт — невыгадываемый uuid)
	r.Get("/api/customer/reports/{reportID}", customerHandler.GetReport)
	r.Get("/api/customer/reports/{reportID}/archive", customerHandler.DownloadArchive)

	return &Handler{Router: r}
}
