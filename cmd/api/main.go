package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/almacen-kardex/internal/application/analytics"
	"github.com/jhoicas/almacen-kardex/internal/application/auth"
	"github.com/jhoicas/almacen-kardex/internal/application/inventory"
	"github.com/jhoicas/almacen-kardex/internal/application/usecase"
	infrapdf "github.com/jhoicas/almacen-kardex/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-kardex/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/almacen-kardex/internal/interfaces/http"
	"github.com/jhoicas/almacen-kardex/pkg/config"
	"github.com/jhoicas/almacen-kardex/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	repos, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer repos.Close()

	stockUC := inventory.NewStockUseCase(repos.Products, repos.Movements)
	registerMovementUC := inventory.NewRegisterMovementUseCase(repos.Products, repos.Movements)
	importUC := inventory.NewImportOpeningBalanceUseCase(repos.Tx)
	dashboardUC := appanalytics.NewDashboardUseCase(stockUC, repos.Movements, cfg.Dashboard.RecentMovements)

	unitUC := usecase.NewUnitUseCase(repos.Units)
	groupUC := usecase.NewGroupUseCase(repos.Groups)
	productUC := usecase.NewProductUseCase(repos.Products, repos.Units, repos.Groups, repos.Movements)
	userUC := usecase.NewUserUseCase(repos.Users)

	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: kardex y stock bajo
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén Kardex API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "driver": repos.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           userUC,
		UnitUC:           unitUC,
		GroupUC:          groupUC,
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		StockUC:          stockUC,
		ImportUC:         importUC,
		DashboardUC:      dashboardUC,
		PDFGenerator:     pdfGenerator,
		UserRepo:         repos.Users,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
