package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "go-backoffice/internal/common/api"
	"go-backoffice/internal/config"
	"go-backoffice/internal/database"
	"go-backoffice/internal/features/auth"
	"go-backoffice/internal/features/blog"
	"go-backoffice/internal/features/export"
	"go-backoffice/internal/features/file"
	"go-backoffice/internal/features/importer"
	"go-backoffice/internal/features/order"
	"go-backoffice/internal/features/product"
	"go-backoffice/internal/features/restaurant"
	"go-backoffice/internal/features/settings"
	"go-backoffice/internal/features/user"
	"go-backoffice/internal/logger"
	"go-backoffice/internal/middleware"
	"go-backoffice/internal/storage"
	"go-backoffice/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             64 << 20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute tags a constructor so Fx adds its result to the "routes" group
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the "routes" group and calls Setup() on each one
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d route groups\n", len(routes))
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer starts Fiber in a goroutine and shuts it down on app exit
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures database indexes exist after startup
func InitializeIndexes(
	lc fx.Lifecycle,
	fileRepo file.FileRepository,
	userRepo user.UserRepository,
	productRepo product.ProductRepository,
	blogRepo blog.BlogRepository,
	restaurantRepo restaurant.RestaurantRepository,
	orderRepo order.OrderRepository,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				repos := map[string]interface {
					EnsureIndexes(ctx context.Context) error
				}{
					"files":       fileRepo,
					"users":       userRepo,
					"products":    productRepo,
					"blogs":       blogRepo,
					"restaurants": restaurantRepo,
					"orders":      orderRepo,
				}
				for name, repo := range repos {
					if err := repo.EnsureIndexes(ctx); err != nil {
						log.Printf("Failed to ensure %s indexes: %v", name, err)
					}
				}
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,
			database.NewDatabase,
			storage.NewManager,

			// Repositories
			file.NewFileRepository,
			settings.NewSettingsRepository,
			user.NewUserRepository,
			product.NewProductRepository,
			blog.NewBlogRepository,
			restaurant.NewRestaurantRepository,
			order.NewOrderRepository,
			importer.NewImportRepository,

			// Services
			file.NewFileService,
			settings.NewSettingsService,
			user.NewUserService,
			auth.NewAuthService,
			product.NewProductService,
			blog.NewBlogService,
			restaurant.NewRestaurantService,
			order.NewOrderService,
			export.NewExportService,
			importer.NewImportService,

			// Interface adapters
			func(s settings.SettingsService) file.UploadPolicy { return s },

			// Controllers
			file.NewFileController,
			settings.NewSettingsController,
			user.NewUserController,
			auth.NewAuthController,
			product.NewProductController,
			blog.NewBlogController,
			restaurant.NewRestaurantController,
			order.NewOrderController,
			export.NewExportController,
			importer.NewImportController,

			// API routes
			AsRoute(file.NewFileApi),
			AsRoute(settings.NewSettingsApi),
			AsRoute(user.NewUserApi),
			AsRoute(auth.NewAuthApi),
			AsRoute(product.NewProductApi),
			AsRoute(blog.NewBlogApi),
			AsRoute(restaurant.NewRestaurantApi),
			AsRoute(order.NewOrderApi),
			AsRoute(export.NewExportApi),
			AsRoute(importer.NewImportApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },
			RegisterAllRoutesWithAnnotation,
			StartServer,
			InitializeIndexes,
		),
	)

	app.Run()
}
