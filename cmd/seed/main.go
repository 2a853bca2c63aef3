package main

import (
	"context"
	"log"
	"os"
	"time"

	"go-backoffice/internal/config"
	"go-backoffice/internal/database"
	"go-backoffice/internal/features/product"
	"go-backoffice/internal/features/restaurant"
	"go-backoffice/internal/features/settings"
	"go-backoffice/internal/features/user"
	"go-backoffice/internal/logger"
	"go-backoffice/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var sampleProducts = []product.Product{
	{Name: "Espresso Machine Pro", SKU: "EM-1001", Price: 349.00, Stock: 12, Status: product.StatusActive, Featured: true, Categories: []string{"kitchen"}},
	{Name: "Ceramic Mug", SKU: "MG-2001", Price: 7.50, Stock: 240, Status: product.StatusActive, Categories: []string{"kitchen", "tableware"}},
	{Name: "Pour Over Kettle", SKU: "KT-3001", Price: 42.00, Stock: 58, Status: product.StatusDraft, Categories: []string{"kitchen"}},
}

var sampleRestaurants = []restaurant.Restaurant{
	{Name: "La Piazza", Address: "14 Market Street", City: "Portland", Cuisines: []string{"italian"}, Status: restaurant.StatusOpen, Featured: true, Rating: 4.6, Location: restaurant.NewGeoPoint(-122.6765, 45.5231)},
	{Name: "Golden Wok", Address: "88 Bayview Road", City: "Portland", Cuisines: []string{"chinese"}, Status: restaurant.StatusOpen, Rating: 4.2, Location: restaurant.NewGeoPoint(-122.6587, 45.5122)},
	{Name: "The Green Fork", Address: "3 Orchard Lane", City: "Salem", Cuisines: []string{"vegetarian"}, Status: restaurant.StatusClosed, Rating: 4.8, Location: restaurant.NewGeoPoint(-123.0351, 44.9429)},
}

// Seed runs the database seeding
func Seed(
	lc fx.Lifecycle,
	users user.UserService,
	userRepo user.UserRepository,
	settingsService settings.SettingsService,
	productRepo product.ProductRepository,
	restaurantRepo restaurant.RestaurantRepository,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("🌱 Starting Database Seeding...")

				// 1. Admin user
				adminEmail := os.Getenv("ADMIN_EMAIL")
				if adminEmail == "" {
					adminEmail = "admin@example.com"
				}
				adminPassword := os.Getenv("ADMIN_PASSWORD")
				if adminPassword == "" {
					adminPassword = "changeme123"
				}

				if _, err := userRepo.FindByEmail(ctx, adminEmail); err == nil {
					logger.Info("Admin user exists, skipping", zap.String("email", adminEmail))
				} else {
					if _, err := users.CreateUser(ctx, "Administrator", adminEmail, adminPassword, []string{"admin"}); err != nil {
						logger.Fatal("Failed to create admin user", zap.Error(err))
					}
					logger.Info("Admin user created", zap.String("email", adminEmail))
				}

				// 2. Default settings. Get* falls back to defaults when the
				// document is missing; writing them back makes them editable.
				if general, err := settingsService.GetGeneralConfig(ctx); err != nil {
					logger.Error("Failed to load general settings", zap.Error(err))
				} else if err := settingsService.UpdateGeneralConfig(ctx, *general); err != nil {
					logger.Error("Failed to persist general settings", zap.Error(err))
				}
				if uploads, err := settingsService.GetUploadsConfig(ctx); err != nil {
					logger.Error("Failed to load uploads settings", zap.Error(err))
				} else if err := settingsService.UpdateUploadsConfig(ctx, *uploads); err != nil {
					logger.Error("Failed to persist uploads settings", zap.Error(err))
				}
				logger.Info("Settings seeded")

				// 3. Sample products
				for _, p := range sampleProducts {
					p.Slug = utils.Slugify(p.Name)
					if _, err := productRepo.FindBySlug(ctx, p.Slug); err == nil {
						logger.Info("Product exists, skipping", zap.String("product", p.Name))
						continue
					}
					p.CreatedAt = time.Now()
					p.UpdatedAt = time.Now()
					if err := productRepo.Create(ctx, &p); err != nil {
						logger.Error("Failed to create product", zap.String("product", p.Name), zap.Error(err))
					} else {
						logger.Info("Product created", zap.String("product", p.Name))
					}
				}

				// 4. Sample restaurants
				for _, r := range sampleRestaurants {
					r.Slug = utils.Slugify(r.Name)
					if _, err := restaurantRepo.FindBySlug(ctx, r.Slug); err == nil {
						logger.Info("Restaurant exists, skipping", zap.String("restaurant", r.Name))
						continue
					}
					r.CreatedAt = time.Now()
					r.UpdatedAt = time.Now()
					if err := restaurantRepo.Create(ctx, &r); err != nil {
						logger.Error("Failed to create restaurant", zap.String("restaurant", r.Name), zap.Error(err))
					} else {
						logger.Info("Restaurant created", zap.String("restaurant", r.Name))
					}
				}

				logger.Info("✅ Seeding Complete!")
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
			database.NewDatabase,
			user.NewUserRepository,
			user.NewUserService,
			settings.NewSettingsRepository,
			settings.NewSettingsService,
			product.NewProductRepository,
			restaurant.NewRestaurantRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}

	<-app.Done()
}
