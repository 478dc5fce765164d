package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/agenticsoft/gescom/internal/auth"
	authsqlite "github.com/agenticsoft/gescom/internal/auth/sqlite"
	"github.com/agenticsoft/gescom/internal/partner"
	"github.com/agenticsoft/gescom/internal/product"
	"github.com/agenticsoft/gescom/internal/schema"
	"github.com/agenticsoft/gescom/internal/settings"
	settingssqlite "github.com/agenticsoft/gescom/internal/settings/sqlite"
	"github.com/agenticsoft/gescom/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed defaults and the bootstrap account",
	Long:  `Apply migrations, insert default settings and roles, and create the bootstrap admin account when no user exists yet`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSeed(); err != nil {
			fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func runSeed() error {
	config, err := loadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	gormDB, sqlDB, err := initDB(config.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer sqlDB.Close()

	store := schema.NewStore(sqlDB, schema.Migrations(), config.Database.Driver, lg)
	if err := store.ApplyPending(context.Background()); err != nil {
		return err
	}

	settingsService := settings.NewService(settingssqlite.NewSettingsRepository(gormDB), lg)
	if err := settingsService.EnsureDefaults(); err != nil {
		return fmt.Errorf("failed to seed default settings: %w", err)
	}

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authsqlite.NewAuthRepository(gormDB), tokenGen, config.Security.BCryptCost, lg)
	if err := authService.Bootstrap(); err != nil {
		return fmt.Errorf("failed to bootstrap auth: %w", err)
	}

	if seedDemoData {
		if err := seedDemo(gormDB); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
		lg.Info("demo data seeded")
	}

	lg.Info("seed complete")
	return nil
}

// seedDemo inserts a handful of partners and products for manual testing.
// Re-running is harmless, rows are matched on their natural keys.
func seedDemo(db *gorm.DB) error {
	partners := []partner.Partner{
		{Kind: partner.KindCustomer, NameFR: "Société Atlas", NameAR: "شركة أطلس", Phone: "0522000001"},
		{Kind: partner.KindCustomer, NameFR: "Comptoir du Sud", NameAR: "متجر الجنوب", Phone: "0522000002"},
		{Kind: partner.KindSupplier, NameFR: "Fournitures Rif", NameAR: "لوازم الريف", Phone: "0522000003"},
	}
	for i := range partners {
		var count int64
		if err := db.Model(&partner.Partner{}).
			Where("kind = ? AND name_fr = ?", partners[i].Kind, partners[i].NameFR).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&partners[i]).Error; err != nil {
			return err
		}
	}

	products := []product.Product{
		{SKU: "CIM-25", NameFR: "Ciment 25kg", NameAR: "إسمنت 25 كلغ", Unit: "sac", PriceHT: 65},
		{SKU: "FER-8", NameFR: "Fer à béton 8mm", NameAR: "حديد 8 ملم", Unit: "barre", PriceHT: 38.5},
		{SKU: "PLA-STD", NameFR: "Plâtre standard", NameAR: "جبس عادي", Unit: "sac", PriceHT: 22},
	}
	for i := range products {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sku"}},
			DoNothing: true,
		}).Create(&products[i]).Error; err != nil {
			return err
		}
	}

	// Opening stock for the demo products, only where none exists
	var skus []string
	for _, p := range products {
		skus = append(skus, p.SKU)
	}
	var seeded []product.Product
	if err := db.Where("sku IN ?", skus).Find(&seeded).Error; err != nil {
		return err
	}
	for _, p := range seeded {
		level := product.StockLevel{ProductID: p.ID, Qty: 100}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoNothing: true,
		}).Create(&level).Error; err != nil {
			return err
		}
	}

	return nil
}
