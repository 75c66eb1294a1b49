package main

import (
	"context"
	"log"
	"time"

	"github.com/Sevrus/billed/internal/models"
	"github.com/Sevrus/billed/internal/repository"
	"github.com/Sevrus/billed/pkg/auth"
	"github.com/Sevrus/billed/pkg/config"
	"github.com/Sevrus/billed/pkg/logger"
	"github.com/Sevrus/billed/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seeds the demo accounts and a handful of bills in every state so the
// list view has something to show on a fresh database.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Starting database seeding...")

	if err := repository.Setup(ctx, db); err != nil {
		appLogger.Fatal("Failed to create schema", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	billRepo := repository.NewBillRepository(db, cfg.Upload.Dir, cfg.Upload.PublicURL, appLogger)

	if err := seedUsers(ctx, userRepo); err != nil {
		appLogger.Fatal("Failed to seed users", zap.Error(err))
	}
	if err := seedBills(ctx, billRepo); err != nil {
		appLogger.Fatal("Failed to seed bills", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

func seedUsers(ctx context.Context, users *repository.UserRepository) error {
	accounts := []struct {
		email    string
		password string
		userType models.UserType
	}{
		{"employee@test.tld", "employee", models.UserTypeEmployee},
		{"admin@test.tld", "admin", models.UserTypeAdmin},
	}

	now := time.Now()
	for _, a := range accounts {
		hash, err := auth.HashPassword(a.password)
		if err != nil {
			return err
		}
		err = users.Create(ctx, &models.User{
			ID:        uuid.New(),
			Email:     a.email,
			Password:  hash,
			Type:      a.userType,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil && err != repository.ErrDuplicateEmail {
			return err
		}
	}

	return nil
}

func seedBills(ctx context.Context, bills *repository.BillRepository) error {
	now := time.Now()
	fixtures := []models.Bill{
		{
			ID:           "47qAXb6fIm2zOKkLzMro",
			Type:         models.ExpenseTypeHotel,
			Name:         "encore",
			Date:         "2004-04-04",
			Amount:       400,
			VAT:          "80",
			Pct:          20,
			Commentary:   "séminaire billed",
			CommentAdmin: "ok",
			Status:       models.BillStatusPending,
			FileURL:      "/uploads/preview-facture-free-201801-pdf-1.jpg",
			FileName:     "preview-facture-free-201801-pdf-1.jpg",
			Email:        "employee@test.tld",
		},
		{
			ID:           "BeKy5Mo4jkmdfPGYpTxZ",
			Type:         models.ExpenseTypeTransport,
			Name:         "test1",
			Date:         "2001-01-01",
			Amount:       100,
			VAT:          "",
			Pct:          20,
			Commentary:   "plop",
			CommentAdmin: "en fait non",
			Status:       models.BillStatusRefused,
			FileURL:      "/uploads/1592770761.jpeg",
			FileName:     "1592770761.jpeg",
			Email:        "employee@test.tld",
		},
		{
			ID:           "UIUZtnPQvnbFnB0ozvJh",
			Type:         models.ExpenseTypeOnline,
			Name:         "test3",
			Date:         "2003-03-03",
			Amount:       300,
			VAT:          "60",
			Pct:          20,
			Commentary:   "",
			CommentAdmin: "bon bah d'accord",
			Status:       models.BillStatusAccepted,
			FileURL:      "/uploads/facture-client-php-exportee.png",
			FileName:     "facture-client-php-exportee.png",
			Email:        "employee@test.tld",
		},
		{
			ID:           "qcCK3SzECmaZAGRrHjaC",
			Type:         models.ExpenseTypeRestaurant,
			Name:         "test2",
			Date:         "2002-02-02",
			Amount:       200,
			VAT:          "40",
			Pct:          20,
			Commentary:   "test2",
			CommentAdmin: "pas la bonne facture",
			Status:       models.BillStatusRefused,
			FileURL:      "/uploads/preview-facture-free-201801-pdf-1.jpg",
			FileName:     "preview-facture-free-201801-pdf-1.jpg",
			Email:        "employee@test.tld",
		},
	}

	for _, b := range fixtures {
		b.CreatedAt = now
		b.UpdatedAt = now
		if err := bills.Insert(ctx, b); err != nil {
			return err
		}
	}

	return nil
}
