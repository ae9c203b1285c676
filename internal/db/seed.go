package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Hbollas/LashTechBooking/internal/models"
)

// DefaultOfferings is the starter catalog loaded by the seed command.
func DefaultOfferings() []models.ServiceOffering {
	return []models.ServiceOffering{
		{Name: "Classic Full Set", DurationMin: 90, PriceCents: 8900, Description: "Natural, everyday look.", Active: true},
		{Name: "Volume Full Set", DurationMin: 120, PriceCents: 12900, Description: "Fuller, dramatic look.", Active: true},
		{Name: "Fill (2-3 weeks)", DurationMin: 60, PriceCents: 5900, Description: "Maintenance fill.", Active: true},
		{Name: "Lash Removal", DurationMin: 30, PriceCents: 2500, Description: "Safe removal.", Active: true},
	}
}

type SeedResult struct {
	OfferingsCreated int
	AdminCreated     bool
}

// Seed inserts offerings that do not exist yet (matched by name) and, when
// credentials are given, the admin account. It is safe to run repeatedly.
func Seed(
	ctx context.Context,
	db *gorm.DB,
	offerings []models.ServiceOffering,
	adminEmail string,
	adminPassword string,
) (SeedResult, error) {

	var res SeedResult

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range offerings {
			if o.ID == uuid.Nil {
				o.ID = uuid.New()
			}
			r := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&o)
			if r.Error != nil {
				return fmt.Errorf("seed offering %q: %w", o.Name, r.Error)
			}
			res.OfferingsCreated += int(r.RowsAffected)
		}

		email := strings.ToLower(strings.TrimSpace(adminEmail))
		if email == "" || adminPassword == "" {
			return nil
		}

		var existing models.User
		err := tx.Where("email = ?", email).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}

		if err := tx.Create(&models.User{
			Name:         "Administrator",
			Email:        email,
			PasswordHash: string(hashed),
			Role:         models.RoleAdmin,
			Active:       true,
		}).Error; err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		res.AdminCreated = true
		return nil
	})

	return res, err
}
