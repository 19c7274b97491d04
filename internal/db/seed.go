package db

import (
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/localroots/marketplace/internal/models"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedData is the demo catalog loaded on request at startup.
type SeedData struct {
	Communities []models.Community `yaml:"communities"`
	Categories  []models.Category  `yaml:"categories"`
	Posts       []models.Post      `yaml:"posts"`
}

// LoadSeedData parses the embedded demo catalog.
func LoadSeedData() (*SeedData, error) {
	var data SeedData
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &data, nil
}

// SeedDemo inserts the demo communities (skipping slugs that already exist)
// and, when their tables are empty, the demo categories and posts.
func SeedDemo(db *gorm.DB) error {
	data, err := LoadSeedData()
	if err != nil {
		return err
	}

	for i := range data.Communities {
		community := data.Communities[i]
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&community)
		if result.Error != nil {
			return fmt.Errorf("failed to seed community %s: %w", community.Slug, result.Error)
		}
		if result.RowsAffected > 0 {
			slog.Info("Seeded community", "slug", community.Slug)
		}
	}

	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count == 0 && len(data.Categories) > 0 {
		if err := db.Create(&data.Categories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		slog.Info("Seeded categories", "count", len(data.Categories))
	}

	if err := db.Model(&models.Post{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count posts: %w", err)
	}
	if count == 0 && len(data.Posts) > 0 {
		date := time.Now().Format("Jan 02, 2006")
		for i := range data.Posts {
			if data.Posts[i].Date == "" {
				data.Posts[i].Date = date
			}
		}
		if err := db.Create(&data.Posts).Error; err != nil {
			return fmt.Errorf("failed to seed posts: %w", err)
		}
		slog.Info("Seeded posts", "count", len(data.Posts))
	}

	return nil
}
