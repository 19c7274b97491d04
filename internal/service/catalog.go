package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/localroots/marketplace/internal/models"
	"gorm.io/gorm"
)

const maxCatalogList = 500

var (
	slugSeparators = regexp.MustCompile(`[\s/]+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify derives a URL slug: lower-case, whitespace and slashes become
// dashes, other characters outside [a-z0-9-] are dropped.
func Slugify(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	s = slugSeparators.ReplaceAllString(s, "-")
	return slugInvalid.ReplaceAllString(s, "")
}

// CommunityInput carries community fields from a request. Nil fields are unset.
type CommunityInput struct {
	Name        *string
	Slug        *string
	Description *string
	Image       *string
}

// CatalogService manages communities and categories.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListCommunities returns communities ordered by name.
func (s *CatalogService) ListCommunities(ctx context.Context) ([]models.Community, error) {
	var items []models.Community
	if err := s.db.WithContext(ctx).Order("name ASC").Limit(maxCatalogList).Find(&items).Error; err != nil {
		return nil, storeError(err, "")
	}
	return items, nil
}

// GetCommunity returns a community by ID or slug.
func (s *CatalogService) GetCommunity(ctx context.Context, idOrSlug string) (*models.Community, error) {
	var item models.Community
	err := s.db.WithContext(ctx).Where("id = ? OR slug = ?", idOrSlug, idOrSlug).First(&item).Error
	if err != nil {
		if err = storeError(err, ""); err == ErrNotFound {
			return nil, notFound("Community not found")
		}
		return nil, err
	}
	return &item, nil
}

// CreateCommunity stores a community, deriving the slug from the name when absent.
func (s *CatalogService) CreateCommunity(ctx context.Context, in CommunityInput) (*models.Community, error) {
	name := strings.TrimSpace(strOr(in.Name, ""))
	if name == "" {
		return nil, invalid("Missing name")
	}
	slug := Slugify(strOr(in.Slug, name))
	if slug == "" {
		return nil, invalid("Invalid slug")
	}

	item := models.Community{
		Name:        name,
		Slug:        slug,
		Description: strOr(in.Description, ""),
		Image:       strOr(in.Image, ""),
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, storeError(err, "Community slug already exists")
	}
	return &item, nil
}

// UpdateCommunity sets the provided fields of a community.
func (s *CatalogService) UpdateCommunity(ctx context.Context, id string, in CommunityInput) (*models.Community, error) {
	item, err := s.GetCommunity(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("Missing name")
		}
		item.Name = name
	}
	if in.Slug != nil {
		slug := Slugify(*in.Slug)
		if slug == "" {
			return nil, invalid("Invalid slug")
		}
		item.Slug = slug
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Image != nil {
		item.Image = *in.Image
	}

	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, storeError(err, "Community slug already exists")
	}
	return item, nil
}

// DeleteCommunity removes a community.
func (s *CatalogService) DeleteCommunity(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Community{})
	if result.Error != nil {
		return storeError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return notFound("Community not found")
	}
	return nil
}

// ListCategories returns categories ordered by name.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Limit(maxCatalogList).Find(&items).Error; err != nil {
		return nil, storeError(err, "")
	}
	return items, nil
}

// CreateCategory stores a category, deriving the slug from the name when absent.
func (s *CatalogService) CreateCategory(ctx context.Context, name, slug string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("Missing name")
	}
	if slug == "" {
		slug = name
	}
	item := models.Category{Name: name, Slug: Slugify(slug)}
	if item.Slug == "" {
		return nil, invalid("Invalid slug")
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, storeError(err, "Category slug already exists")
	}
	return &item, nil
}

// UpdateCategory renames a category or changes its slug. Empty values keep
// the stored ones.
func (s *CatalogService) UpdateCategory(ctx context.Context, id, name, slug string) (*models.Category, error) {
	var item models.Category
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if err = storeError(err, ""); err == ErrNotFound {
			return nil, notFound("Category not found")
		}
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		item.Name = name
	}
	if slug != "" {
		if item.Slug = Slugify(slug); item.Slug == "" {
			return nil, invalid("Invalid slug")
		}
	}

	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, storeError(err, "Category slug already exists")
	}
	return &item, nil
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	if result.Error != nil {
		return storeError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return notFound("Category not found")
	}
	return nil
}
