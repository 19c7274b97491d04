package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/localroots/marketplace/internal/audit"
	"github.com/localroots/marketplace/internal/auth"
	"github.com/localroots/marketplace/internal/models"
	"gorm.io/gorm"
)

const (
	maxProductList        = 100
	defaultVendorListSize = 50
	duplicateProductMsg   = "A product with this name already exists for this vendor in this community"
)

// ProductInput carries product fields from a request. Nil fields are unset.
type ProductInput struct {
	Name        *string
	Price       *float64
	Description *string
	Image       *string
	Images      []string
	Category    *string
	Community   *string
	Vendor      *string
	Stock       *int
}

// ProductFilter narrows public product listings.
type ProductFilter struct {
	Community string
	Query     string
}

// ProductService contains the catalog product operations.
type ProductService struct {
	db *gorm.DB
}

// NewProductService creates a new ProductService.
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// List returns up to 100 products, newest first. Query matches names
// case-insensitively.
func (s *ProductService) List(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})
	if f.Community != "" {
		query = query.Where("community = ?", f.Community)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Limit(maxProductList).Find(&products).Error; err != nil {
		return nil, storeError(err, "")
	}
	return products, nil
}

// ListByVendor returns a vendor's products, newest first.
func (s *ProductService) ListByVendor(ctx context.Context, vendor, community string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = defaultVendorListSize
	}
	query := s.db.WithContext(ctx).Where("vendor = ?", vendor)
	if community != "" {
		query = query.Where("community = ?", community)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Limit(limit).Find(&products).Error; err != nil {
		return nil, storeError(err, "")
	}
	return products, nil
}

// Get returns a single product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if err = storeError(err, ""); err == ErrNotFound {
			return nil, notFound("Product not found")
		}
		return nil, err
	}
	return &product, nil
}

// CreateForUser creates a product on behalf of any identified caller,
// filling defaults for missing fields. Engagement counters start at zero.
func (s *ProductService) CreateForUser(ctx context.Context, owner auth.Identity, in ProductInput) (*models.Product, error) {
	p := models.Product{
		Name:        strOr(in.Name, "Untitled Product"),
		Price:       floatOr(in.Price, 0),
		Description: strOr(in.Description, ""),
		Image:       strOr(in.Image, ""),
		Images:      in.Images,
		Category:    strOr(in.Category, "Others"),
		Community:   strOr(in.Community, "global"),
		Vendor:      strOr(in.Vendor, "Local Vendor"),
		Stock:       intOr(in.Stock, 0),
		OwnerID:     owner.ID,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Price < 0 {
		return nil, invalid("Price must not be negative")
	}

	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, storeError(err, duplicateProductMsg)
	}
	slog.Info("Product created", "product_id", p.ID, "owner", owner.ID, "source", owner.Source)
	return &p, nil
}

// UpdateForUser applies the non-empty fields of in to a product. Empty or
// zero fields keep the stored value; rating, reviews and likes are never
// changed.
func (s *ProductService) UpdateForUser(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = strOr(in.Name, p.Name)
	p.Price = floatOr(in.Price, p.Price)
	p.Category = strOr(in.Category, p.Category)
	p.Community = strOr(in.Community, p.Community)
	p.Vendor = strOr(in.Vendor, p.Vendor)
	p.Description = strOr(in.Description, p.Description)
	p.Image = strOr(in.Image, p.Image)
	if in.Images != nil {
		p.Images = in.Images
	}
	p.Stock = intOr(in.Stock, p.Stock)

	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, storeError(err, duplicateProductMsg)
	}
	return p, nil
}

// Create creates a product with exactly the given fields.
func (s *ProductService) Create(ctx context.Context, actor string, in ProductInput) (*models.Product, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, invalid("Missing name")
	}
	if in.Price == nil {
		return nil, invalid("Missing price")
	}

	p := models.Product{Images: []string{}, Category: "Others", Community: "global"}
	applyProductInput(&p, in)

	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, storeError(err, duplicateProductMsg)
	}
	if err := audit.LogAction(s.db.WithContext(ctx), actor, audit.ActionCreateProduct, "product:"+p.ID.String(), nil); err != nil {
		slog.Warn("Failed to write audit log", "action", audit.ActionCreateProduct, "error", err)
	}
	return &p, nil
}

// Update sets every provided field of a product.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyProductInput(p, in)

	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, storeError(err, duplicateProductMsg)
	}
	return p, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, actor, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return storeError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return notFound("Product not found")
	}
	if err := audit.LogAction(s.db.WithContext(ctx), actor, audit.ActionDeleteProduct, "product:"+id, nil); err != nil {
		slog.Warn("Failed to write audit log", "action", audit.ActionDeleteProduct, "error", err)
	}
	return nil
}

func applyProductInput(p *models.Product, in ProductInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Community != nil {
		p.Community = *in.Community
	}
	if in.Vendor != nil {
		p.Vendor = *in.Vendor
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
}

func strOr(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil || *v == 0 {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil || *v == 0 {
		return def
	}
	return *v
}
