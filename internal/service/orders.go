package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/localroots/marketplace/internal/audit"
	"github.com/localroots/marketplace/internal/models"
	"gorm.io/gorm"
)

const (
	maxOrderList          = 500
	defaultSellerListSize = 50
)

// OrderInput carries order fields from a request. Nil fields are unset.
type OrderInput struct {
	BuyerName  *string
	BuyerEmail *string
	SellerID   *string
	Total      *float64
	Status     *string
	Items      []models.OrderItem
}

// OrderFilter narrows admin order listings. Query matches buyer name or e-mail.
type OrderFilter struct {
	Status   string
	SellerID string
	Query    string
}

// OrderService contains order operations.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates a new OrderService.
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// ListBySeller returns a seller's orders, newest first.
func (s *OrderService) ListBySeller(ctx context.Context, sellerID, status string, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = defaultSellerListSize
	}
	query := s.db.WithContext(ctx).Where("seller_id = ?", sellerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, storeError(err, "")
	}
	return orders, nil
}

// List returns up to 500 orders matching the filter, newest first.
func (s *OrderService) List(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.SellerID != "" {
		query = query.Where("seller_id = ?", f.SellerID)
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		like := "%" + q + "%"
		query = query.Where("LOWER(buyer_name) LIKE ? OR LOWER(buyer_email) LIKE ?", like, like)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Limit(maxOrderList).Find(&orders).Error; err != nil {
		return nil, storeError(err, "")
	}
	return orders, nil
}

// Get returns a single order.
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if err = storeError(err, ""); err == ErrNotFound {
			return nil, notFound("Order not found")
		}
		return nil, err
	}
	return &order, nil
}

// Create validates and stores a new order.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*models.Order, error) {
	if in.BuyerName == nil || strings.TrimSpace(*in.BuyerName) == "" ||
		in.BuyerEmail == nil || strings.TrimSpace(*in.BuyerEmail) == "" || in.Total == nil {
		return nil, invalid("Missing fields")
	}

	order := models.Order{Status: models.OrderStatusPending, Items: []models.OrderItem{}}
	if err := applyOrderInput(&order, in); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, storeError(err, "")
	}
	slog.Info("Order created", "order_id", order.ID, "seller_id", order.SellerID)
	return &order, nil
}

// Update sets every provided field of an order.
func (s *OrderService) Update(ctx context.Context, id string, in OrderInput) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyOrderInput(order, in); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(order).Error; err != nil {
		return nil, storeError(err, "")
	}
	return order, nil
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, actor, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{})
	if result.Error != nil {
		return storeError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return notFound("Order not found")
	}
	if err := audit.LogAction(s.db.WithContext(ctx), actor, audit.ActionDeleteOrder, "order:"+id, nil); err != nil {
		slog.Warn("Failed to write audit log", "action", audit.ActionDeleteOrder, "error", err)
	}
	return nil
}

func applyOrderInput(o *models.Order, in OrderInput) error {
	if in.Status != nil {
		status := models.OrderStatus(*in.Status)
		if !status.Valid() {
			return invalid("Invalid status %q", *in.Status)
		}
		o.Status = status
	}
	if in.Total != nil {
		if *in.Total < 0 {
			return invalid("Total must not be negative")
		}
		o.Total = *in.Total
	}
	if in.BuyerName != nil {
		o.BuyerName = strings.TrimSpace(*in.BuyerName)
	}
	if in.BuyerEmail != nil {
		o.BuyerEmail = NormalizeEmail(*in.BuyerEmail)
	}
	if in.SellerID != nil {
		o.SellerID = *in.SellerID
	}
	if in.Items != nil {
		o.Items = in.Items
	}
	return nil
}
