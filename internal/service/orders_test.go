package service

import (
	"context"
	"errors"
	"testing"

	"github.com/localroots/marketplace/internal/models"
)

func TestOrders_CreateDefaultsAndValidation(t *testing.T) {
	svc := NewOrderService(setupTestDB(t))
	ctx := context.Background()

	var ve *ValidationError
	if _, err := svc.Create(ctx, OrderInput{BuyerName: ptr("Yaw")}); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for missing fields, got %v", err)
	}
	if _, err := svc.Create(ctx, OrderInput{
		BuyerName: ptr("Yaw"), BuyerEmail: ptr("yaw@example.com"), Total: ptr(10.0), Status: ptr("lost"),
	}); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for bad status, got %v", err)
	}

	order, err := svc.Create(ctx, OrderInput{
		BuyerName:  ptr("Yaw"),
		BuyerEmail: ptr("Yaw@Example.com"),
		SellerID:   ptr("seller-1"),
		Total:      ptr(42.5),
		Items:      []models.OrderItem{{ProductID: "p-1", Name: "Bowl", Price: 21.25, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("expected pending status, got %s", order.Status)
	}

	stored, err := svc.Get(ctx, order.ID.String())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(stored.Items) != 1 || stored.Items[0].Quantity != 2 {
		t.Errorf("items not stored: %+v", stored.Items)
	}
	if stored.BuyerEmail != "yaw@example.com" {
		t.Errorf("expected normalized buyer email, got %q", stored.BuyerEmail)
	}
}

func TestOrders_ListUpdateDelete(t *testing.T) {
	svc := NewOrderService(setupTestDB(t))
	ctx := context.Background()

	for _, seller := range []string{"s-1", "s-1", "s-2"} {
		if _, err := svc.Create(ctx, OrderInput{
			BuyerName: ptr("Abena"), BuyerEmail: ptr("abena@example.com"), SellerID: ptr(seller), Total: ptr(5.0),
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	mine, err := svc.ListBySeller(ctx, "s-1", "", 0)
	if err != nil || len(mine) != 2 {
		t.Fatalf("expected 2 seller orders, got %d (%v)", len(mine), err)
	}

	updated, err := svc.Update(ctx, mine[0].ID.String(), OrderInput{Status: ptr("shipped")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != models.OrderStatusShipped || updated.BuyerName != "Abena" {
		t.Errorf("unexpected update result %+v", updated)
	}

	shipped, _ := svc.List(ctx, OrderFilter{Status: "shipped"})
	if len(shipped) != 1 {
		t.Errorf("expected 1 shipped order, got %d", len(shipped))
	}
	byQuery, _ := svc.List(ctx, OrderFilter{Query: "ABENA"})
	if len(byQuery) != 3 {
		t.Errorf("expected 3 orders matching buyer, got %d", len(byQuery))
	}

	if err := svc.Delete(ctx, "admin@example.com", updated.ID.String()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, updated.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
