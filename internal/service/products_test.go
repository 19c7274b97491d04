package service

import (
	"context"
	"errors"
	"testing"

	"github.com/localroots/marketplace/internal/auth"
)

func TestCreateForUser_Defaults(t *testing.T) {
	svc := NewProductService(setupTestDB(t))

	p, err := svc.CreateForUser(context.Background(), auth.Identity{ID: "u-1", Source: auth.SourceHeader}, ProductInput{})
	if err != nil {
		t.Fatalf("CreateForUser failed: %v", err)
	}
	if p.Name != "Untitled Product" || p.Category != "Others" || p.Community != "global" || p.Vendor != "Local Vendor" {
		t.Errorf("defaults not applied: %+v", p)
	}
	if p.OwnerID != "u-1" {
		t.Errorf("expected owner u-1, got %q", p.OwnerID)
	}
}

func TestProducts_DuplicateIdentityConflicts(t *testing.T) {
	svc := NewProductService(setupTestDB(t))
	ctx := context.Background()

	in := ProductInput{Name: ptr("Kente Scarf"), Price: ptr(25.0), Vendor: ptr("Ama"), Community: ptr("kumasi")}
	if _, err := svc.Create(ctx, "admin@example.com", in); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := svc.CreateForUser(ctx, auth.Identity{ID: "u-1"}, in)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if ce.Message != duplicateProductMsg {
		t.Errorf("unexpected message %q", ce.Message)
	}

	// Same name in another community is allowed
	in.Community = ptr("accra")
	if _, err := svc.Create(ctx, "admin@example.com", in); err != nil {
		t.Errorf("expected distinct community to succeed, got %v", err)
	}
}

func TestUpdateForUser_KeepsStoredValues(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	ctx := context.Background()

	p, err := svc.Create(ctx, "admin@example.com", ProductInput{Name: ptr("Basket"), Price: ptr(10.0), Stock: ptr(4)})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	db.Model(p).Updates(map[string]any{"rating": 4.5, "likes": 7})

	updated, err := svc.UpdateForUser(ctx, p.ID.String(), ProductInput{Price: ptr(12.0), Name: ptr("")})
	if err != nil {
		t.Fatalf("UpdateForUser failed: %v", err)
	}
	if updated.Name != "Basket" || updated.Price != 12 || updated.Stock != 4 {
		t.Errorf("unexpected update result %+v", updated)
	}
	if updated.Rating != 4.5 || updated.Likes != 7 {
		t.Errorf("engagement counters changed: %+v", updated)
	}
}

func TestProducts_ListAndFilter(t *testing.T) {
	svc := NewProductService(setupTestDB(t))
	ctx := context.Background()

	for _, in := range []ProductInput{
		{Name: ptr("Shea Butter"), Price: ptr(5.0), Vendor: ptr("Efua"), Community: ptr("tamale")},
		{Name: ptr("Kente Cloth"), Price: ptr(50.0), Vendor: ptr("Kofi"), Community: ptr("kumasi")},
		{Name: ptr("Kente Bag"), Price: ptr(30.0), Vendor: ptr("Kofi"), Community: ptr("kumasi")},
	} {
		if _, err := svc.Create(ctx, "admin@example.com", in); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := svc.List(ctx, ProductFilter{Query: "KENTE"})
	if err != nil || len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d (%v)", len(got), err)
	}
	got, _ = svc.List(ctx, ProductFilter{Community: "tamale"})
	if len(got) != 1 || got[0].Name != "Shea Butter" {
		t.Errorf("unexpected community filter result %+v", got)
	}
	got, _ = svc.ListByVendor(ctx, "Kofi", "", 0)
	if len(got) != 2 {
		t.Errorf("expected 2 vendor products, got %d", len(got))
	}
}

func TestProducts_GetAndDelete(t *testing.T) {
	svc := NewProductService(setupTestDB(t))
	ctx := context.Background()

	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	var ve *ValidationError
	if _, err := svc.Create(ctx, "admin@example.com", ProductInput{Price: ptr(1.0)}); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for missing name, got %v", err)
	}

	p, err := svc.Create(ctx, "admin@example.com", ProductInput{Name: ptr("Bowl"), Price: ptr(8.0)})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Delete(ctx, "admin@example.com", p.ID.String()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, "admin@example.com", p.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
