package service

import (
	"context"
	"errors"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Kumasi Weavers":    "kumasi-weavers",
		"  Arts/Crafts  ":   "arts-crafts",
		"Café & Co.":        "caf--co",
		"already-a-slug-42": "already-a-slug-42",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCommunities(t *testing.T) {
	svc := NewCatalogService(setupTestDB(t))
	ctx := context.Background()

	c, err := svc.CreateCommunity(ctx, CommunityInput{Name: ptr("Bolga Baskets")})
	if err != nil {
		t.Fatalf("CreateCommunity failed: %v", err)
	}
	if c.Slug != "bolga-baskets" {
		t.Errorf("unexpected slug %q", c.Slug)
	}

	_, err = svc.CreateCommunity(ctx, CommunityInput{Name: ptr("Other"), Slug: ptr("Bolga Baskets")})
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Errorf("expected ConflictError for duplicate slug, got %v", err)
	}

	var ve *ValidationError
	if _, err := svc.CreateCommunity(ctx, CommunityInput{}); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for missing name, got %v", err)
	}

	got, err := svc.GetCommunity(ctx, "bolga-baskets")
	if err != nil || got.ID != c.ID {
		t.Fatalf("GetCommunity by slug: %v", err)
	}

	updated, err := svc.UpdateCommunity(ctx, c.ID.String(), CommunityInput{Description: ptr("Woven in Bolgatanga")})
	if err != nil {
		t.Fatalf("UpdateCommunity failed: %v", err)
	}
	if updated.Description != "Woven in Bolgatanga" || updated.Name != "Bolga Baskets" {
		t.Errorf("unexpected update result %+v", updated)
	}

	if err := svc.DeleteCommunity(ctx, c.ID.String()); err != nil {
		t.Fatalf("DeleteCommunity failed: %v", err)
	}
	if _, err := svc.GetCommunity(ctx, c.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCategories(t *testing.T) {
	svc := NewCatalogService(setupTestDB(t))
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, "Home Decor", "")
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if cat.Slug != "home-decor" {
		t.Errorf("unexpected slug %q", cat.Slug)
	}

	var ce *ConflictError
	if _, err := svc.CreateCategory(ctx, "Home décor", "home-decor"); !errors.As(err, &ce) {
		t.Errorf("expected ConflictError, got %v", err)
	}

	list, _ := svc.ListCategories(ctx)
	if len(list) != 1 {
		t.Errorf("expected 1 category, got %d", len(list))
	}

	renamed, err := svc.UpdateCategory(ctx, cat.ID.String(), "Home & Living", "")
	if err != nil {
		t.Fatalf("UpdateCategory failed: %v", err)
	}
	if renamed.Name != "Home & Living" || renamed.Slug != "home-decor" {
		t.Errorf("unexpected update result %+v", renamed)
	}

	if err := svc.DeleteCategory(ctx, cat.ID.String()); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	if err := svc.DeleteCategory(ctx, cat.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
