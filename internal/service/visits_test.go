package service

import (
	"context"
	"strings"
	"testing"
)

func TestClampVisitLimit(t *testing.T) {
	tests := map[int]int{-1: 50, 0: 50, 1: 1, 200: 200, 500: 500, 10000: 500}
	for in, want := range tests {
		if got := ClampVisitLimit(in); got != want {
			t.Errorf("ClampVisitLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestVisits(t *testing.T) {
	svc := NewVisitService(setupTestDB(t))
	ctx := context.Background()

	if err := svc.Record(ctx, "  ", strings.Repeat("x", 600)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := svc.Record(ctx, "/shop", "curl"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	visits, err := svc.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(visits) != 2 {
		t.Fatalf("expected 2 visits, got %d", len(visits))
	}
	for _, v := range visits {
		if v.Path == "" {
			t.Error("expected default path")
		}
		if len(v.UserAgent) > 512 {
			t.Errorf("user agent not truncated: %d", len(v.UserAgent))
		}
	}

	limited, _ := svc.List(ctx, 1)
	if len(limited) != 1 {
		t.Errorf("expected 1 visit, got %d", len(limited))
	}

	deleted, err := svc.Clear(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", deleted)
	}
}
