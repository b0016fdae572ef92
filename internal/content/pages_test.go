package content

import (
	"context"
	"encoding/json"
	"testing"

	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
)

func TestPageCreateAndGetByKey(t *testing.T) {
	svc, err := NewPageService(newTestDB(t), testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	created, err := svc.Create(context.Background(), PageContentInput{
		PageKey: "about",
		Title:   "About us",
		Content: json.RawMessage(`{"blocks":[{"type":"text","value":"hello"}]}`),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	loaded, err := svc.GetByKey(context.Background(), "about")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.ID != created.ID || loaded.Title != "About us" {
		t.Fatalf("unexpected page %+v", loaded)
	}

	var doc map[string]any
	if err := json.Unmarshal(loaded.Content, &doc); err != nil {
		t.Fatalf("content must round-trip as JSON: %v", err)
	}
}

func TestPageKeyUniqueness(t *testing.T) {
	svc, _ := NewPageService(newTestDB(t), testLogger())

	if _, err := svc.Create(context.Background(), PageContentInput{PageKey: "faq", Title: "FAQ"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(context.Background(), PageContentInput{PageKey: "faq", Title: "FAQ again"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate page key, got %v", err)
	}
}

func TestPageRejectsInvalidJSON(t *testing.T) {
	svc, _ := NewPageService(newTestDB(t), testLogger())

	_, err := svc.Create(context.Background(), PageContentInput{
		PageKey: "about",
		Title:   "About",
		Content: json.RawMessage(`{not json`),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPageInactiveHiddenFromPublic(t *testing.T) {
	svc, _ := NewPageService(newTestDB(t), testLogger())

	inactive := false
	if _, err := svc.Create(context.Background(), PageContentInput{
		PageKey:  "draft",
		Title:    "Draft page",
		IsActive: &inactive,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.GetByKey(context.Background(), "draft")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for inactive page, got %v", err)
	}

	public, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(public) != 0 {
		t.Fatalf("expected empty public list, got %d", len(public))
	}
	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("admin list must include drafts, got %d", len(all))
	}
}

func TestFooterLifecycle(t *testing.T) {
	svc, err := NewFooterService(newTestDB(t), testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	link, err := svc.Create(context.Background(), FooterSectionInput{
		SectionType:  "links",
		Title:        "Shipping policy",
		LinkURL:      ptr("/pages/shipping"),
		DisplayOrder: 2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), FooterSectionInput{
		SectionType:  "links",
		Title:        "Contact",
		DisplayOrder: 1,
	}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	rows, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 || rows[0].Title != "Contact" {
		t.Fatalf("expected display order, got %+v", rows)
	}

	updated, err := svc.Update(context.Background(), link.ID, FooterSectionInput{
		SectionType: "links",
		Title:       "Shipping & returns",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Shipping & returns" {
		t.Fatalf("unexpected row %+v", updated)
	}

	if err := svc.Delete(context.Background(), link.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
