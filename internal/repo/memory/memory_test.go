package memory

import (
	"context"
	"testing"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
)

func TestStore_WebsitesAndOwner(t *testing.T) {
	s := New()
	s.AddWebsite(domain.Website{ID: "w1", URL: "https://one.example", UserID: "u1"})
	s.AddWebsite(domain.Website{ID: "w2", URL: "https://two.example", UserID: "u2"})

	ctx := context.Background()
	sites, err := s.List(ctx)
	if err != nil || len(sites) != 2 {
		t.Fatalf("list: %v, %d sites", err, len(sites))
	}

	owner, err := s.FindOwner(ctx, "w2")
	if err != nil || owner != "u2" {
		t.Fatalf("find owner: %v, %q", err, owner)
	}
	if _, err := s.FindOwner(ctx, "nope"); err == nil {
		t.Fatal("want error for unknown website")
	}
}

func TestStore_TicksAppendOnly(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreateTick(ctx, &domain.Tick{WebsiteID: "w1", RegionID: "india", Status: domain.StatusUp}); err != nil {
		t.Fatalf("create tick: %v", err)
	}
	if err := s.CreateTick(ctx, &domain.Tick{WebsiteID: "w1", RegionID: "india", Status: domain.StatusDown}); err != nil {
		t.Fatalf("create tick: %v", err)
	}

	ticks := s.Ticks()
	if len(ticks) != 2 {
		t.Fatalf("want 2 ticks, got %d", len(ticks))
	}
	if ticks[0].ID == "" || ticks[0].ID == ticks[1].ID {
		t.Fatalf("ticks should get distinct ids: %q %q", ticks[0].ID, ticks[1].ID)
	}
	if ticks[0].CreatedAt.IsZero() {
		t.Fatal("tick should get a creation time")
	}
}

func TestStore_ListEnabledFiltersByUserAndFlag(t *testing.T) {
	s := New()
	s.AddIntegration(domain.Integration{UserID: "u1", Type: domain.IntegrationSlack, Enabled: true})
	s.AddIntegration(domain.Integration{UserID: "u1", Type: domain.IntegrationEmail, Enabled: false})
	s.AddIntegration(domain.Integration{UserID: "u2", Type: domain.IntegrationWebhook, Enabled: true})

	got, err := s.ListEnabled(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list enabled: %v", err)
	}
	if len(got) != 1 || got[0].Type != domain.IntegrationSlack {
		t.Fatalf("unexpected integrations: %+v", got)
	}
}
