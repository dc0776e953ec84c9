package audit

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/gray-logic-audio/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-audio/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-audio/migrations"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "audit.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	if err := db.Migrate(ctx, migrations.FS); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return NewSQLiteRepository(db.DB)
}

func TestSQLiteRepository_CreateGeneratesFields(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	entry := &AuditLog{
		Action:     ActionConnect,
		EntityType: EntityDevice,
		EntityID:   "BT A2DP Out",
		Source:     "mqtt",
		Details:    map[string]any{"address": "AA:BB"},
	}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !strings.HasPrefix(entry.ID, "aud-") {
		t.Errorf("ID = %q, want aud- prefix", entry.ID)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	res, err := repo.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if res.Total != 1 || len(res.Logs) != 1 {
		t.Fatalf("List() = %+v, want one entry", res)
	}
	got := res.Logs[0]
	if got.ID != entry.ID || got.EntityID != "BT A2DP Out" || got.Details["address"] != "AA:BB" {
		t.Errorf("List()[0] = %+v", got)
	}
}

func TestSQLiteRepository_ListFilters(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []AuditLog{
		{Action: ActionLoad, EntityType: EntityRegistry, Source: "config"},
		{Action: ActionConnect, EntityType: EntityDevice, EntityID: "HDMI", Source: "api"},
		{Action: ActionDisconnect, EntityType: EntityDevice, EntityID: "HDMI", Source: "api"},
		{Action: ActionConnect, EntityType: EntityDevice, EntityID: "USB", Source: "mqtt"},
		{Action: ActionRoute, EntityType: EntityStrategy, EntityID: "media", Source: "api"},
	}
	for i := range entries {
		entries[i].CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := repo.Create(ctx, &entries[i]); err != nil {
			t.Fatalf("Create(%d) error = %v", i, err)
		}
	}

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []string // entity ids, newest first
		total   int
	}{
		{"by action", Filter{Action: ActionConnect}, []string{"USB", "HDMI"}, 2},
		{"by entity", Filter{EntityType: EntityDevice, EntityID: "HDMI"}, []string{"HDMI", "HDMI"}, 2},
		{"by type", Filter{EntityType: EntityStrategy}, []string{"media"}, 1},
		{"paged", Filter{Limit: 2, Offset: 1}, []string{"USB", "HDMI"}, 5},
		{"no match", Filter{Action: "reboot"}, []string{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if res.Total != tt.total {
				t.Errorf("Total = %d, want %d", res.Total, tt.total)
			}
			if len(res.Logs) != len(tt.wantIDs) {
				t.Fatalf("len(Logs) = %d, want %d", len(res.Logs), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if res.Logs[i].EntityID != want {
					t.Errorf("Logs[%d].EntityID = %q, want %q", i, res.Logs[i].EntityID, want)
				}
			}
		})
	}
}

func TestSQLiteRepository_ListClampsLimit(t *testing.T) {
	repo := setupRepo(t)

	res, err := repo.List(context.Background(), Filter{Limit: 5000, Offset: -3})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if res.Limit != maxLimit || res.Offset != 0 {
		t.Errorf("Limit/Offset = %d/%d, want %d/0", res.Limit, res.Offset, maxLimit)
	}
	if res.Logs == nil {
		t.Error("Logs should be an empty slice, not nil")
	}
}
