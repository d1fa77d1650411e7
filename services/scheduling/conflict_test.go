package scheduling

import (
	"context"
	"errors"
	"testing"

	"theray/models"
)

func TestConflictDetector(t *testing.T) {
	repo := newMemorySessionRepo()
	repo.put(models.Session{ID: "s1", ProviderID: "prov-1", Date: monday, StartTime: "09:00", EndTime: "10:00", Status: models.StatusScheduled})
	repo.put(models.Session{ID: "s2", ProviderID: "prov-1", Date: monday, StartTime: "12:00", EndTime: "13:00", Status: models.StatusCancelled})
	repo.put(models.Session{ID: "s3", ProviderID: "prov-2", Date: monday, StartTime: "14:00", EndTime: "15:00", Status: models.StatusScheduled})
	d := &ConflictDetector{Sessions: repo}

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"back to back after", "10:00", "11:00", false},
		{"back to back before", "08:00", "09:00", false},
		{"overlap", "09:30", "10:30", true},
		{"cancelled slot is free", "12:00", "13:00", false},
		{"other provider ignored", "14:00", "15:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, _ := NewInterval(tt.start, tt.end)
			got, err := d.HasConflict(context.Background(), "prov-1", monday, iv)
			if err != nil {
				t.Fatalf("HasConflict: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestConflictDetectorStorageErrors(t *testing.T) {
	repo := newMemorySessionRepo()
	repo.put(models.Session{ID: "bad", ProviderID: "prov-1", Date: monday, StartTime: "9am", EndTime: "10:00", Status: models.StatusScheduled})
	d := &ConflictDetector{Sessions: repo}
	iv, _ := NewInterval("11:00", "12:00")

	if _, err := d.HasConflict(context.Background(), "prov-1", monday, iv); !errors.Is(err, ErrStorage) {
		t.Fatalf("expected StorageError for unreadable stored interval, got %v", err)
	}

	repo.findErr = errBoom
	_, err := d.HasConflict(context.Background(), "prov-1", monday, iv)
	if !errors.Is(err, ErrStorage) || !errors.Is(err, errBoom) {
		t.Fatalf("expected StorageError wrapping cause, got %v", err)
	}
}
