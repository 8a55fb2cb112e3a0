package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	dataset "equipment-cloud/internal/dataset/domain"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func sampleRecords() []dataset.EquipmentRecord {
	return []dataset.EquipmentRecord{
		{Name: "Pump1", Type: "Pump", Flowrate: 10, Pressure: 5, Temperature: 300},
		{Name: "Pump2", Type: "Pump", Flowrate: 20, Pressure: 5, Temperature: 320},
	}
}

func sampleSummary() dataset.SummaryStatistics {
	distribution := dataset.NewTypeDistribution()
	distribution.Set("Pump", 2)
	return dataset.SummaryStatistics{
		TotalCount:       2,
		AvgFlowrate:      15,
		AvgPressure:      5,
		AvgTemperature:   310,
		TypeDistribution: distribution,
	}
}

func TestCreateThenGetByID(t *testing.T) {
	repo := NewDatasetRepository(nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, "plant.csv", "alice", sampleRecords(), sampleSummary())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if created.UploadedAt.IsZero() {
		t.Fatalf("expected uploaded_at stamp")
	}

	loaded, err := repo.GetByID(ctx, "alice", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Filename != "plant.csv" || loaded.Owner != "alice" {
		t.Fatalf("unexpected dataset: %+v", loaded)
	}
	if len(loaded.Records) != 2 || loaded.Records[0].Name != "Pump1" {
		t.Fatalf("records not preserved in order: %+v", loaded.Records)
	}
	if loaded.Summary.AvgFlowrate != 15 {
		t.Fatalf("summary not preserved: %+v", loaded.Summary)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := NewDatasetRepository(nil)
	_, err := repo.GetByID(context.Background(), "alice", "missing")
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByID_OtherOwnerForbidden(t *testing.T) {
	repo := NewDatasetRepository(nil)
	ctx := context.Background()
	created, err := repo.Create(ctx, "plant.csv", "alice", sampleRecords(), sampleSummary())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ds, err := repo.GetByID(ctx, "bob", created.ID)
	if !errors.Is(err, dataset.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if ds != nil {
		t.Fatalf("forbidden access must not return data")
	}
}

func TestCreate_RejectsSummaryMismatch(t *testing.T) {
	repo := NewDatasetRepository(nil)
	summary := sampleSummary()
	summary.TotalCount = 3

	_, err := repo.Create(context.Background(), "plant.csv", "alice", sampleRecords(), summary)
	if !errors.Is(err, dataset.ErrCountMismatch) {
		t.Fatalf("expected ErrCountMismatch, got %v", err)
	}
}

func TestListRecent_NewestFirstWithLimit(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	repo := NewDatasetRepository(clock)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 7; i++ {
		created, err := repo.Create(ctx, fmt.Sprintf("file%d.csv", i), "alice", sampleRecords(), sampleSummary())
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		ids = append(ids, created.ID)
		clock.now = clock.now.Add(time.Minute)
	}

	entries, err := repo.ListRecent(ctx, "alice", 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	for i, entry := range entries {
		want := ids[len(ids)-1-i]
		if entry.ID != want {
			t.Fatalf("entry %d: expected %s, got %s", i, want, entry.ID)
		}
	}
}

func TestListRecent_TieBrokenByInsertionOrder(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	repo := NewDatasetRepository(clock)
	ctx := context.Background()

	first, _ := repo.Create(ctx, "first.csv", "alice", sampleRecords(), sampleSummary())
	second, _ := repo.Create(ctx, "second.csv", "alice", sampleRecords(), sampleSummary())

	entries, err := repo.ListRecent(ctx, "alice", 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if entries[0].ID != second.ID || entries[1].ID != first.ID {
		t.Fatalf("later insertion must win ties: %+v", entries)
	}
}

func TestListRecent_FiltersByOwnerAndEmpty(t *testing.T) {
	repo := NewDatasetRepository(nil)
	ctx := context.Background()
	if _, err := repo.Create(ctx, "plant.csv", "alice", sampleRecords(), sampleSummary()); err != nil {
		t.Fatalf("create: %v", err)
	}

	entries, err := repo.ListRecent(ctx, "bob", 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries for bob, got %d", len(entries))
	}
}

func TestCreate_ConcurrentUniqueIDs(t *testing.T) {
	repo := NewDatasetRepository(nil)
	ctx := context.Background()

	const workers = 32
	idCh := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := repo.Create(ctx, "plant.csv", "alice", sampleRecords(), sampleSummary())
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			idCh <- created.ID
		}()
	}
	wg.Wait()
	close(idCh)

	seen := make(map[string]bool)
	for id := range idCh {
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
	if len(seen) != workers {
		t.Fatalf("expected %d datasets, got %d", workers, len(seen))
	}
}

func TestDatasetCopiesAreIndependent(t *testing.T) {
	repo := NewDatasetRepository(nil)
	ctx := context.Background()
	created, err := repo.Create(ctx, "plant.csv", "alice", sampleRecords(), sampleSummary())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Records[0].Name = "mutated"
	loaded, err := repo.GetByID(ctx, "alice", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Records[0].Name != "Pump1" {
		t.Fatalf("stored dataset mutated through returned copy")
	}
}
