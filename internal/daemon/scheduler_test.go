package daemon

import (
	"context"
	"testing"
	"time"

	"github.com/centavo-app/centavo/internal/app/recurring"
	"github.com/centavo-app/centavo/internal/domain"
	"github.com/centavo-app/centavo/internal/infra/sqlite"
)

func TestNextRunTime(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, loc)

	// Later today.
	next := NextRunTime(now, 23, 30)
	if want := time.Date(2025, time.June, 10, 23, 30, 0, 0, loc); !next.Equal(want) {
		t.Errorf("NextRunTime = %v, want %v", next, want)
	}

	// Already past for today: tomorrow.
	next = NextRunTime(now, 0, 5)
	if want := time.Date(2025, time.June, 11, 0, 5, 0, 0, loc); !next.Equal(want) {
		t.Errorf("NextRunTime = %v, want %v", next, want)
	}

	// Exactly now: strictly after, so tomorrow.
	next = NextRunTime(now, 12, 0)
	if want := time.Date(2025, time.June, 11, 12, 0, 0, 0, loc); !next.Equal(want) {
		t.Errorf("NextRunTime = %v, want %v", next, want)
	}
}

func TestRunOnce_ExpandsDueTemplates(t *testing.T) {
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	anchor := domain.DateOf(time.Now()).AddDate(0, 0, -3)
	tpl := domain.Template{
		ID: "tpl-1", OwnerID: "u-1", Direction: domain.Expense,
		AmountCents: 900, Description: "Café", CategoryID: "c-1",
		AnchorDate: anchor, Frequency: domain.Daily,
		LastProcessed: anchor, Active: true,
	}
	if err := db.InsertTemplate(context.Background(), tpl); err != nil {
		t.Fatal(err)
	}

	expander := recurring.New(recurring.DefaultConfig(), db, nil)
	s := NewScheduler(expander, DefaultConfig().Recurring, nil)
	s.RunOnce(context.Background())

	instances, err := db.ListInstances(context.Background(), domain.InstanceQuery{OwnerID: "u-1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(instances) != 3 {
		t.Fatalf("ledger has %d entries, want 3", len(instances))
	}
}

func TestSchedulerRun_StopsOnCancel(t *testing.T) {
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	expander := recurring.New(recurring.DefaultConfig(), db, nil)
	s := NewScheduler(expander, DefaultConfig().Recurring, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
}
