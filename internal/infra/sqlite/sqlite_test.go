package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/centavo-app/centavo/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testTemplate(owner string) domain.Template {
	anchor := domain.NewDate(2025, time.January, 5)
	return domain.Template{
		ID:            uuid.NewString(),
		OwnerID:       owner,
		Direction:     domain.Expense,
		AmountCents:   120000,
		Description:   "Aluguel",
		CategoryID:    "cat-home",
		AnchorDate:    anchor,
		Frequency:     domain.Monthly,
		LastProcessed: anchor,
		Active:        true,
	}
}

// ─── Templates ──────────────────────────────────────────────────────────────

func TestInsertGetTemplate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tpl := testTemplate("u-1")
	end := domain.NewDate(2025, time.December, 31)
	tpl.EndDate = &end

	if err := db.InsertTemplate(ctx, tpl); err != nil {
		t.Fatalf("InsertTemplate() error: %v", err)
	}

	got, err := db.GetTemplate(ctx, tpl.ID)
	if err != nil {
		t.Fatalf("GetTemplate() error: %v", err)
	}
	if got.OwnerID != "u-1" {
		t.Errorf("OwnerID = %q, want u-1", got.OwnerID)
	}
	if got.Frequency != domain.Monthly {
		t.Errorf("Frequency = %q, want MONTHLY", got.Frequency)
	}
	if !got.LastProcessed.Equal(tpl.AnchorDate) {
		t.Errorf("LastProcessed = %v, want anchor %v", got.LastProcessed, tpl.AnchorDate)
	}
	if got.EndDate == nil || !got.EndDate.Equal(end) {
		t.Errorf("EndDate = %v, want %v", got.EndDate, end)
	}
	if !got.Active {
		t.Error("Active = false, want true")
	}
}

func TestGetTemplate_NotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetTemplate(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListDueTemplates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := domain.NewDate(2025, time.June, 15)

	open := testTemplate("u-1")
	if err := db.InsertTemplate(ctx, open); err != nil {
		t.Fatal(err)
	}

	ended := testTemplate("u-1")
	past := domain.NewDate(2025, time.March, 1)
	ended.EndDate = &past
	if err := db.InsertTemplate(ctx, ended); err != nil {
		t.Fatal(err)
	}

	inactive := testTemplate("u-2")
	inactive.Active = false
	if err := db.InsertTemplate(ctx, inactive); err != nil {
		t.Fatal(err)
	}

	// End date equal to now is still eligible (inclusive cutoff).
	boundary := testTemplate("u-3")
	today := now
	boundary.EndDate = &today
	if err := db.InsertTemplate(ctx, boundary); err != nil {
		t.Fatal(err)
	}

	due, err := db.ListDueTemplates(ctx, now)
	if err != nil {
		t.Fatalf("ListDueTemplates() error: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("ListDueTemplates() returned %d, want 2", len(due))
	}
	for _, tpl := range due {
		if tpl.ID == ended.ID || tpl.ID == inactive.ID {
			t.Errorf("template %s should not be due", tpl.ID)
		}
	}
}

func TestDeactivateTemplate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tpl := testTemplate("u-1")
	if err := db.InsertTemplate(ctx, tpl); err != nil {
		t.Fatal(err)
	}
	if err := db.DeactivateTemplate(ctx, tpl.ID); err != nil {
		t.Fatalf("DeactivateTemplate() error: %v", err)
	}
	got, err := db.GetTemplate(ctx, tpl.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Active {
		t.Error("template still active after deactivation")
	}

	if err := db.DeactivateTemplate(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// ─── Materialization ────────────────────────────────────────────────────────

func TestMaterializeOccurrence(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tpl := testTemplate("u-1")
	if err := db.InsertTemplate(ctx, tpl); err != nil {
		t.Fatal(err)
	}

	occursOn := domain.NewDate(2025, time.February, 5)
	in, err := db.MaterializeOccurrence(ctx, tpl, occursOn)
	if err != nil {
		t.Fatalf("MaterializeOccurrence() error: %v", err)
	}
	if in.TemplateID != tpl.ID {
		t.Errorf("TemplateID = %q, want %q", in.TemplateID, tpl.ID)
	}
	if in.AmountCents != tpl.AmountCents {
		t.Errorf("AmountCents = %d, want %d", in.AmountCents, tpl.AmountCents)
	}

	// Checkpoint advanced with the insert.
	got, err := db.GetTemplate(ctx, tpl.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.LastProcessed.Equal(occursOn) {
		t.Errorf("LastProcessed = %v, want %v", got.LastProcessed, occursOn)
	}

	// Instance landed in the ledger.
	list, err := db.ListInstances(ctx, domain.InstanceQuery{OwnerID: "u-1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("ledger has %d entries, want 1", len(list))
	}
}

func TestMaterializeOccurrence_DuplicateDateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tpl := testTemplate("u-1")
	if err := db.InsertTemplate(ctx, tpl); err != nil {
		t.Fatal(err)
	}

	occursOn := domain.NewDate(2025, time.February, 5)
	first, err := db.MaterializeOccurrence(ctx, tpl, occursOn)
	if err != nil {
		t.Fatal(err)
	}
	// A retried run for the same due date must not create a second row.
	second, err := db.MaterializeOccurrence(ctx, tpl, occursOn)
	if err != nil {
		t.Fatalf("retry error: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("retry created a new instance %q, want existing %q", second.ID, first.ID)
	}

	list, err := db.ListInstances(ctx, domain.InstanceQuery{OwnerID: "u-1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("ledger has %d entries, want 1", len(list))
	}
}

func TestMaterializeOccurrence_CheckpointMonotonic(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tpl := testTemplate("u-1")
	if err := db.InsertTemplate(ctx, tpl); err != nil {
		t.Fatal(err)
	}

	later := domain.NewDate(2025, time.March, 5)
	if _, err := db.MaterializeOccurrence(ctx, tpl, later); err != nil {
		t.Fatal(err)
	}
	// Materializing an earlier date must not move the checkpoint back.
	earlier := domain.NewDate(2025, time.February, 5)
	if _, err := db.MaterializeOccurrence(ctx, tpl, earlier); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetTemplate(ctx, tpl.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.LastProcessed.Equal(later) {
		t.Errorf("LastProcessed = %v, want %v (moved backward)", got.LastProcessed, later)
	}
}

// ─── Categories ─────────────────────────────────────────────────────────────

func TestCategoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c := domain.Category{
		ID:        uuid.NewString(),
		OwnerID:   "u-1",
		Name:      "Transporte",
		Direction: domain.Expense,
		Keywords:  []string{"uber", "99", "combustivel"},
	}
	if err := db.InsertCategory(ctx, c); err != nil {
		t.Fatalf("InsertCategory() error: %v", err)
	}

	got, err := db.GetCategory(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCategory() error: %v", err)
	}
	if got.Name != "Transporte" {
		t.Errorf("Name = %q, want Transporte", got.Name)
	}
	if len(got.Keywords) != 3 || got.Keywords[0] != "uber" {
		t.Errorf("Keywords = %v, want [uber 99 combustivel]", got.Keywords)
	}
}

func TestListCategories_DirectionFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, c := range []domain.Category{
		{ID: "c-1", OwnerID: "u-1", Name: "Transporte", Direction: domain.Expense, Keywords: []string{"uber"}},
		{ID: "c-2", OwnerID: "u-1", Name: "Salário", Direction: domain.Income, Keywords: []string{"salario"}},
		{ID: "c-3", OwnerID: "u-2", Name: "Lazer", Direction: domain.Expense, Keywords: []string{"netflix"}},
	} {
		if err := db.InsertCategory(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	all, err := db.ListCategories(ctx, "u-1", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("all categories = %d, want 2", len(all))
	}

	expense, err := db.ListCategories(ctx, "u-1", domain.Expense)
	if err != nil {
		t.Fatal(err)
	}
	if len(expense) != 1 || expense[0].ID != "c-1" {
		t.Fatalf("expense categories = %v, want [c-1]", expense)
	}
}

func TestUpdateDeleteCategory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c := domain.Category{ID: "c-1", OwnerID: "u-1", Name: "Lazer", Direction: domain.Expense, Keywords: []string{"netflix"}}
	if err := db.InsertCategory(ctx, c); err != nil {
		t.Fatal(err)
	}

	c.Name = "Assinaturas"
	c.Keywords = []string{"netflix", "spotify"}
	if err := db.UpdateCategory(ctx, c); err != nil {
		t.Fatalf("UpdateCategory() error: %v", err)
	}
	got, err := db.GetCategory(ctx, "c-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Assinaturas" || len(got.Keywords) != 2 {
		t.Errorf("after update: name=%q keywords=%v", got.Name, got.Keywords)
	}

	if err := db.DeleteCategory(ctx, "c-1", "u-1"); err != nil {
		t.Fatalf("DeleteCategory() error: %v", err)
	}
	if _, err := db.GetCategory(ctx, "c-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := db.DeleteCategory(ctx, "c-1", "u-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("double delete err = %v, want ErrNotFound", err)
	}
}

func TestUpdateDeleteCategory_OwnerScoped(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c := domain.Category{ID: "c-1", OwnerID: "u-1", Name: "Lazer", Direction: domain.Expense, Keywords: []string{"netflix"}}
	if err := db.InsertCategory(ctx, c); err != nil {
		t.Fatal(err)
	}

	// Another owner's update reads as not found and changes nothing.
	other := c
	other.OwnerID = "u-2"
	other.Name = "Roubo"
	if err := db.UpdateCategory(ctx, other); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("cross-owner update err = %v, want ErrNotFound", err)
	}
	got, err := db.GetCategory(ctx, "c-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Lazer" {
		t.Errorf("Name = %q after cross-owner update, want Lazer", got.Name)
	}

	if err := db.DeleteCategory(ctx, "c-1", "u-2"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("cross-owner delete err = %v, want ErrNotFound", err)
	}
	if _, err := db.GetCategory(ctx, "c-1"); err != nil {
		t.Errorf("category deleted by the wrong owner: %v", err)
	}
}

// ─── Ledger Entries ─────────────────────────────────────────────────────────

func TestInsertListInstances(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	mk := func(id string, dir domain.Direction, cat string, day int) domain.Instance {
		return domain.Instance{
			ID: id, OwnerID: "u-1", Direction: dir, AmountCents: 1500,
			Description: "x", CategoryID: cat,
			Date: domain.NewDate(2025, time.May, day),
		}
	}
	for _, in := range []domain.Instance{
		mk("t-1", domain.Expense, "c-food", 1),
		mk("t-2", domain.Expense, "c-home", 10),
		mk("t-3", domain.Income, "c-salary", 20),
	} {
		if err := db.InsertInstance(ctx, in); err != nil {
			t.Fatalf("InsertInstance(%s) error: %v", in.ID, err)
		}
	}

	all, err := db.ListInstances(ctx, domain.InstanceQuery{OwnerID: "u-1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("all = %d, want 3", len(all))
	}
	// Newest first.
	if all[0].ID != "t-3" {
		t.Errorf("first entry = %s, want t-3", all[0].ID)
	}

	from := domain.NewDate(2025, time.May, 5)
	to := domain.NewDate(2025, time.May, 15)
	ranged, err := db.ListInstances(ctx, domain.InstanceQuery{
		OwnerID: "u-1", Direction: domain.Expense, From: &from, To: &to,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(ranged) != 1 || ranged[0].ID != "t-2" {
		t.Fatalf("ranged = %v, want [t-2]", ranged)
	}

	limited, err := db.ListInstances(ctx, domain.InstanceQuery{OwnerID: "u-1", Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Fatalf("limited = %d, want 2", len(limited))
	}
}

func TestDeleteInstance(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	in := domain.Instance{
		ID: "t-1", OwnerID: "u-1", Direction: domain.Expense, AmountCents: 100,
		CategoryID: "c-1", Date: domain.NewDate(2025, time.May, 1),
	}
	if err := db.InsertInstance(ctx, in); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteInstance(ctx, "t-1"); err != nil {
		t.Fatalf("DeleteInstance() error: %v", err)
	}
	if err := db.DeleteInstance(ctx, "t-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
