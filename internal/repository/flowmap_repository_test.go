package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func now() time.Time { return time.Now().UTC() }

func TestDedupeUserIDsPreservesOrder(t *testing.T) {
	got := dedupeUserIDs([]uint64{5, 3, 5, 9, 3, 9, 9})
	want := []uint64{5, 3, 9}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDedupeUserIDsDropsZero(t *testing.T) {
	got := dedupeUserIDs([]uint64{0, 4, 0, 4})
	if len(got) != 1 || got[0] != 4 {
		t.Fatalf("got %v, want [4]", got)
	}
}

func TestDedupeUserIDsIdempotent(t *testing.T) {
	// Replacing a map twice with the same arguments must settle on the
	// same membership, which reduces to the dedup step being a fixpoint.
	in := []uint64{7, 2, 7, 0, 11, 2}
	once := dedupeUserIDs(in)
	twice := dedupeUserIDs(once)
	if len(once) != len(twice) {
		t.Fatalf("membership changed on second pass: %v vs %v", once, twice)
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("membership changed on second pass: %v vs %v", once, twice)
		}
	}
}

func TestDedupeUserIDsEmpty(t *testing.T) {
	if got := dedupeUserIDs(nil); len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
	if got := dedupeUserIDs([]uint64{0, 0}); len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}

func TestReplaceDanglingUserWritesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// The existence check sees only two of the three referenced users,
	// so Replace must roll back before touching flow_maps.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
		WithArgs(1, 2, 99).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	repo := NewFlowMapRepo(db)
	_, err = repo.Replace(context.Background(), 1, []uint64{2, 99})
	if err != ErrUserNotFound {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected statements ran: %v", err)
	}
}

func TestReplaceSameArgumentsSameMembership(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// Two identical Replace calls: the first creates the map row, the
	// second finds it; both end with the same recipient rows.
	for _, exists := range []bool{false, true} {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
			WithArgs(1, 2, 3).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		if exists {
			mock.ExpectQuery("SELECT id FROM flow_maps").
				WithArgs(1).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
		} else {
			mock.ExpectQuery("SELECT id FROM flow_maps").
				WithArgs(1).
				WillReturnRows(sqlmock.NewRows([]string{"id"}))
			mock.ExpectExec("INSERT INTO flow_maps").
				WithArgs(1).
				WillReturnResult(sqlmock.NewResult(10, 1))
		}
		mock.ExpectExec("DELETE FROM flow_map_next_users").
			WithArgs(10).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO flow_map_next_users").
			WithArgs(10, 2, 10, 3).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery("SELECT created_at, updated_at FROM flow_maps").
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now(), now()))
		mock.ExpectCommit()
	}

	repo := NewFlowMapRepo(db)
	first, err := repo.Replace(context.Background(), 1, []uint64{2, 3, 2})
	if err != nil {
		t.Fatalf("first replace: %v", err)
	}
	second, err := repo.Replace(context.Background(), 1, []uint64{2, 3, 2})
	if err != nil {
		t.Fatalf("second replace: %v", err)
	}
	if len(first.NextUserIDs) != 2 || len(second.NextUserIDs) != 2 {
		t.Fatalf("membership = %v then %v, want [2 3] both times", first.NextUserIDs, second.NextUserIDs)
	}
	for i := range first.NextUserIDs {
		if first.NextUserIDs[i] != second.NextUserIDs[i] {
			t.Fatalf("membership changed: %v vs %v", first.NextUserIDs, second.NextUserIDs)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected statements ran: %v", err)
	}
}
