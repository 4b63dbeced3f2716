package querybuilder

import (
	"reflect"
	"testing"
)

type sampleRow struct {
	ID        int64  `db:"id,readonly"`
	Name      string `db:"name"`
	Email     string `db:"contact_email"`
	Ignored   string `db:"-"`
	CreatedAt string `db:"created_at,readonly"`
	internal  string `db:"internal"`
}

func TestInsertModel(t *testing.T) {
	query, args, err := InsertModel("organizers", sampleRow{ID: 9, Name: "Zeta", Email: "z@z.gg"}, "id", "created_at")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}
	want := "INSERT INTO organizers (name, contact_email) VALUES ($1, $2) RETURNING id, created_at"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if !reflect.DeepEqual(args, []any{"Zeta", "z@z.gg"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateModel(t *testing.T) {
	query, args, err := UpdateModel("organizers", &sampleRow{Name: "Zeta", Email: "z@z.gg"}, Eq("id", int64(3)), "id")
	if err != nil {
		t.Fatalf("update model: %v", err)
	}
	want := "UPDATE organizers SET name = $1, contact_email = $2 WHERE id = $3 RETURNING id"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 3 || args[2] != int64(3) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestColumns(t *testing.T) {
	got := Columns(sampleRow{})
	want := []string{"id", "name", "contact_email", "created_at"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected columns: %+v", got)
	}
	if Columns(42) != nil {
		t.Fatalf("expected nil columns for non-struct")
	}
}

func TestInsertModel_Invalid(t *testing.T) {
	var nilRow *sampleRow
	if _, _, err := InsertModel("organizers", nilRow); err == nil {
		t.Fatalf("expected error for nil model")
	}
	if _, _, err := InsertModel("organizers", "nope"); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}
