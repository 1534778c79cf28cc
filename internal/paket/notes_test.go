package paket

import (
	"fmt"
	"testing"

	"github.com/stenvik/anbud/internal/errs"
)

func TestAddNote(t *testing.T) {
	db := testDB(t)
	p := createTestPaket(t, db, "Rörfirman AB")

	note, err := AddNote(db, "acme", "p1", p.ID, "  Ringde, inget svar.  ", testActor)
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if note.Text != "Ringde, inget svar." {
		t.Errorf("Text = %q, want trimmed", note.Text)
	}
	if note.CreatedByName != "Anna Andersson" {
		t.Errorf("CreatedByName = %q", note.CreatedByName)
	}
}

func TestAddNote_RejectsBlankText(t *testing.T) {
	db := testDB(t)
	p := createTestPaket(t, db, "Rörfirman AB")

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := AddNote(db, "acme", "p1", p.ID, text, testActor)
		if !errs.IsValidation(err) {
			t.Errorf("AddNote(%q) error = %v, want ValidationError", text, err)
		}
	}

	notes, err := Notes(db, p.ID)
	if err != nil {
		t.Fatalf("Notes: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("notes = %d after rejected adds, want 0", len(notes))
	}
}

func TestAddNote_RequiresPaketID(t *testing.T) {
	db := testDB(t)
	if _, err := AddNote(db, "acme", "p1", "", "hej", testActor); !errs.IsValidation(err) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestNotes_AppendOrder(t *testing.T) {
	db := testDB(t)
	p := createTestPaket(t, db, "Rörfirman AB")

	for i := 0; i < 3; i++ {
		if _, err := AddNote(db, "acme", "p1", p.ID, fmt.Sprintf("note %d", i), testActor); err != nil {
			t.Fatalf("AddNote #%d: %v", i, err)
		}
	}

	notes, err := Notes(db, p.ID)
	if err != nil {
		t.Fatalf("Notes: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("notes = %d, want 3", len(notes))
	}
	for i, n := range notes {
		if want := fmt.Sprintf("note %d", i); n.Text != want {
			t.Errorf("notes[%d].Text = %q, want %q", i, n.Text, want)
		}
	}
}

func TestNotes_SurviveSoftDelete(t *testing.T) {
	db := testDB(t)
	p := createTestPaket(t, db, "Rörfirman AB")
	if _, err := AddNote(db, "acme", "p1", p.ID, "kvar", testActor); err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if err := SoftDelete(db, "acme", "p1", p.ID, testActor); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	notes, err := Notes(db, p.ID)
	if err != nil {
		t.Fatalf("Notes: %v", err)
	}
	if len(notes) != 1 {
		t.Errorf("notes = %d after paket delete, want 1", len(notes))
	}
}
