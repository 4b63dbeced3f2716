package draft

import (
	"encoding/json"
	"testing"
)

func TestKeys(t *testing.T) {
	if got := TournamentKey(0); got != "adminTournamentForm_add" {
		t.Fatalf("unexpected add key: %s", got)
	}
	if got := TournamentKey(42); got != "adminTournamentForm_edit_42" {
		t.Fatalf("unexpected edit key: %s", got)
	}
	if got := OrganizerKey(7); got != "adminOrganizerForm_edit_7" {
		t.Fatalf("unexpected organizer key: %s", got)
	}
}

func TestValidate(t *testing.T) {
	valid := Draft{Key: OrganizerKey(0), Payload: json.RawMessage(`{"name":"Zeta"}`)}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}

	invalid := []Draft{
		{Key: "someOtherForm", Payload: json.RawMessage(`{}`)},
		{Key: "adminTournamentForm_edit_", Payload: json.RawMessage(`{}`)},
		{Key: TournamentKey(1)},
		{Key: TournamentKey(1), Payload: json.RawMessage(`[1,2]`)},
	}
	for _, item := range invalid {
		if err := item.Validate(); err == nil {
			t.Fatalf("expected error for draft %q %s", item.Key, item.Payload)
		}
	}
}
