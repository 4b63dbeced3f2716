package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	tournamentFormPrefix = "adminTournamentForm"
	organizerFormPrefix  = "adminOrganizerForm"
)

var keyPattern = regexp.MustCompile(`^admin(Tournament|Organizer)Form_(add|edit_[0-9]+)$`)

// Draft is an unsaved admin form payload keyed by form and record.
type Draft struct {
	Key       string
	Payload   json.RawMessage
	UpdatedAt time.Time
}

// Store persists drafts outside the main database.
type Store interface {
	Get(ctx context.Context, key string) (Draft, bool, error)
	Put(ctx context.Context, item Draft) error
	Delete(ctx context.Context, key string) error
}

func TournamentKey(id int64) string {
	return formKey(tournamentFormPrefix, id)
}

func OrganizerKey(id int64) string {
	return formKey(organizerFormPrefix, id)
}

// formKey uses the add slot for id <= 0.
func formKey(prefix string, id int64) string {
	if id <= 0 {
		return prefix + "_add"
	}
	return prefix + "_edit_" + strconv.FormatInt(id, 10)
}

func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("unknown draft key %q", key)
	}
	return nil
}

func (d Draft) Validate() error {
	if err := ValidateKey(d.Key); err != nil {
		return err
	}
	if len(d.Payload) == 0 {
		return fmt.Errorf("draft payload is required")
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(d.Payload, &probe); err != nil {
		return fmt.Errorf("draft payload must be a JSON object")
	}
	return nil
}
