package organizer

import "testing"

func TestOrganizerValidate(t *testing.T) {
	base := Organizer{
		Name:         "Zeta Esports",
		ContactEmail: "hello@zeta.gg",
		Badges:       []string{BadgeVerified, BadgeFeaturedTournaments},
		Rating:       DefaultRating,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid organizer, got %v", err)
	}

	cases := map[string]func(o *Organizer){
		"missing name":    func(o *Organizer) { o.Name = " " },
		"missing email":   func(o *Organizer) { o.ContactEmail = "" },
		"invalid email":   func(o *Organizer) { o.ContactEmail = "zeta.gg" },
		"unknown badge":   func(o *Organizer) { o.Badges = []string{"Gold Star"} },
		"rating too high": func(o *Organizer) { o.Rating = 5.5 },
		"negative count":  func(o *Organizer) { o.PlayersServed = -1 },
	}
	for name, mutate := range cases {
		item := base
		item.Badges = append([]string(nil), base.Badges...)
		mutate(&item)
		if err := item.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
