package rest

import (
	"net/url"
	"testing"
	"time"
)

func TestQueryEncode(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2025, 9, 6, 16, 0, 0, 0, time.FixedZone("EDT", -4*3600))
	q := From("week_settings").
		Select("*").
		Where(Eq("season", 2025), Lte("deadline", deadline), IsNull("reminder_sent_at")).
		Or(NotNull("home_score"), Neq("status", "scheduled")).
		Order("season.asc", "week.asc").
		Limit(10)

	values, err := url.ParseQuery(q.Encode())
	if err != nil {
		t.Fatalf("parse encoded query: %v", err)
	}

	want := map[string]string{
		"select":           "*",
		"season":           "eq.2025",
		"deadline":         "lte.2025-09-06T20:00:00Z",
		"reminder_sent_at": "is.null",
		"or":               "(home_score.not.is.null,status.neq.scheduled)",
		"order":            "season.asc,week.asc",
		"limit":            "10",
	}
	for key, value := range want {
		if got := values.Get(key); got != value {
			t.Fatalf("unexpected %s: got=%q want=%q", key, got, value)
		}
	}
}

func TestQueryIsImmutable(t *testing.T) {
	t.Parallel()

	base := From("games").Where(Eq("season", 2025))
	week1 := base.Where(Eq("week", 1))
	week2 := base.Where(Eq("week", 2))

	v1, _ := url.ParseQuery(week1.Encode())
	v2, _ := url.ParseQuery(week2.Encode())
	if v1.Get("week") != "eq.1" || v2.Get("week") != "eq.2" {
		t.Fatalf("derived queries share filters: %q %q", week1.Encode(), week2.Encode())
	}
	if vb, _ := url.ParseQuery(base.Encode()); vb.Get("week") != "" {
		t.Fatalf("base query was mutated: %q", base.Encode())
	}
}
