package blog

import "testing"

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Week 5 Recap: Upsets Galore!": "week-5-recap-upsets-galore",
		"  Lock of the Week  ":         "lock-of-the-week",
		"---":                          "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q)=%q want %q", in, got, want)
		}
	}
}

func TestPostValidate(t *testing.T) {
	t.Parallel()

	p := Post{ID: "p1", Title: "Hello", Slug: "hello", Body: "body"}
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Slug = "Bad Slug"
	if err := p.Validate(); err == nil {
		t.Fatalf("expected slug error")
	}
}
