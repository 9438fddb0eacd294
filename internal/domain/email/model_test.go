package email

import "testing"

func TestMessageValidate(t *testing.T) {
	t.Parallel()

	valid := Message{To: []string{"fan@example.com"}, Subject: "Picks due", HTML: "<p>hi</p>"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	withName := valid
	withName.From = "Commissioner <commish@example.com>"
	if err := withName.Validate(); err != nil {
		t.Fatalf("expected named sender to be valid: %v", err)
	}

	tests := map[string]Message{
		"no recipients":   {Subject: "s", HTML: "h"},
		"bad recipient":   {To: []string{"nope"}, Subject: "s", HTML: "h"},
		"missing subject": {To: []string{"fan@example.com"}, HTML: "h"},
		"missing html":    {To: []string{"fan@example.com"}, Subject: "s", Text: "plain only"},
		"bad sender":      {To: []string{"fan@example.com"}, Subject: "s", HTML: "h", From: "???"},
		"named recipient": {To: []string{"Fan <fan@example.com>"}, Subject: "s", HTML: "h"},
		"bad named from":  {To: []string{"fan@example.com"}, Subject: "s", HTML: "h", From: "League <nope>"},
	}
	for name, msg := range tests {
		if err := msg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
