package livingapps

import "testing"

func TestExtractRecordID(t *testing.T) {
	url := "https://my.living-apps.de/rest/apps/6913437daff7287a0f9bab21/records/507f1f77bcf86cd799439011"
	if got := ExtractRecordID(url); got != "507f1f77bcf86cd799439011" {
		t.Fatalf("expected record id, got %q", got)
	}

	if got := ExtractRecordID("https://my.living-apps.de/rest/apps/x/records/notanid"); got != "" {
		t.Fatalf("expected empty for malformed reference, got %q", got)
	}
	if got := ExtractRecordID(""); got != "" {
		t.Fatalf("expected empty for empty input, got %q", got)
	}
	// Uppercase hex is valid; the match is case-insensitive.
	if got := ExtractRecordID("x/records/507F1F77BCF86CD799439011"); got != "507F1F77BCF86CD799439011" {
		t.Fatalf("expected uppercase id, got %q", got)
	}
	// Identifier must terminate the string.
	if got := ExtractRecordID("x/records/507f1f77bcf86cd799439011/extra"); got != "" {
		t.Fatalf("expected empty for non-trailing id, got %q", got)
	}
}

func TestExtractRecordID_RoundTrip(t *testing.T) {
	url := "https://my.living-apps.de/rest/apps/abc/records/507f1f77bcf86cd799439011"
	id := ExtractRecordID(url)
	rebuilt := RecordURL("https://my.living-apps.de/rest", "6913437daff7287a0f9bab21", id)
	if got := ExtractRecordID(rebuilt); got != id {
		t.Fatalf("round trip changed id: %q != %q", got, id)
	}
}

func TestServiceLookup_Resolve(t *testing.T) {
	services := []Service{
		{ID: "507f1f77bcf86cd799439011", Fields: ServiceFields{Name: "Rückenmassage", Price: 45}},
		{ID: "507f1f77bcf86cd799439012", Fields: ServiceFields{Name: "Fußreflexzonenmassage", Price: 38}},
	}
	lookup := BuildServiceLookup(services)

	svc, ok := lookup.Resolve("https://my.living-apps.de/rest/apps/x/records/507f1f77bcf86cd799439011")
	if !ok {
		t.Fatalf("expected reference to resolve")
	}
	if svc.Fields.Name != "Rückenmassage" {
		t.Fatalf("unexpected service: %q", svc.Fields.Name)
	}

	if _, ok := lookup.Resolve("https://my.living-apps.de/rest/apps/x/records/notanid"); ok {
		t.Fatalf("malformed reference must not resolve")
	}
	if _, ok := lookup.Resolve(""); ok {
		t.Fatalf("absent reference must not resolve")
	}
	if _, ok := lookup.Resolve("x/records/aaaaaaaaaaaaaaaaaaaaaaaa"); ok {
		t.Fatalf("unknown id must not resolve")
	}
}

func TestBuildServiceLookup_LastWriteWins(t *testing.T) {
	services := []Service{
		{ID: "507f1f77bcf86cd799439011", Fields: ServiceFields{Name: "alt"}},
		{ID: "507f1f77bcf86cd799439011", Fields: ServiceFields{Name: "neu"}},
	}
	lookup := BuildServiceLookup(services)
	if lookup["507f1f77bcf86cd799439011"].Fields.Name != "neu" {
		t.Fatalf("expected last write to win")
	}
}
