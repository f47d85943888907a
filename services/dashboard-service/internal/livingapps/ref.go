package livingapps

import "regexp"

// Living Apps record identifiers are 24 hex characters; applookup fields
// store the full record URL with the identifier at the end.
var recordIDPattern = regexp.MustCompile(`(?i)([0-9a-f]{24})$`)

// ExtractRecordID pulls the record identifier out of an applookup URL.
// It returns "" for empty input or when no trailing identifier is found;
// a malformed reference is treated as absent, never as an error.
func ExtractRecordID(url string) string {
	if url == "" {
		return ""
	}
	m := recordIDPattern.FindString(url)
	return m
}

// RecordURL builds the full applookup URL for a record, the only shape the
// store accepts for reference fields (a bare identifier is rejected).
func RecordURL(baseURL, appID, recordID string) string {
	return baseURL + "/apps/" + appID + "/records/" + recordID
}

// ServiceLookup maps record identifiers to service catalog entries.
type ServiceLookup map[string]Service

// BuildServiceLookup indexes services by record id. Duplicate ids should not
// occur (the store guarantees uniqueness); last write wins if they do.
func BuildServiceLookup(services []Service) ServiceLookup {
	lookup := make(ServiceLookup, len(services))
	for _, s := range services {
		lookup[s.ID] = s
	}
	return lookup
}

// Resolve follows an applookup reference to its service catalog entry.
func (l ServiceLookup) Resolve(ref string) (Service, bool) {
	id := ExtractRecordID(ref)
	if id == "" {
		return Service{}, false
	}
	s, ok := l[id]
	return s, ok
}
