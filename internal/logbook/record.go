package logbook

// Record is one persisted logbook entry. Records are immutable once written:
// the logbook is append-only, there is no update or delete.
//
// ID is always derived from Text under Encoding, never caller-supplied, so
// identical (text, encoding) pairs map to the same ID.
type Record struct {
	ID        string  `json:"id"`
	Hash      *string `json:"hash"`
	Text      string  `json:"text"`
	Length    int     `json:"length"`
	Encoding  string  `json:"encoding"`
	Timestamp string  `json:"timestamp"`
}

// scanRecord is the lenient shape used when scanning existing lines for
// duplicates. Older logs wrote the file digest under "hex".
type scanRecord struct {
	Hash *string `json:"hash"`
	Hex  *string `json:"hex"`
}

// digest returns the record's file digest, preferring "hash" over the
// legacy "hex" field.
func (s scanRecord) digest() string {
	if s.Hash != nil && *s.Hash != "" {
		return *s.Hash
	}
	if s.Hex != nil {
		return *s.Hex
	}
	return ""
}
