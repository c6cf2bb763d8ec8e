package ids

import "testing"

func TestFormatParseRoundTrip(t *testing.T) {
	id := Format(CitizenPrefix, 42)
	if id != "C000042" {
		t.Fatalf("Format=%q want C000042", id)
	}
	n, ok := ParseUintAfterPrefix(CitizenPrefix, id)
	if !ok || n != 42 {
		t.Fatalf("ParseUintAfterPrefix(%q)=%d,%v", id, n, ok)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []string{
		"",
		"S000001",
		"C",
		"Cabc",
		"C-1",
	}
	for _, id := range tests {
		if _, ok := ParseUintAfterPrefix(CitizenPrefix, id); ok {
			t.Fatalf("expected parse failure for %q", id)
		}
	}
}

func TestLessOrdersNumerically(t *testing.T) {
	if !Less(StructurePrefix, "S999999", "S1000000") {
		t.Fatalf("expected S999999 < S1000000")
	}
	if Less(StructurePrefix, "S000002", "S000001") {
		t.Fatalf("expected S000002 > S000001")
	}
}
