package pagination

import (
	"net/http/httptest"
	"testing"
)

func TestContentRange(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{total: 0, want: "reservations 0-0/0"},
		{total: 1, want: "reservations 0-0/1"},
		{total: 12, want: "reservations 0-11/12"},
	}

	for _, tt := range tests {
		if got := ContentRange("reservations", tt.total); got != tt.want {
			t.Fatalf("total %d: got %q want %q", tt.total, got, tt.want)
		}
	}
}

func TestSetContentRange(t *testing.T) {
	rec := httptest.NewRecorder()
	SetContentRange(rec, "reservations", 3)

	if got := rec.Header().Get(Header); got != "reservations 0-2/3" {
		t.Fatalf("unexpected header %q", got)
	}
	if got := rec.Header().Get("Access-Control-Expose-Headers"); got != Header {
		t.Fatalf("header not exposed, got %q", got)
	}
}
