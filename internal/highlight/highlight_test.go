package highlight

import (
	"strings"
	"testing"
)

func TestLanguage(t *testing.T) {
	tests := []struct {
		ct, body, want string
	}{
		{"application/json; charset=utf-8", "", "json"},
		{"application/problem+json", "", "json"},
		{"text/html", "<p>", "html"},
		{"application/atom+xml", "", "xml"},
		{"", `{"a":1}`, "json"},
		{"", "plain words", ""},
		{"text/plain", "[1,2]", "json"},
	}
	for _, tt := range tests {
		if got := Language(tt.ct, tt.body); got != tt.want {
			t.Errorf("Language(%q, %q) = %q, want %q", tt.ct, tt.body, got, tt.want)
		}
	}
}

func TestPrettyJSON(t *testing.T) {
	got := PrettyJSON(`{"a":1,"b":[true]}`)
	want := "{\n  \"a\": 1,\n  \"b\": [\n    true\n  ]\n}"
	if got != want {
		t.Errorf("PrettyJSON() = %q, want %q", got, want)
	}
	if PrettyJSON("not json") != "not json" {
		t.Error("PrettyJSON() altered invalid input")
	}
}

func TestFormatDisabledEscapesTags(t *testing.T) {
	h := New("monokai", false)
	got := h.Format("[red]not a tag", "text/plain")
	if strings.Contains(got, "[red]") && !strings.Contains(got, "[red[]") {
		t.Errorf("Format() did not escape tview tags: %q", got)
	}
}

func TestFormatColorsJSON(t *testing.T) {
	h := New("monokai", true)
	got := h.Format(`{"message":"success"}`, "application/json")
	if !strings.Contains(got, "[#") {
		t.Errorf("Format() = %q, want color tags", got)
	}
	if !strings.Contains(got, "success") {
		t.Errorf("Format() lost content: %q", got)
	}
}
