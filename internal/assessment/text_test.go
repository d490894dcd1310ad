package assessment

import (
	"encoding/json"
	"testing"
)

func TestTextUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		en   string
		ms   string
	}{
		{name: "plain string used for both", raw: `"Waste management"`, en: "Waste management", ms: "Waste management"},
		{name: "object with both languages", raw: `{"en":"Energy use","ms":"Penggunaan tenaga"}`, en: "Energy use", ms: "Penggunaan tenaga"},
		{name: "empty ms falls back to en", raw: `{"en":"Energy use","ms":""}`, en: "Energy use", ms: "Energy use"},
		{name: "empty en falls back to ms", raw: `{"en":"","ms":"Penggunaan tenaga"}`, en: "Penggunaan tenaga", ms: "Penggunaan tenaga"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got Text
			if err := json.Unmarshal([]byte(tc.raw), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.EN != tc.en || got.MS != tc.ms {
				t.Fatalf("got {en:%q ms:%q}, want {en:%q ms:%q}", got.EN, got.MS, tc.en, tc.ms)
			}
		})
	}
}

func TestTextDisplay(t *testing.T) {
	tests := []struct {
		name string
		text Text
		lang string
		want string
	}{
		{name: "requested language", text: Text{EN: "Yes", MS: "Ya"}, lang: "ms", want: "Ya"},
		{name: "default english", text: Text{EN: "Yes", MS: "Ya"}, lang: "en", want: "Yes"},
		{name: "missing ms falls back to en", text: Text{EN: "Yes"}, lang: "ms", want: "Yes"},
		{name: "missing en falls back to ms", text: Text{MS: "Ya"}, lang: "en", want: "Ya"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.text.Display(tc.lang); got != tc.want {
				t.Fatalf("Display(%q) = %q, want %q", tc.lang, got, tc.want)
			}
		})
	}
}

func TestIsOptOutText(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"None of the above", true},
		{"  none OF the Above  ", true},
		{"Tiada di atas", true},
		{"TIADA DI ATAS", true},
		{"All of the above", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := IsOptOutText(tc.in); got != tc.want {
			t.Errorf("IsOptOutText(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
