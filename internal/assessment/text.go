package assessment

import (
	"encoding/json"
	"strings"
)

// Text holds the bilingual display text of a question or option. The
// question bank stores either a plain string (used for both languages)
// or an object with "en"/"ms" keys; an empty side falls back to the other.
type Text struct {
	EN string `json:"en"`
	MS string `json:"ms"`
}

func NewText(en, ms string) Text {
	t := Text{EN: en, MS: ms}
	t.fill()
	return t
}

func (t *Text) fill() {
	if t.EN == "" {
		t.EN = t.MS
	}
	if t.MS == "" {
		t.MS = t.EN
	}
}

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.EN = s
		t.MS = s
		return nil
	}

	var obj struct {
		EN string `json:"en"`
		MS string `json:"ms"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	t.EN = obj.EN
	t.MS = obj.MS
	t.fill()
	return nil
}

// Display returns the text in the requested language, falling back to
// English when the requested side is empty.
func (t Text) Display(lang string) string {
	if strings.EqualFold(lang, "ms") && t.MS != "" {
		return t.MS
	}
	if t.EN != "" {
		return t.EN
	}
	return t.MS
}

func (t Text) IsEmpty() bool {
	return t.EN == "" && t.MS == ""
}

// Opt-out markers, matched case- and whitespace-insensitively in both languages.
var optOutTexts = []string{"none of the above", "tiada di atas"}

// IsOptOutText reports whether s is the "None of the above" marker.
func IsOptOutText(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, marker := range optOutTexts {
		if s == marker {
			return true
		}
	}
	return false
}
