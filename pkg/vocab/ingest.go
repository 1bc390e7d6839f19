package vocab

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoWords is returned when an uploaded word list yields no usable
// entries.
var ErrNoWords = errors.New("no valid vocabulary found")

type uploadEntry struct {
	Word     string `json:"word"`
	Phonetic string `json:"phonetic"`
	Meaning  string `json:"meaning"`
}

// ParseWordList turns an uploaded file into vocabulary entries. JSON
// input must be an array of objects with at least a "word" field; plain
// text is one word per line, optionally followed by a meaning after a
// comma, semicolon, or tab. Learning state starts zeroed.
func ParseWordList(data []byte) ([]Vocabulary, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, ErrNoWords
	}

	if strings.HasPrefix(trimmed, "[") {
		var entries []uploadEntry
		if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
			return nil, err
		}
		out := make([]Vocabulary, 0, len(entries))
		for _, e := range entries {
			word := strings.TrimSpace(e.Word)
			if word == "" {
				continue
			}
			phonetic := e.Phonetic
			if phonetic == "" {
				phonetic = "/.../"
			}
			v := New(word, phonetic, e.Meaning, DifficultyForWord(word))
			out = append(out, v)
		}
		if len(out) == 0 {
			return nil, ErrNoWords
		}
		return out, nil
	}

	var out []Vocabulary
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == '\t'
		})
		word := strings.TrimSpace(parts[0])
		if word == "" {
			continue
		}
		meaning := ""
		if len(parts) > 1 {
			meaning = strings.TrimSpace(parts[1])
		}
		out = append(out, New(word, "/.../", meaning, DifficultyForWord(word)))
	}
	if len(out) == 0 {
		return nil, ErrNoWords
	}
	return out, nil
}
