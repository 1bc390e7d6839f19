package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/spellspire/pkg/vocab"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <pack.json> [pack.json ...]\n", os.Args[0])
		os.Exit(1)
	}

	validator := &PackValidator{}
	failed := false
	for _, filename := range os.Args[1:] {
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}

	fmt.Println("All pack files are valid!")
}

type PackValidator struct {
	errors []string
}

func (v *PackValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("pack file must have .json extension: %s", baseName)
	}
	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidID(nameWithoutExt) {
		return fmt.Errorf("pack filename '%s' must be lowercase snake_case (e.g., my_pack.json, not MyPack.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var pack vocab.Pack
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&pack); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.validatePack(&pack, nameWithoutExt)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *PackValidator) validatePack(pack *vocab.Pack, filenameID string) {
	if pack.ID == "" {
		v.addError("pack is missing an id")
	} else if !isValidID(pack.ID) {
		v.addError(fmt.Sprintf("pack id '%s' should be lowercase snake_case", pack.ID))
	} else if pack.ID != filenameID {
		v.addError(fmt.Sprintf("pack id '%s' should match the filename '%s.json'", pack.ID, filenameID))
	}
	if pack.ID == vocab.CustomPackID {
		v.addError("pack id 'custom' is reserved for uploaded word lists")
	}
	if pack.Name == "" {
		v.addError("pack is missing a name")
	}
	if len(pack.Words) == 0 {
		v.addError("pack has no words")
	}

	seen := map[string]bool{}
	for i, w := range pack.Words {
		if strings.TrimSpace(w.Word) == "" {
			v.addError(fmt.Sprintf("word %d is empty", i))
			continue
		}
		if w.ID != strings.ToLower(w.Word) {
			v.addError(fmt.Sprintf("word '%s' has id '%s', expected the lower-cased word", w.Word, w.ID))
		}
		if seen[w.ID] {
			v.addError(fmt.Sprintf("word '%s' appears more than once", w.Word))
		}
		seen[w.ID] = true

		switch w.Difficulty {
		case vocab.DifficultyEasy, vocab.DifficultyMedium, vocab.DifficultyHard, vocab.DifficultyLong:
		default:
			v.addError(fmt.Sprintf("word '%s' has unknown difficulty '%s'", w.Word, w.Difficulty))
		}
		if w.Phonetic == "" {
			v.addError(fmt.Sprintf("word '%s' is missing a phonetic", w.Word))
		}
		if w.Meaning == "" {
			v.addError(fmt.Sprintf("word '%s' is missing a meaning", w.Word))
		}
		if w.Proficiency != 0 || w.NextReview != 0 || w.LastReview != 0 {
			v.addError(fmt.Sprintf("word '%s' carries learning state; packs must start zeroed", w.Word))
		}
	}
}

func (v *PackValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
