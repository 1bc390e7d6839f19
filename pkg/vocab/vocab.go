// Package vocab holds the vocabulary model and the spaced-repetition
// scheduling engine that drives card bounties and deck assembly.
package vocab

import (
	"strings"
	"time"
)

// Difficulty buckets a word for deck balancing and display.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyLong   Difficulty = "long"
)

// MaxProficiency is the mastery cap. A word at this level no longer
// enters the bounty pool.
const MaxProficiency = 5

// Review intervals per proficiency level, indexed by the level reached.
// Beyond the table the last interval repeats.
var intervals = []time.Duration{
	5 * time.Hour,
	24 * time.Hour,
	3 * 24 * time.Hour,
	7 * 24 * time.Hour,
	14 * 24 * time.Hour,
}

// Vocabulary is one word and its learning state. Review timestamps are
// Unix milliseconds; zero means the word has never been scheduled.
type Vocabulary struct {
	ID            string     `json:"id"`
	Word          string     `json:"word"`
	Phonetic      string     `json:"phonetic"`
	Meaning       string     `json:"meaning"`
	Difficulty    Difficulty `json:"difficulty"`
	MasteryStreak int        `json:"masteryStreak"`
	Proficiency   int        `json:"proficiency"`
	FailStreak    int        `json:"failStreak"`
	IsRetest      bool       `json:"isRetest"`
	NextReview    int64      `json:"nextReview"`
	LastReview    int64      `json:"lastReview,omitempty"`
}

// New builds a fresh vocabulary entry with zeroed learning state.
func New(word, phonetic, meaning string, difficulty Difficulty) Vocabulary {
	return Vocabulary{
		ID:         strings.ToLower(word),
		Word:       word,
		Phonetic:   phonetic,
		Meaning:    meaning,
		Difficulty: difficulty,
	}
}

// UpdateProficiency applies one graded attempt and returns the updated
// record. The input is not modified.
//
// Success raises proficiency by one (capped at 5) and schedules the next
// review one interval out. Failure schedules an immediate retest; a second
// failure on the retest drops proficiency by one level.
func UpdateProficiency(v Vocabulary, success bool, now time.Time) Vocabulary {
	nowMs := now.UnixMilli()
	v.LastReview = nowMs

	if success {
		if v.Proficiency < MaxProficiency {
			v.Proficiency++
		}
		idx := v.Proficiency
		if idx > len(intervals)-1 {
			idx = len(intervals) - 1
		}
		v.NextReview = nowMs + intervals[idx].Milliseconds()
		v.FailStreak = 0
		v.IsRetest = false
	} else {
		v.FailStreak++
		if v.IsRetest {
			if v.Proficiency > 0 {
				v.Proficiency--
			}
			v.IsRetest = false
			v.FailStreak = 0
		} else {
			v.IsRetest = true
		}
		v.NextReview = nowMs
	}

	v.MasteryStreak = v.Proficiency
	return v
}

// IsDue reports whether the word belongs in the bounty pool: it has been
// scheduled, is not mastered, and its review time has arrived, or it is
// flagged for an immediate retest.
func (v Vocabulary) IsDue(now time.Time) bool {
	if v.IsRetest {
		return true
	}
	return v.Proficiency < MaxProficiency && v.NextReview > 0 && now.UnixMilli() >= v.NextReview
}

// DifficultyForWord buckets uploaded words the same way preset packs do.
func DifficultyForWord(word string) Difficulty {
	if len(word) > 7 {
		return DifficultyLong
	}
	return DifficultyMedium
}

// ApplyMastery overlays saved per-word progress onto a fresh list. Words
// without saved progress are returned untouched. The progress map is
// keyed by the lower-cased word id.
func ApplyMastery(list []Vocabulary, progress map[string]Vocabulary) []Vocabulary {
	if len(progress) == 0 {
		return list
	}
	out := make([]Vocabulary, len(list))
	for i, v := range list {
		if saved, ok := progress[v.ID]; ok {
			v.Proficiency = saved.Proficiency
			v.MasteryStreak = saved.MasteryStreak
			v.FailStreak = saved.FailStreak
			v.IsRetest = saved.IsRetest
			v.NextReview = saved.NextReview
			v.LastReview = saved.LastReview
		}
		out[i] = v
	}
	return out
}

// MasteredCount returns how many words have reached the proficiency cap.
func MasteredCount(list []Vocabulary) int {
	n := 0
	for _, v := range list {
		if v.Proficiency >= MaxProficiency {
			n++
		}
	}
	return n
}
