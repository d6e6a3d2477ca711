// ABOUTME: Duplicate interaction detection
// ABOUTME: Scores a candidate against recent interactions sharing participants
package crm

import (
	"strings"
	"time"

	"github.com/harperreed/rolo/models"
)

const (
	duplicateDateWindowDays = 3
	duplicateMinOverlap     = 0.5
	duplicateMinSharedWords = 3
	duplicateWordRatio      = 0.3
	significantWordLength   = 3 // tokens must be longer than this
)

// FindDuplicateInteractions returns existing interactions that look like the
// proposed one: participant sets overlapping at least 50%, dated within 3
// calendar days, with summaries sharing enough significant words. The caller
// decides what to do with the matches; nothing is blocked or merged here.
func FindDuplicateInteractions(participants []string, date, summary string, existing []models.Interaction) []models.Interaction {
	candidateSet := toSet(participants)
	newWords := significantWords(summary)

	var matches []models.Interaction
	for _, in := range existing {
		if !withinDateWindow(date, in.Date, duplicateDateWindowDays) {
			continue
		}

		otherSet := toSet(in.ContactIDs)
		shared := 0
		for id := range candidateSet {
			if otherSet[id] {
				shared++
			}
		}
		if shared == 0 {
			continue
		}

		larger := len(candidateSet)
		if len(otherSet) > larger {
			larger = len(otherSet)
		}
		if float64(shared)/float64(larger) < duplicateMinOverlap {
			continue
		}

		if similarSummaries(newWords, significantWords(in.Summary)) {
			matches = append(matches, in)
		}
	}
	return matches
}

// similarSummaries treats summaries as similar when they share at least
// min(3, 0.3 * |new words|) significant words.
func similarSummaries(newWords, oldWords map[string]bool) bool {
	shared := 0
	for w := range newWords {
		if oldWords[w] {
			shared++
		}
	}

	threshold := duplicateWordRatio * float64(len(newWords))
	if threshold > duplicateMinSharedWords {
		threshold = duplicateMinSharedWords
	}
	return float64(shared) >= threshold
}

// significantWords tokenizes on whitespace and keeps lowercased tokens longer
// than three characters.
func significantWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, tok := range strings.Fields(text) {
		if len(tok) > significantWordLength {
			words[strings.ToLower(tok)] = true
		}
	}
	return words
}

func withinDateWindow(a, b string, days int) bool {
	ta, errA := time.Parse("2006-01-02", a)
	tb, errB := time.Parse("2006-01-02", b)
	if errA != nil || errB != nil {
		return false
	}
	diff := ta.Sub(tb)
	if diff < 0 {
		diff = -diff
	}
	return diff <= time.Duration(days)*24*time.Hour
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
