package domain

import (
	"regexp"
	"strings"
	"time"
)

// statusSummaryLimit caps the fallback status at the first N characters of the
// raw page text when the status phrase is not found.
const statusSummaryLimit = 200

var (
	// vesselLocationRe matches "aboard the <VESSEL> and is scheduled to arrive in <LOCATION>".
	vesselLocationRe = regexp.MustCompile(`aboard the ([A-Z0-9 ]+) and is scheduled to arrive in ([A-Z ()]+)`)
	// statusRe captures from "Your vehicle" up to the pick-up-date or
	// track-another-vehicle sentinel, across line breaks.
	statusRe = regexp.MustCompile(`(?s)(Your vehicle.*?)(?:Your estimated available pick-up date is:|Track another vehicle)`)

	newlineRe = regexp.MustCompile(`\s*\n\s*`)
)

// Extract parses the raw tracking-page text into a StatusRecord. It is total:
// any shape of input, including empty, yields a fully populated record. The page
// belongs to a third party and its structure is not a stable contract, so missing
// fields degrade to UnknownValue instead of signalling an error.
func Extract(rawText string, now time.Time) StatusRecord {
	record := NewUnknownRecord(now)

	trimmed := strings.TrimSpace(rawText)
	if trimmed == "" {
		return record
	}

	if m := vesselLocationRe.FindStringSubmatch(rawText); m != nil {
		record.Vessel = strings.TrimSpace(m[1])
		record.Location = strings.TrimSpace(m[2])
	}

	if m := statusRe.FindStringSubmatch(rawText); m != nil {
		record.Status = strings.TrimSpace(newlineRe.ReplaceAllString(m[1], " "))
	} else {
		// Lossy summary, not an error.
		summary := trimmed
		if len(summary) > statusSummaryLimit {
			summary = summary[:statusSummaryLimit]
		}
		record.Status = summary
	}

	return record
}
