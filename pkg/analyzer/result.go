package analyzer

import (
	"strconv"
	"strings"
)

// Tier buckets a score for display.
type Tier string

const (
	TierGood Tier = "good"
	TierFair Tier = "fair"
	TierPoor Tier = "poor"
)

// Result is the scoring service response: {fitting_score, reasons} or {reason}.
type Result struct {
	Score    *float64 `json:"fitting_score,omitempty"`
	Reasons  []string `json:"reasons,omitempty"`
	Reason   string   `json:"reason,omitempty"`
	FileName string   `json:"-"`
}

// HasScore reports whether the service returned a score.
func (r Result) HasScore() bool { return r.Score != nil }

// ScoreValue returns the score, or 0 when absent.
func (r Result) ScoreValue() float64 {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}

// ScoreLabel formats the score out of ten, e.g. "7/10" or "7.5/10".
func (r Result) ScoreLabel() string {
	if r.Score == nil {
		return ""
	}
	return strconv.FormatFloat(*r.Score, 'f', -1, 64) + "/10"
}

// Tier is good from 8, fair from 5, poor below.
func (r Result) Tier() Tier {
	switch s := r.ScoreValue(); {
	case s >= 8:
		return TierGood
	case s >= 5:
		return TierFair
	default:
		return TierPoor
	}
}

// Empty reports whether the response carried nothing displayable.
func (r Result) Empty() bool {
	return r.Score == nil && len(r.Reasons) == 0 && strings.TrimSpace(r.Reason) == ""
}
