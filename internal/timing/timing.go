// Package timing computes response-delay statistics over recorded turns.
package timing

import (
	"math"

	"github.com/yoockh/mockview/internal/models"
)

// LongPauseThresholdSec is the strict lower bound for a delay to count as a
// long pause.
const LongPauseThresholdSec = 4.0

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summarize flattens every recorded delay (the main delay of every turn plus
// the follow-up delay where one was recorded) into one sequence and reports
// its mean, its count, and how many entries exceed the long-pause threshold.
// TotalTurns deliberately counts individual delays, not logical turns.
func Summarize(turns []models.SessionTurn) models.TimingSummary {
	var delays []float64
	for _, t := range turns {
		delays = append(delays, t.MainResponseDelaySec)
		if t.FollowUpResponseDelaySec != nil {
			delays = append(delays, *t.FollowUpResponseDelaySec)
		}
	}

	out := models.TimingSummary{TotalTurns: len(delays)}
	if len(delays) == 0 {
		return out
	}

	var sum float64
	for _, d := range delays {
		sum += d
		if d > LongPauseThresholdSec {
			out.LongPausesCount++
		}
	}
	out.AvgResponseDelaySec = Round2(sum / float64(len(delays)))
	return out
}
