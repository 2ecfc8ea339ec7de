// Package queue holds the pure math of the same-day walk-in queue:
// dense positions and wait estimates over already-fetched rows.
package queue

import "time"

// RemainingServiceMin estimates how many minutes the client currently
// in the chair still needs, from the service duration and when the
// service started. Never negative: an overrunning cut counts as zero.
func RemainingServiceMin(durationMin int, startedAt, now time.Time) int {
	elapsed := int(now.Sub(startedAt) / time.Minute)
	remaining := durationMin - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// EstimateWait is the duration-sum method: the wait for a queue member
// is the remaining time of whoever is in service plus the full
// durations of everyone still inqueue ahead of them.
func EstimateWait(aheadDurationsMin []int, inServiceRemainingMin int) int {
	wait := inServiceRemainingMin
	for _, d := range aheadDurationsMin {
		wait += d
	}
	return wait
}

// EstimateWaitByPosition is the coarse position-times-duration
// heuristic. It overestimates whenever per-client durations differ and
// is kept only for displays that need to match historical numbers;
// the API uses EstimateWait.
func EstimateWaitByPosition(baseDurationMin, position int) int {
	return baseDurationMin * position
}
