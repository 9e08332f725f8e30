package surveillance

import "time"

// Tier classifies a plan by how close its next analysis is.
type Tier string

const (
	TierOverdue  Tier = "overdue"
	TierUrgent   Tier = "urgent"
	TierUpcoming Tier = "upcoming"
	TierNormal   Tier = "normal"
)

// Classify maps the days remaining until due to an urgency tier:
//
//	daysUntil < 0   overdue
//	0..3            urgent
//	4..7            upcoming
//	> 7             normal
//
// The band boundaries (3 and 7 inclusive) drive dashboard colors and
// reminder thresholds and must not drift. Pure function.
func Classify(due, asOf time.Time) Tier {
	days := DaysUntil(due, asOf)
	switch {
	case days < 0:
		return TierOverdue
	case days <= 3:
		return TierUrgent
	case days <= 7:
		return TierUpcoming
	default:
		return TierNormal
	}
}

// tierRank orders tiers from most to least pressing for sorting and
// minimum-urgency filtering.
func tierRank(t Tier) int {
	switch t {
	case TierOverdue:
		return 0
	case TierUrgent:
		return 1
	case TierUpcoming:
		return 2
	default:
		return 3
	}
}

// priorityRank orders the caller-assigned priority, highest first.
func priorityRank(p Priority) int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityNormal:
		return 2
	default:
		return 3
	}
}
