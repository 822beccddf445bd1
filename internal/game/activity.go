package game

// ActivityLimit caps the activity log.
const ActivityLimit = 10

// ActivityLog holds player-facing messages, newest first.
type ActivityLog []string

func (l *ActivityLog) Add(msg string) {
	next := make(ActivityLog, 0, min(len(*l)+1, ActivityLimit))
	next = append(next, msg)
	next = append(next, *l...)
	if len(next) > ActivityLimit {
		next = next[:ActivityLimit]
	}
	*l = next
}
