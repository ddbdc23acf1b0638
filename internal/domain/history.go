package domain

import (
	"strings"
	"time"
)

// ActionAll is the action filter value that matches every audit entry.
const ActionAll = "all"

// AuditQuery filters the audit log. Start and End are calendar days in UTC;
// both bounds are inclusive of the whole day.
type AuditQuery struct {
	Search string
	Action string
	Start  *time.Time
	End    *time.Time
}

// Matches reports whether l satisfies the query.
func (q AuditQuery) Matches(l AuditLog) bool {
	if q.Search != "" && !strings.Contains(strings.ToLower(l.ProductName), strings.ToLower(q.Search)) {
		return false
	}
	if q.Action != "" && q.Action != ActionAll && string(l.Action) != q.Action {
		return false
	}
	if q.Start != nil && l.Timestamp.Before(startOfDay(*q.Start)) {
		return false
	}
	if q.End != nil && !l.Timestamp.Before(startOfDay(*q.End).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
