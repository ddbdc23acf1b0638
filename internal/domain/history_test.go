package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuditQuery_Matches(t *testing.T) {
	day := func(d int) *time.Time {
		ts := time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
		return &ts
	}
	entry := AuditLog{
		Action:      ActionUpdate,
		ProductName: "Wireless Mouse",
		Timestamp:   time.Date(2024, 5, 10, 23, 59, 59, 999_000_000, time.UTC),
	}

	tests := []struct {
		name  string
		query AuditQuery
		want  bool
	}{
		{"empty query", AuditQuery{}, true},
		{"name substring any case", AuditQuery{Search: "MOUSE"}, true},
		{"name miss", AuditQuery{Search: "keyboard"}, false},
		{"action all", AuditQuery{Action: ActionAll}, true},
		{"action match", AuditQuery{Action: "UPDATE"}, true},
		{"action miss", AuditQuery{Action: "DELETE"}, false},
		{"end day inclusive", AuditQuery{End: day(10)}, true},
		{"end day before", AuditQuery{End: day(9)}, false},
		{"start day inclusive", AuditQuery{Start: day(10)}, true},
		{"start day after", AuditQuery{Start: day(11)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Matches(entry))
		})
	}
}

func TestNotification_Expired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	n := Notification{ExpiresAt: now.Add(5 * time.Second)}

	assert.False(t, n.Expired(now))
	assert.True(t, n.Expired(now.Add(5*time.Second)))
}

func TestThemeFor(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeFor(true))
	assert.Equal(t, ThemeLight, ThemeFor(false))
	assert.False(t, Theme("blue").IsValid())
}
