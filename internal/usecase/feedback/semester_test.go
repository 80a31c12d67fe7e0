package feedback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSemesterLabels(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		current  string
		previous string
	}{
		{
			name:     "january is S1, previous is last year's S2",
			now:      time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
			current:  "2026-S1",
			previous: "2025-S2",
		},
		{
			name:     "june boundary stays in S1",
			now:      time.Date(2026, time.June, 30, 23, 59, 0, 0, time.UTC),
			current:  "2026-S1",
			previous: "2025-S2",
		},
		{
			name:     "july flips to S2, previous is same-year S1",
			now:      time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC),
			current:  "2026-S2",
			previous: "2026-S1",
		},
		{
			name:     "december is S2",
			now:      time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
			current:  "2026-S2",
			previous: "2026-S1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.current, CurrentSemesterLabel(tt.now))
			assert.Equal(t, tt.previous, PreviousSemesterLabel(tt.now))
		})
	}
}
