package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusQueued, StatusInProgress, true},
		{StatusInProgress, StatusFinished, true},
		{StatusQueued, StatusFinished, false},
		{StatusQueued, StatusQueued, false},
		{StatusInProgress, StatusQueued, false},
		{StatusInProgress, StatusInProgress, false},
		{StatusFinished, StatusQueued, false},
		{StatusFinished, StatusInProgress, false},
		{StatusFinished, StatusFinished, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"queued", "in_progress", "finished"} {
		status, err := ParseStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, Status(valid), status)
	}

	for _, invalid := range []string{"", "Queued", "shipped", "done"} {
		_, err := ParseStatus(invalid)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	}
}

func TestParsePriority(t *testing.T) {
	priority, err := ParsePriority("")
	assert.NoError(t, err)
	assert.Equal(t, PriorityMedium, priority)

	priority, err = ParsePriority("high")
	assert.NoError(t, err)
	assert.Equal(t, PriorityHigh, priority)

	_, err = ParsePriority("urgent")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}
