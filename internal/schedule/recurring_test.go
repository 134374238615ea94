package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpulse/reminder-service/internal/model"
)

func TestNext_NonRecurring(t *testing.T) {
	rem := model.Reminder{SendAt: time.Now()}

	adv := Next(rem)
	assert.True(t, adv.Done)
}

func TestNext_AdvancesOneDay(t *testing.T) {
	sendAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	end := sendAt.Add(29 * 24 * time.Hour)

	rem := model.Reminder{
		IsRecurring:       true,
		RecurringDuration: 30,
		CurrentDay:        1,
		SendAt:            sendAt,
		EndDate:           &end,
	}

	adv := Next(rem)
	require.False(t, adv.Done)
	assert.Equal(t, 2, adv.CurrentDay)
	assert.Equal(t, sendAt.Add(24*time.Hour), adv.NextSendAt)
}

func TestNext_LastDayFinishes(t *testing.T) {
	rem := model.Reminder{
		IsRecurring:       true,
		RecurringDuration: 30,
		CurrentDay:        30,
		SendAt:            time.Now(),
	}

	adv := Next(rem)
	assert.True(t, adv.Done)
}

func TestNext_EndDateCeilingWins(t *testing.T) {
	// current_day says there are occurrences left, but the next one
	// would land past end_date. The window the user chose wins.
	sendAt := time.Date(2025, 6, 29, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	rem := model.Reminder{
		IsRecurring:       true,
		RecurringDuration: 30,
		CurrentDay:        5,
		SendAt:            sendAt,
		EndDate:           &end,
	}

	adv := Next(rem)
	assert.True(t, adv.Done)
}

func TestNext_FullRun(t *testing.T) {
	sendAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	end := sendAt.Add(29 * 24 * time.Hour)

	rem := model.Reminder{
		IsRecurring:       true,
		RecurringDuration: 30,
		CurrentDay:        1,
		SendAt:            sendAt,
		EndDate:           &end,
	}

	occurrences := 1
	for {
		adv := Next(rem)
		if adv.Done {
			break
		}

		rem.CurrentDay = adv.CurrentDay
		rem.SendAt = adv.NextSendAt
		occurrences++
	}

	assert.Equal(t, 30, occurrences)
	assert.Equal(t, end, rem.SendAt)
}
