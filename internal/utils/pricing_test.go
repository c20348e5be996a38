package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	assert.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())

	_, err = ParseDate("15/03/2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDurationDays(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad test date %q: %v", s, err)
		}
		return d
	}

	t.Run("WholeDays", func(t *testing.T) {
		days, err := DurationDays(day("2026-03-01"), day("2026-03-04"))
		assert.NoError(t, err)
		assert.Equal(t, 3, days)
	})

	t.Run("SingleDay", func(t *testing.T) {
		days, err := DurationDays(day("2026-03-01"), day("2026-03-02"))
		assert.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		_, err := DurationDays(day("2026-03-04"), day("2026-03-01"))
		assert.Error(t, err)
	})

	t.Run("SameDay", func(t *testing.T) {
		_, err := DurationDays(day("2026-03-01"), day("2026-03-01"))
		assert.Error(t, err)
	})
}

func TestRentalCostPence(t *testing.T) {
	assert.Equal(t, int64(1500), RentalCostPence(3, 500))
	assert.Equal(t, int64(0), RentalCostPence(0, 500))
}

func TestDepositPence(t *testing.T) {
	t.Run("TenPercent", func(t *testing.T) {
		assert.Equal(t, int64(2000), DepositPence(20000)) // £200 tool -> £20 deposit
	})

	t.Run("Floor", func(t *testing.T) {
		assert.Equal(t, int64(500), DepositPence(1000)) // £10 tool floors at £5
		assert.Equal(t, int64(500), DepositPence(0))
	})

	t.Run("Cap", func(t *testing.T) {
		assert.Equal(t, int64(10000), DepositPence(500000)) // £5000 tool caps at £100
	})

	t.Run("Boundaries", func(t *testing.T) {
		assert.Equal(t, int64(500), DepositPence(5000))     // exactly the floor
		assert.Equal(t, int64(10000), DepositPence(100000)) // exactly the cap
	})
}
