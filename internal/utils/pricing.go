package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Deposit derivation bounds, in pence.
const (
	depositRatePercent = 10
	depositFloorPence  = 500   // £5
	depositCapPence    = 10000 // £100
)

// ParseDate converts a yyyy-mm-dd formatted string into a time.Time.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", dateStr)
	}
	return t, nil
}

// DurationDays returns the chargeable rental duration in whole days,
// rounding any partial day up. The end date must be after the start.
func DurationDays(start, end time.Time) (int, error) {
	if !end.After(start) {
		return 0, fmt.Errorf("end date must be after start date")
	}
	hours := end.Sub(start).Hours()
	days := int(hours / 24)
	if hours != float64(days*24) {
		days++
	}
	return days, nil
}

// RentalCostPence is the owner's daily rate applied over the duration.
func RentalCostPence(days int, dailyRatePence int64) int64 {
	return int64(days) * dailyRatePence
}

// DepositPence derives the security deposit from the tool's replacement
// value: 10% of the value, floored at £5 and capped at £100.
func DepositPence(replacementValuePence int64) int64 {
	deposit := replacementValuePence * depositRatePercent / 100
	if deposit < depositFloorPence {
		deposit = depositFloorPence
	}
	if deposit > depositCapPence {
		deposit = depositCapPence
	}
	return deposit
}
