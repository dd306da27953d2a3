package calculation

import (
	"fmt"

	"github.com/luanwie/cltfacil/internal/domain"
	"github.com/shopspring/decimal"
)

// minutesPerDay is the size of the minutes-since-midnight axis.
const minutesPerDay = 1440

// overlap returns the length of the intersection of [aStart,aEnd) and
// [bStart,bEnd).
func overlap(aStart, aEnd, bStart, bEnd int) int {
	lo, hi := aStart, aEnd
	if bStart > lo {
		lo = bStart
	}
	if bEnd < hi {
		hi = bEnd
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// ResolveNightMinutes resolves how many real minutes of the shift fall
// inside the policy's night window. Both the shift and the window live on
// a 0..2880 axis: an end at or before its start is pushed forward one day,
// and the window is duplicated one day backward and forward so a shift on
// either side of midnight intersects it with plain interval math instead
// of special cases.
//
// When allowExtension is set, any minutes the shift works past the end of
// an overlapped window copy also count: once the night window was reached,
// the differential continues through the prorogated hours.
//
// Declared in-window break minutes are subtracted, never below zero.
func ResolveNightMinutes(shiftStart, shiftEnd int, policy domain.NightWindowPolicy, allowExtension bool, breakMinutes int) (int, error) {
	if shiftStart < 0 || shiftStart >= minutesPerDay || shiftEnd < 0 || shiftEnd >= minutesPerDay {
		return 0, fmt.Errorf("shift minutes must be within [0,1440), got start=%d end=%d: %w", shiftStart, shiftEnd, domain.ErrInvalidShift)
	}
	if shiftStart == shiftEnd {
		return 0, fmt.Errorf("zero-length shift at minute %d: %w", shiftStart, domain.ErrInvalidShift)
	}
	if breakMinutes < 0 {
		return 0, fmt.Errorf("break minutes %d: %w", breakMinutes, domain.ErrNegativeValue)
	}
	if err := policy.Validate(); err != nil {
		return 0, err
	}

	end := shiftEnd
	if end <= shiftStart {
		end += minutesPerDay
	}
	winStart, winEnd := policy.StartMinute, policy.EndMinute
	if winEnd <= winStart {
		winEnd += minutesPerDay
	}

	night := 0
	overlapped := false
	extensionFrom := 0
	for _, offset := range []int{-minutesPerDay, 0, minutesPerDay} {
		ws, we := winStart+offset, winEnd+offset
		ov := overlap(shiftStart, end, ws, we)
		if ov == 0 {
			continue
		}
		night += ov
		if !overlapped || we > extensionFrom {
			extensionFrom = we
		}
		overlapped = true
	}
	if allowExtension && overlapped && end > extensionFrom {
		night += end - extensionFrom
	}

	night -= breakMinutes
	if night < 0 {
		night = 0
	}
	return night, nil
}

// ReducedNightHours converts resolved real minutes into legal night hours
// using the policy's divisor. The urban category divides by 52.5, yielding
// more hours than real time; categories without reduction divide by 60.
func ReducedNightHours(nightMinutes int, policy domain.NightWindowPolicy) decimal.Decimal {
	if nightMinutes <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(nightMinutes)).Div(policy.ReducedMinuteDivisor)
}
