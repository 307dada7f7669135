package booking

import (
	"github.com/Waruntorn-K/shuttleq/internal/court"
	"github.com/Waruntorn-K/shuttleq/pkg/utils"
)

// slotMinutes is the fixed slot length. A trailing window shorter than this
// is dropped rather than emitted as a partial slot.
const slotMinutes = 60

// overlaps reports whether two half-open minute intervals [aStart,aEnd) and
// [bStart,bEnd) intersect.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// GenerateSlots expands one day's availability window into one-hour slots,
// marking each slot unavailable when it overlaps a confirmed booking.
// A nil availability row yields no slots. Pure function.
func GenerateSlots(avail *court.CourtAvailability, bookings []CourtBooking) ([]Slot, error) {
	if avail == nil {
		return []Slot{}, nil
	}

	open, err := utils.ParseClock(avail.OpenTime)
	if err != nil {
		return nil, err
	}
	close, err := utils.ParseClock(avail.CloseTime)
	if err != nil {
		return nil, err
	}

	type interval struct{ start, end int }
	var booked []interval
	for _, b := range bookings {
		if b.Status != StatusConfirmed {
			continue
		}
		s, err := utils.ParseClock(b.StartTime)
		if err != nil {
			return nil, err
		}
		e, err := utils.ParseClock(b.EndTime)
		if err != nil {
			return nil, err
		}
		booked = append(booked, interval{s, e})
	}

	slots := []Slot{}
	for cur := open; cur+slotMinutes <= close; cur += slotMinutes {
		slot := Slot{
			StartTime: utils.FormatClock(cur),
			EndTime:   utils.FormatClock(cur + slotMinutes),
			Available: true,
		}
		for _, iv := range booked {
			if overlaps(cur, cur+slotMinutes, iv.start, iv.end) {
				slot.Available = false
				break
			}
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
