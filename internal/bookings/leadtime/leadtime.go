package leadtime

import (
	"fmt"
	"time"

	"sagradago/pkg/model"
)

// Clock supplies the current time so date checks stay testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Months are approximated as 30 days throughout. The parish office sets
// these; change them only together with the message table below.
const (
	confessionLeadDays     = 2
	weddingLeadDays        = 1 * 30
	burialLeadDays         = 1
	baptismLeadDays        = 45
	confirmationLeadDays   = 2 * 30
	firstCommunionLeadDays = 2 * 30
	anointingLeadDays      = 1
)

// burialNoticeDays is what the requirements screen advertises for Burial.
// It disagrees with the enforced burialLeadDays; product has not decided
// which one is right, so both are kept.
const burialNoticeDays = 3

var leadReasons = map[model.Sacrament]string{
	model.SacramentConfession:     "Confession bookings must be at least 2 days in advance.",
	model.SacramentWedding:        "Wedding bookings must be at least 1 month in advance.",
	model.SacramentBurial:         "Burial bookings must be at least 1 day in advance.",
	model.SacramentBaptism:        "Baptism bookings must be at least 1 and a half month in advance.",
	model.SacramentConfirmation:   "Confirmation bookings must be at least 2 months in advance.",
	model.SacramentFirstCommunion: "First Communion bookings must be at least 2 months in advance.",
	model.SacramentAnointing:      "Anointing of the Sick bookings must be at least 1 day in advance.",
}

// MinimumLeadDays returns the enforced minimum number of days between
// "now" and the earliest bookable date. Unknown sacraments get 0,
// meaning no restriction.
func MinimumLeadDays(s model.Sacrament) int {
	switch s {
	case model.SacramentConfession:
		return confessionLeadDays
	case model.SacramentWedding:
		return weddingLeadDays
	case model.SacramentBurial:
		return burialLeadDays
	case model.SacramentBaptism:
		return baptismLeadDays
	case model.SacramentConfirmation:
		return confirmationLeadDays
	case model.SacramentFirstCommunion:
		return firstCommunionLeadDays
	case model.SacramentAnointing:
		return anointingLeadDays
	}
	return 0
}

// NoticeDays is the lead time shown on the requirements screen. It
// matches MinimumLeadDays except for Burial, where the advertised value
// differs from the enforced one.
func NoticeDays(s model.Sacrament) int {
	if s == model.SacramentBurial {
		return burialNoticeDays
	}
	return MinimumLeadDays(s)
}

// Rule evaluates candidate booking dates against per-sacrament minimum
// lead times.
type Rule struct {
	clock Clock
}

func NewRule(clock Clock) *Rule {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Rule{clock: clock}
}

// CheckDate returns a non-empty user-facing reason when date falls
// before the sacrament's earliest bookable instant, and "" when the
// date is acceptable. An empty sacrament or zero date is accepted
// unconditionally.
func (r *Rule) CheckDate(sacrament model.Sacrament, date time.Time) string {
	if sacrament == "" || date.IsZero() {
		return ""
	}

	days := MinimumLeadDays(sacrament)
	if days == 0 {
		return ""
	}

	earliest := r.clock.Now().Add(time.Duration(days) * 24 * time.Hour)
	if date.Before(earliest) {
		return leadReasons[sacrament]
	}

	return ""
}

// EarliestDate returns the first instant a booking for the sacrament
// would be accepted, for display on the booking form.
func (r *Rule) EarliestDate(sacrament model.Sacrament) time.Time {
	return r.clock.Now().Add(time.Duration(MinimumLeadDays(sacrament)) * 24 * time.Hour)
}

// FormatNotice renders the advertised lead time for a requirements
// screen, e.g. "at least 3 days in advance".
func FormatNotice(s model.Sacrament) string {
	days := NoticeDays(s)
	if days == 0 {
		return "no advance notice required"
	}
	if days == 1 {
		return "at least 1 day in advance"
	}
	return fmt.Sprintf("at least %d days in advance", days)
}
