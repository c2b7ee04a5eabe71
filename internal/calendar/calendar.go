// Package calendar exports ages and date ranges as iCalendar documents.
package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/engine"
)

var uidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.UIDNamespace))

// Options tunes the generated events.
type Options struct {
	// Reminder is an ISO 8601 duration relative to the event start (e.g. "-P1D").
	// Empty disables alarms.
	Reminder string

	// Summary renders a birthday event title. Nil selects the English default.
	Summary func(name string, age int) string

	// Stamp is written as DTSTAMP. Zero means time.Now().
	Stamp time.Time
}

func (o Options) stamp() *ical.Prop {
	t := o.Stamp
	if t.IsZero() {
		t = time.Now()
	}
	p := ical.NewProp(config.PropDTStamp)
	p.SetDateTime(t.UTC())
	return p
}

func defaultSummary(name string, age int) string {
	if age == 0 {
		return fmt.Sprintf(config.FormatBirth, name)
	}
	return fmt.Sprintf(config.FormatAgeEvent, name, age)
}

func newCalendar() *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refresh := ical.NewProp(config.PropRefresh)
	refresh.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refresh)
	return cal
}

func encode(cal *ical.Calendar) ([]byte, error) {
	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// ParseReminder normalises an alarm trigger such as "-p1d" to "-P1D". An empty
// value means no alarm. Anything that is not an iCalendar DURATION is rejected.
func ParseReminder(value string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return "", nil
	}
	// The ical parser accepts a bare "P", which carries no duration at all.
	if strings.TrimLeft(v, "+-") == "P" {
		return "", errors.New(config.ErrReminderFormat)
	}
	prop := ical.NewProp(config.PropTrigger)
	prop.Value = v
	if _, err := prop.Duration(); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrReminderFormat, err)
	}
	return v, nil
}

// uid derives a stable identifier from key so that re-exports update the same events.
func uid(key string) string {
	return uuid.NewSHA1(uidSpace, []byte(key)).String()
}

// BirthdayCalendar lists the birthdays of name for the previous, current and next
// year relative to now, skipping years before the birth.
func BirthdayCalendar(name string, birth, now time.Time, opts Options) ([]byte, error) {
	trigger, err := ParseReminder(opts.Reminder)
	if err != nil {
		return nil, err
	}
	summary := opts.Summary
	if summary == nil {
		summary = defaultSummary
	}

	cal := newCalendar()
	stamp := opts.stamp()
	loc := now.Location()
	birthKey := birth.Format(config.DateFormatFullDash)

	for _, y := range []int{now.Year() - 1, now.Year(), now.Year() + 1} {
		if y < birth.Year() {
			continue
		}
		age := y - birth.Year()
		title := summary(name, age)

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, uid(fmt.Sprintf(config.FormatUIDKey, name, birthKey, y)))
		event.Props.SetText(config.PropSummary, title)
		event.Props.Set(stamp)

		// time.Date moves Feb 29 to Mar 1 in common years.
		start := ical.NewProp(config.PropDTStart)
		start.SetDate(time.Date(y, birth.Month(), birth.Day(), 0, 0, 0, 0, loc))
		event.Props.Set(start)

		if trigger != "" {
			addAlarm(event, trigger, title)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	return encode(cal)
}

// RangeCalendar renders d as one all-day event covering both endpoints.
// description is optional.
func RangeCalendar(summary, description string, d engine.Difference, opts Options) ([]byte, error) {
	trigger, err := ParseReminder(opts.Reminder)
	if err != nil {
		return nil, err
	}
	if summary == "" {
		summary = config.ICalRangeName
	}
	first, last := d.Start, d.End
	if d.Reversed {
		first, last = last, first
	}

	cal := newCalendar()

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, uid(summary+"|"+first.Format(config.DateFormatFullDash)+"|"+last.Format(config.DateFormatFullDash)))
	event.Props.SetText(config.PropSummary, summary)
	if description != "" {
		event.Props.SetText(config.PropDescription, description)
	}
	event.Props.Set(opts.stamp())

	start := ical.NewProp(config.PropDTStart)
	start.SetDate(first)
	event.Props.Set(start)

	// DTEND is exclusive for all-day events.
	end := ical.NewProp(config.PropDTEnd)
	end.SetDate(last.AddDate(0, 0, 1))
	event.Props.Set(end)

	if trigger != "" {
		addAlarm(event, trigger, summary)
	}
	cal.Children = append(cal.Children, event.Component)

	return encode(cal)
}

// addAlarm appends a DISPLAY alarm to event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Assigned directly to keep the value a DURATION rather than VALUE=TEXT.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
