// Package format renders timestamps and durations the way the user's
// display_date and display_time preferences ask for.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Getter reads one preference; config.Get and domain.ConfigProvider.Get
// both fit.
type Getter func(key string) (string, bool)

// Formatter holds the layouts resolved from the preferences.
type Formatter struct {
	date      string
	dateShort string
	clock     string
}

// New resolves the layouts once. A nil getter uses the defaults.
func New(get Getter) Formatter {
	var displayDate, displayTime string
	if get != nil {
		displayDate, _ = get("display_date")
		displayTime, _ = get("display_time")
	}
	return Formatter{
		date:      dateLayout(displayDate),
		dateShort: shortDateLayout(displayDate),
		clock:     timeLayout(displayTime),
	}
}

// DateTime formats date and time, e.g. "Jan 23 15:04".
func (f Formatter) DateTime(t time.Time) string {
	return f.Date(t) + " " + f.Time(t)
}

// DateTimeShort is DateTime without the year.
func (f Formatter) DateTimeShort(t time.Time) string {
	return t.Format(f.dateShort) + " " + f.Time(t)
}

func (f Formatter) Date(t time.Time) string {
	return t.Format(f.date)
}

func (f Formatter) Time(t time.Time) string {
	return t.Format(f.clock)
}

// Duration renders d compactly: "850ms", "1.5s", "2m03s".
func Duration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		d = d.Round(time.Second)
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}

func dateLayout(displayDate string) string {
	switch displayDate {
	case "":
		return "Jan 02"
	case "mm/dd/yyyy":
		return "01/02/2006"
	case "yyyy-mm-dd":
		return "2006-01-02"
	case "dd/mm/yyyy":
		return "02/01/2006"
	default:
		// Custom Go layout.
		return displayDate
	}
}

func shortDateLayout(displayDate string) string {
	switch displayDate {
	case "":
		return "Jan 02"
	case "mm/dd/yyyy":
		return "01/02"
	case "yyyy-mm-dd":
		return "01-02"
	case "dd/mm/yyyy":
		return "02/01"
	}

	short := displayDate
	for _, year := range []string{"2006", "/06", "-06", " 06"} {
		short = strings.ReplaceAll(short, year, "")
	}
	short = strings.Trim(strings.TrimSpace(short), "/-")
	if short == "" {
		return "Jan 02"
	}
	return short
}

func timeLayout(displayTime string) string {
	if displayTime == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}
