package i18n

import (
	"strconv"
	"time"
)

var monthsFR = [12]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// MonthYear formats t as an abbreviated month and year: "Jan 2023" in
// English, "janv. 2023" in French.
func MonthYear(lang string, t time.Time) string {
	if lang == FR {
		return monthsFR[t.Month()-1] + " " + strconv.Itoa(t.Year())
	}
	return t.Format("Jan 2006")
}
