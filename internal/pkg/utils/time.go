package utils

import (
	"rehab-service/internal/pkg/constvars"
	"time"
)

func ParseDate(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constvars.DateLayout, date, loc)
}

func FormatDate(t time.Time) string {
	return t.Format(constvars.DateLayout)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
