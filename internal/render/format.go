package render

import (
	"fmt"
	"strings"

	"basstatic/internal/models"
)

// Separator joins names and genres on one line
const Separator = " · "

// BadgeDate formats the hero badge date, e.g. "12 July"
func BadgeDate(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s", d.Day(), d.Month().String())
}

// CardDay is the day of month shown on event cards
func CardDay(d models.Date) int {
	if d.IsZero() {
		return 0
	}
	return d.Day()
}

// CardMonth is the abbreviated upper-case month shown on event cards, e.g. "JUL"
func CardMonth(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return strings.ToUpper(d.Format("Jan"))
}

// MediaURL resolves a stored relative media path against the site root
func MediaURL(p *string) string {
	if p == nil || *p == "" {
		return ""
	}
	return "/" + strings.TrimLeft(*p, "/")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
