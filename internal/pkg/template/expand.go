// Package template expands {FieldName} tokens in notification
// subjects and bodies from a member record.
package template

import (
	"regexp"
	"strconv"
	"time"

	"github.com/clubstack/membership-backend-go/internal/domain/member"
	"github.com/clubstack/membership-backend-go/internal/service/dates"
)

var tokenRe = regexp.MustCompile(`\{([A-Za-z]+)\}`)

// Expand substitutes every {FieldName} token with the member's value.
// Date-valued fields render as locale date strings; an unset date and
// any unknown field render as the empty string.
func Expand(tmpl string, m member.Member) string {
	return tokenRe.ReplaceAllStringFunc(tmpl, func(tok string) string {
		return fieldValue(m, tok[1:len(tok)-1])
	})
}

func fieldValue(m member.Member, name string) string {
	switch name {
	case "Email":
		return m.Email
	case "First", "FirstName":
		return m.First
	case "Last", "LastName":
		return m.Last
	case "FullName", "Name":
		return m.FullName()
	case "Phone":
		return m.Phone
	case "Period":
		return strconv.Itoa(m.Period)
	case "Status":
		return string(m.Status)
	case "Joined":
		return localeDate(m.Joined)
	case "Expires":
		return localeDate(m.Expires)
	case "RenewedOn":
		return localeDate(m.RenewedOn)
	case "Migrated":
		return localeDate(m.Migrated)
	}
	return ""
}

func localeDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return dates.FormatLocale(t)
}
