package service

import (
	"strings"
	"time"
)

// fechaLayouts are the date formats accepted in request bodies, most
// specific first. Anything without a zone is read as local time.
var fechaLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseFecha accepts RFC 3339 or one of fechaLayouts.
func parseFecha(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	for _, layout := range fechaLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// required trims v and fails with a field error when nothing is left.
func required(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", FieldError(field, "El campo "+field+" es obligatorio")
	}
	return v, nil
}
