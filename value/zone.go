package value

import (
	"strconv"
	"strings"
	"time"
)

// zones maps time zone abbreviations to their fixed UTC offsets in minutes.
// Only unambiguous abbreviations are listed.
var zones = map[string]int{
	"UTC":  0,
	"GMT":  0,
	"WET":  0,
	"BST":  60,
	"CET":  60,
	"CEST": 120,
	"EET":  120,
	"EEST": 180,
	"MSK":  180,
	"IST":  330,
	"SGT":  480,
	"HKT":  480,
	"AWST": 480,
	"JST":  540,
	"KST":  540,
	"ACST": 570,
	"AEST": 600,
	"AEDT": 660,
	"NZST": 720,
	"NZDT": 780,
	"HST":  -600,
	"AKST": -540,
	"AKDT": -480,
	"PST":  -480,
	"PDT":  -420,
	"MST":  -420,
	"MDT":  -360,
	"CST":  -360,
	"CDT":  -300,
	"EST":  -300,
	"EDT":  -240,
	"AST":  -240,
	"NST":  -210,
}

// Zone resolves an upper-case zone abbreviation ("PST"), a prefixed offset ("UTC+5:30",
// "GMT-3"), or a bare offset ("+05:30", "-0800") to a fixed location.
func Zone(name string) (*time.Location, bool) {
	if off, ok := zones[name]; ok {
		return time.FixedZone(name, off*60), true
	}

	rest := name
	for _, prefix := range []string{"UTC", "GMT"} {
		if r, ok := strings.CutPrefix(name, prefix); ok {
			rest = r

			break
		}
	}

	off, ok := parseOffset(rest)
	if !ok {
		return nil, false
	}

	return time.FixedZone(offsetName(off), off*60), true
}

// IsZone reports whether name resolves with [Zone].
func IsZone(name string) bool {
	_, ok := Zone(name)

	return ok
}

// parseOffset reads "+5", "-3:30", "+0530", returning minutes east of UTC.
func parseOffset(s string) (int, bool) {
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, false
	}

	sign := 1
	if s[0] == '-' {
		sign = -1
	}

	hh, mm := s[1:], ""

	switch {
	case strings.Contains(hh, ":"):
		hh, mm, _ = strings.Cut(hh, ":")
	case len(hh) == 4:
		hh, mm = hh[:2], hh[2:]
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h > 14 || len(hh) > 2 {
		return 0, false
	}

	m := 0
	if mm != "" {
		if m, err = strconv.Atoi(mm); err != nil || m >= 60 || len(mm) != 2 {
			return 0, false
		}
	}

	return sign * (h*60 + m), true
}

func offsetName(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign, minutes = "-", -minutes
	}

	name := "UTC" + sign + strconv.Itoa(minutes/60)
	if m := minutes % 60; m != 0 {
		name += ":" + strconv.Itoa(m/10) + strconv.Itoa(m%10)
	}

	return name
}
