package settings

import (
	"strconv"
	"strings"

	"github.com/dshills/termconf/internal/config/convert"
	"github.com/dshills/termconf/internal/config/document"
)

// LaunchPosition is the initial window position. Either coordinate may be
// left to the window manager.
type LaunchPosition struct {
	X convert.Optional[int]
	Y convert.Optional[int]
}

// String renders the position in its configuration form, e.g. "100,".
func (p LaunchPosition) String() string {
	var x, y string
	if v, ok := p.X.Get(); ok {
		x = strconv.Itoa(v)
	}
	if v, ok := p.Y.Get(); ok {
		y = strconv.Itoa(v)
	}
	return x + "," + y
}

// LaunchPositionRule reads a position from a single comma-delimited string:
//
//	"100,100"     both coordinates
//	",100" "100," one coordinate, the other left unset
//	","           neither
//	"abc,100"     unparsable values are left unset
//	"1,2,3"       only the first two values are read
var LaunchPositionRule convert.Rule[LaunchPosition] = convert.RuleFunc[LaunchPosition]{
	Accepts: func(d document.Document) bool { return d.Kind() == document.KindString },
	Convert: func(d document.Document) (LaunchPosition, error) {
		return ParseLaunchPosition(d.String()), nil
	},
}

// ParseLaunchPosition parses the comma-delimited launch position form.
func ParseLaunchPosition(s string) LaunchPosition {
	var pos LaunchPosition
	tokens := strings.SplitN(s, ",", 3)
	for i, token := range tokens {
		if i >= 2 {
			break
		}
		v, ok := leadingInt(token)
		if !ok {
			continue
		}
		if i == 0 {
			pos.X = convert.Some(v)
		} else {
			pos.Y = convert.Some(v)
		}
	}
	return pos
}

// leadingInt parses the integer at the start of s after optional leading
// whitespace, ignoring anything that follows it ("12px" is 12). Values
// outside the 32-bit range are rejected.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// rowsToScrollRule accepts any value: whole numbers are taken as is and
// anything else (typically "system") means 0, i.e. use the system setting.
var rowsToScrollRule convert.Rule[int] = convert.RuleFunc[int]{
	Accepts: func(document.Document) bool { return true },
	Convert: func(d document.Document) (int, error) {
		var rows int
		if _, err := convert.GetValue(d, &rows, convert.Int); err != nil {
			return 0, nil
		}
		return rows, nil
	},
}
