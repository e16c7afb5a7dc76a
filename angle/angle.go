// Package angle formats decimal degree values as degree, minute and second
// label text.
package angle

import (
	"math"
	"strconv"
	"strings"
)

// Format selects which units are shown.
type Format uint8

const (
	// DecimalDegrees shows only degrees with a decimal fraction: 45.50°
	DecimalDegrees Format = iota
	// DegreesMinutes shows whole degrees and decimal minutes: 45° 30.00'
	DegreesMinutes
	// DegreesMinutesSeconds shows whole degrees, whole minutes and decimal seconds: 45° 30' 0.00"
	DegreesMinutesSeconds
)

// MaxPrecision is the largest number of decimal places rendered.
const MaxPrecision = 9

// Normalize returns f, or DecimalDegrees when f is not a known format.
func (f Format) Normalize() Format {
	if f > DegreesMinutesSeconds {
		return DecimalDegrees
	}
	return f
}

func (f Format) String() string {
	switch f.Normalize() {
	case DegreesMinutes:
		return "degrees_minutes"
	case DegreesMinutesSeconds:
		return "degrees_minutes_seconds"
	default:
		return "decimal_degrees"
	}
}

// Token is one element of a formatted angle.
type Token uint8

const (
	// TokenSign is a leading "-" for negative values
	TokenSign Token = iota
	// TokenDegrees is the degree component
	TokenDegrees
	// TokenMinutes is the minute component
	TokenMinutes
	// TokenSeconds is the second component
	TokenSeconds
	// TokenHemisphere is the hemisphere code, used in place of the sign
	TokenHemisphere
)

// Options control how a value is rendered.
type Options struct {
	Format Format
	// Precision is the number of decimal places on the smallest shown unit.
	Precision uint
	// LeadingZeros pads degrees to 3 digits, minutes and seconds to 2.
	LeadingZeros bool
	// ShowHemisphere appends Positive or Negative instead of using a minus sign.
	ShowHemisphere bool
	// OmitDegrees drops the degree component. It has no effect on DecimalDegrees.
	OmitDegrees bool
	// Positive and Negative are the hemisphere codes, i.e. "N" and "S".
	Positive string
	Negative string
}

func (opts Options) precision() uint {
	if opts.Precision > MaxPrecision {
		return MaxPrecision
	}
	return opts.Precision
}

// Layout returns the token sequence that Text will render for the options.
func Layout(opts Options) []Token {
	format := opts.Format.Normalize()
	tokens := make([]Token, 0, 5)
	if !opts.ShowHemisphere {
		tokens = append(tokens, TokenSign)
	}
	if !opts.OmitDegrees || format == DecimalDegrees {
		tokens = append(tokens, TokenDegrees)
	}
	if format >= DegreesMinutes {
		tokens = append(tokens, TokenMinutes)
	}
	if format == DegreesMinutesSeconds {
		tokens = append(tokens, TokenSeconds)
	}
	if opts.ShowHemisphere {
		tokens = append(tokens, TokenHemisphere)
	}
	return tokens
}

// DMS is a value split into its units. The smallest unit for the format
// carries a fraction of Precision digits.
type DMS struct {
	Negative bool
	Degrees  int64
	Minutes  int64
	Seconds  int64
	// Fraction holds the decimal digits of the smallest unit as an integer,
	// i.e. 30.25' at a precision of 2 has a Fraction of 25.
	Fraction  int64
	Precision uint
	Format    Format
}

// fractionDigits returns the first n decimal digits of frac, a value in
// [0, 1), once frac is rounded to six places. A fraction that rounds up to
// 1 yields zeros; it never carries into the larger unit.
func fractionDigits(frac float64, n uint) int64 {
	if n == 0 {
		return 0
	}
	digits := strconv.FormatFloat(frac, 'f', 6, 64)[2:]
	if uint(len(digits)) < n {
		digits += strings.Repeat("0", int(n)-len(digits))
	}
	v, _ := strconv.ParseInt(digits[:n], 10, 64)
	return v
}

// Split reduces value modulo 360 and divides it into whole degrees, minutes
// and seconds, each taken from the fraction left by the larger unit. The
// fraction of the smallest unit is truncated to precision digits.
func Split(value float64, format Format, precision uint) DMS {
	format = format.Normalize()
	if precision > MaxPrecision {
		precision = MaxPrecision
	}
	dms := DMS{Precision: precision, Format: format}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return dms
	}
	dms.Negative = value < 0.0

	deg, frac := math.Modf(math.Mod(math.Abs(value), 360.0))
	dms.Degrees = int64(deg)
	if format >= DegreesMinutes {
		var min float64
		min, frac = math.Modf(frac * 60.0)
		dms.Minutes = int64(min)
	}
	if format == DegreesMinutesSeconds {
		var sec float64
		sec, frac = math.Modf(frac * 60.0)
		dms.Seconds = int64(sec)
	}
	dms.Fraction = fractionDigits(frac, precision)
	return dms
}

func pad(v int64, width int) string {
	s := strconv.FormatInt(v, 10)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

func (dms DMS) unit(v int64, width int, smallest bool) string {
	s := pad(v, width)
	if !smallest || dms.Precision == 0 {
		return s
	}
	return s + "." + pad(dms.Fraction, int(dms.Precision))
}

// Text renders value according to opts.
func Text(value float64, opts Options) string {
	format := opts.Format.Normalize()
	dms := Split(value, format, opts.precision())

	var (
		str   strings.Builder
		parts int
	)
	component := func(s string) {
		if parts > 0 {
			str.WriteByte(' ')
		}
		str.WriteString(s)
		parts++
	}

	for _, tkn := range Layout(opts) {
		switch tkn {
		case TokenSign:
			if dms.Negative {
				str.WriteByte('-')
			}
		case TokenDegrees:
			width := 0
			if opts.LeadingZeros {
				width = 3
			}
			component(dms.unit(dms.Degrees, width, format == DecimalDegrees) + "°")
		case TokenMinutes:
			width := 0
			if opts.LeadingZeros {
				width = 2
			}
			component(dms.unit(dms.Minutes, width, format == DegreesMinutes) + "'")
		case TokenSeconds:
			width := 0
			if opts.LeadingZeros {
				width = 2
			}
			component(dms.unit(dms.Seconds, width, true) + `"`)
		case TokenHemisphere:
			if dms.Negative {
				str.WriteString(opts.Negative)
			} else {
				str.WriteString(opts.Positive)
			}
		}
	}
	return str.String()
}
