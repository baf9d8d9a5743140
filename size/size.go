// Package size implements a human-readable byte quantity, used for config
// fields such as buffer and file-size limits.
package size

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Size is a byte count.
type Size uint64

const (
	SizeUnit Size = 1
	SizeKilo      = SizeUnit * 1024
	SizeMega      = SizeKilo * 1024
	SizeGiga      = SizeMega * 1024
	SizeTera      = SizeGiga * 1024
	SizePeta      = SizeTera * 1024
)

var units = []struct {
	suffixes []string
	scale    Size
}{
	{[]string{"PB", "P"}, SizePeta},
	{[]string{"TB", "T"}, SizeTera},
	{[]string{"GB", "G"}, SizeGiga},
	{[]string{"MB", "M"}, SizeMega},
	{[]string{"KB", "K"}, SizeKilo},
	{[]string{"B"}, SizeUnit},
}

// Parse reads a size expression such as "32KB" or "1.5G" into a Size.
func Parse(s string) (Size, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("size: invalid size %q", s)
	}

	upper := strings.ToUpper(s)
	for _, u := range units {
		for _, suf := range u.suffixes {
			if strings.HasSuffix(upper, suf) {
				numPart := strings.TrimSpace(s[:len(s)-len(suf)])
				if numPart == "" {
					return 0, fmt.Errorf("size: invalid size %q", s)
				}
				f, err := strconv.ParseFloat(numPart, 64)
				if err != nil {
					return 0, fmt.Errorf("size: invalid size %q: %w", s, err)
				}
				if f < 0 {
					return 0, fmt.Errorf("size: negative size %q", s)
				}
				v := f * float64(u.scale)
				if v >= math.MaxUint64 {
					return 0, fmt.Errorf("size: size %q overflows", s)
				}
				return Size(v), nil
			}
		}
	}

	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return 0, fmt.Errorf("size: missing unit in %q", s)
	}

	return 0, fmt.Errorf("size: unknown unit in %q", s)
}

// String renders the size using the largest unit that keeps the mantissa >= 1.
func (s Size) String() string {
	v := float64(s)
	switch {
	case s >= SizePeta:
		return fmt.Sprintf("%.2fPB", v/float64(SizePeta))
	case s >= SizeTera:
		return fmt.Sprintf("%.2fTB", v/float64(SizeTera))
	case s >= SizeGiga:
		return fmt.Sprintf("%.2fGB", v/float64(SizeGiga))
	case s >= SizeMega:
		return fmt.Sprintf("%.2fMB", v/float64(SizeMega))
	case s >= SizeKilo:
		return fmt.Sprintf("%.2fKB", v/float64(SizeKilo))
	default:
		return fmt.Sprintf("%dB", uint64(s))
	}
}

func (s Size) Int64() int64 {
	return int64(s)
}

func (s Size) Uint64() uint64 {
	return uint64(s)
}

func (s *Size) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
