package report

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 30

// WriteText prints s as a plain-text report with one bar per trait.
func WriteText(w io.Writer, s *Summary) error {
	ew := &errWriter{w: w}
	if s.HollandCode != "" {
		ew.printf("Holland code:     %s\n", s.HollandCode)
	}
	if s.PrimaryStyle != "" {
		ew.printf("Learning styles:  %s (primary), %s (secondary)\n", s.PrimaryStyle, s.SecondaryStyle)
	}
	for _, sec := range s.Sections {
		ew.printf("\n%s\n%s\n", sec.Section, strings.Repeat("─", 60))
		for _, t := range sec.Ranked {
			ew.printf("%2d. %-20s %3d/%-3d %s\n", t.Rank, t.Trait, t.Score, s.MaxScore, Bar(t.Score, s.MaxScore, barWidth))
		}
	}
	return ew.err
}

// Bar renders score out of ceiling as a fixed-width bar.
func Bar(score, ceiling, width int) string {
	if ceiling <= 0 || width <= 0 {
		return ""
	}
	filled := min(max(score, 0)*width/ceiling, width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
