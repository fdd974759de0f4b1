package collect

import (
	"fmt"
	"math"
)

// IntSummaryStatistics accumulates count, sum, min and max of int values.
// The zero value is not ready for use; call NewIntSummaryStatistics.
type IntSummaryStatistics struct {
	Count int64
	Sum   int64
	Min   int
	Max   int
}

// NewIntSummaryStatistics returns empty statistics, with Min at MaxInt and
// Max at MinInt so that the first value replaces both.
func NewIntSummaryStatistics() IntSummaryStatistics {
	return IntSummaryStatistics{Min: math.MaxInt, Max: math.MinInt}
}

// Accept records v.
func (s *IntSummaryStatistics) Accept(v int) {
	s.Count++
	s.Sum += int64(v)
	s.Min = min(s.Min, v)
	s.Max = max(s.Max, v)
}

// Combine adds other's values to s.
func (s *IntSummaryStatistics) Combine(other IntSummaryStatistics) {
	s.Count += other.Count
	s.Sum += other.Sum
	s.Min = min(s.Min, other.Min)
	s.Max = max(s.Max, other.Max)
}

// Average returns the arithmetic mean, or 0 when nothing was recorded.
func (s IntSummaryStatistics) Average() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Sum) / float64(s.Count)
}

func (s IntSummaryStatistics) String() string {
	return fmt.Sprintf("IntSummaryStatistics{count=%d, sum=%d, min=%d, average=%f, max=%d}",
		s.Count, s.Sum, s.Min, s.Average(), s.Max)
}
