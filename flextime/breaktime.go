/*
breaktime.go - Mandatory break deduction rules

PURPOSE:
  Unpaid break time is deducted from raw worked seconds based on how long
  the employee worked. Rules map worked-duration ranges to deductions,
  e.g. "more than 6h worked -> 30min break, more than 9h -> 45min".

INVARIANT:
  Rule ranges are half-open [Min, Max), must not overlap, and are kept
  ordered by lower bound. A zero Max means the range is unbounded above.
  Overlapping rules are a configuration error and are rejected up front.

SEE ALSO:
  - processing.go: Applies the deduction once per processed day
*/
package flextime

import (
	"context"
	"fmt"
	"sort"
)

// =============================================================================
// BREAK RULES
// =============================================================================

// BreakTimeRule deducts DeductionSeconds from days whose raw worked time
// falls into [MinWorkSeconds, MaxWorkSeconds). MaxWorkSeconds == 0 means
// the rule is unbounded above.
type BreakTimeRule struct {
	MinWorkSeconds   int
	MaxWorkSeconds   int
	DeductionSeconds int
}

func (r BreakTimeRule) contains(workedSeconds int) bool {
	if workedSeconds < r.MinWorkSeconds {
		return false
	}
	return r.MaxWorkSeconds == 0 || workedSeconds < r.MaxWorkSeconds
}

// BreakTimeDefinitions is the global, read-only rule set for a run.
type BreakTimeDefinitions struct {
	rules []BreakTimeRule
}

// NewBreakTimeDefinitions builds a rule set, ordering rules by lower bound
// and rejecting overlapping ranges. An empty rule set deducts nothing.
func NewBreakTimeDefinitions(rules ...BreakTimeRule) (*BreakTimeDefinitions, error) {
	ordered := make([]BreakTimeRule, len(rules))
	copy(ordered, rules)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].MinWorkSeconds < ordered[j].MinWorkSeconds
	})

	for i, r := range ordered {
		if r.MinWorkSeconds < 0 || r.DeductionSeconds < 0 {
			return nil, fmt.Errorf("rule %d has negative bounds: %w", i, ErrInvalidBreakRule)
		}
		if r.MaxWorkSeconds != 0 && r.MaxWorkSeconds <= r.MinWorkSeconds {
			return nil, fmt.Errorf("rule %d has empty range: %w", i, ErrInvalidBreakRule)
		}
		if i == 0 {
			continue
		}
		prev := ordered[i-1]
		if prev.MaxWorkSeconds == 0 || r.MinWorkSeconds < prev.MaxWorkSeconds {
			return nil, fmt.Errorf("rules %d and %d: %w", i-1, i, ErrOverlappingBreakRules)
		}
	}

	return &BreakTimeDefinitions{rules: ordered}, nil
}

// EmptyBreakTimeDefinitions is a rule set that deducts nothing.
func EmptyBreakTimeDefinitions() *BreakTimeDefinitions {
	return &BreakTimeDefinitions{}
}

// Rules returns the ordered rule set.
func (b *BreakTimeDefinitions) Rules() []BreakTimeRule {
	out := make([]BreakTimeRule, len(b.rules))
	copy(out, b.rules)
	return out
}

// Deduct applies the matching rule to raw worked seconds. The result never
// goes below zero.
func (b *BreakTimeDefinitions) Deduct(workedSeconds int) int {
	for _, r := range b.rules {
		if r.contains(workedSeconds) {
			net := workedSeconds - r.DeductionSeconds
			if net < 0 {
				return 0
			}
			return net
		}
	}
	return workedSeconds
}

// BreakTimeSource supplies the rule set, loaded once per run and shared
// across all employees.
type BreakTimeSource interface {
	GetDefinitions(ctx context.Context) (*BreakTimeDefinitions, error)
}
