package classify

import (
	"fmt"
	"regexp"

	"golang.org/x/text/cases"
)

// Match is the result of classifying a torrent name. Pattern holds the
// configured expression that matched, or is empty when the name fell through
// to CategoryOther.
type Match struct {
	Category Category
	Pattern  string
}

type rule struct {
	category Category
	pattern  string
	re       *regexp.Regexp
}

// RuleSet holds the compiled classification rules in evaluation order: every
// tv rule strictly before every movie rule, each list in its declared order.
type RuleSet struct {
	rules []rule
}

// NewRuleSet compiles the configured pattern lists. Patterns are compiled
// exactly as written; a pattern that fails to compile aborts construction.
func NewRuleSet(tvPatterns, moviePatterns []string) (*RuleSet, error) {
	rules := make([]rule, 0, len(tvPatterns)+len(moviePatterns))
	for _, pattern := range tvPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile tv pattern %q: %w", pattern, err)
		}
		rules = append(rules, rule{category: CategoryTV, pattern: pattern, re: re})
	}
	for _, pattern := range moviePatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile movie pattern %q: %w", pattern, err)
		}
		rules = append(rules, rule{category: CategoryMovie, pattern: pattern, re: re})
	}
	return &RuleSet{rules: rules}, nil
}

// Len returns the number of compiled rules.
func (r *RuleSet) Len() int {
	return len(r.rules)
}

// Classify case-folds name and evaluates the rules in order; the first
// unanchored match wins. Names that match nothing land in CategoryOther.
// The method only inspects the name it is given, never torrent contents.
func (r *RuleSet) Classify(name string) Match {
	// Casers carry internal state, so fold with a fresh one per call.
	folded := cases.Fold().String(name)
	for _, rule := range r.rules {
		if rule.re.MatchString(folded) {
			return Match{Category: rule.category, Pattern: rule.pattern}
		}
	}
	return Match{Category: CategoryOther}
}
