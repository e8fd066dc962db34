package prefilter

import (
	"regexp/syntax"

	"github.com/cloudflare/ahocorasick"
)

// Prefilter uses Aho-Corasick to rule out subjects that cannot match a pattern.
//
// Every match of the pattern must contain at least one of the keywords, so a
// subject containing none of them has no matches and need not be scanned.
type Prefilter struct {
	matcher  *ahocorasick.Matcher
	keywords []string
}

// New derives keywords from a pattern in Go (RE2) syntax.
// It returns nil when no keyword set can be proven required, in which case
// every subject must be scanned.
func New(pattern string) *Prefilter {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil
	}
	keywords := requiredLiterals(re)
	if len(keywords) == 0 {
		return nil
	}
	return &Prefilter{
		matcher:  ahocorasick.NewStringMatcher(keywords),
		keywords: keywords,
	}
}

// Keywords returns the literals one of which every match contains.
func (pf *Prefilter) Keywords() []string {
	if pf == nil {
		return nil
	}
	return pf.keywords
}

// MayMatch reports whether content contains any keyword.
// A nil Prefilter admits everything.
func (pf *Prefilter) MayMatch(content []byte) bool {
	if pf == nil {
		return true
	}
	return len(pf.matcher.Match(content)) > 0
}

// requiredLiterals returns a set of literals such that any string matched by
// re contains at least one of them, or nil if no such set is known.
func requiredLiterals(re *syntax.Regexp) []string {
	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 || len(re.Rune) == 0 {
			return nil
		}
		return []string{string(re.Rune)}

	case syntax.OpCapture, syntax.OpPlus:
		return requiredLiterals(re.Sub[0])

	case syntax.OpRepeat:
		if re.Min < 1 {
			return nil
		}
		return requiredLiterals(re.Sub[0])

	case syntax.OpConcat:
		// Any factor's set is required; prefer the one with the longest shortest keyword.
		var best []string
		bestLen := 0
		for _, sub := range re.Sub {
			set := requiredLiterals(sub)
			if len(set) == 0 {
				continue
			}
			if l := shortest(set); l > bestLen {
				best, bestLen = set, l
			}
		}
		return best

	case syntax.OpAlternate:
		seen := make(map[string]bool)
		var union []string
		for _, sub := range re.Sub {
			set := requiredLiterals(sub)
			if len(set) == 0 {
				return nil
			}
			for _, lit := range set {
				if !seen[lit] {
					seen[lit] = true
					union = append(union, lit)
				}
			}
		}
		return union
	}

	return nil
}

func shortest(set []string) int {
	n := -1
	for _, s := range set {
		if n < 0 || len(s) < n {
			n = len(s)
		}
	}
	return n
}
