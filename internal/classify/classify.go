// Package classify assigns severity categories to raw log lines and flags
// corrupted junk lines.
//
// Classification is line-independent token matching, not log-format parsing:
// each rule is a case-insensitive, word-boundary-anchored token pattern, and
// when several rules match the one with the longest pattern source wins.
package classify

import (
	"regexp"
	"sort"
	"strings"
)

// Category is a closed severity tag assigned to a log line.
type Category int

const (
	CategoryError Category = iota
	CategoryWarning
	CategoryInfo
	CategoryDebug
	CategorySuccess
	CategoryPlatformInfo
	CategoryOther
)

// Categories lists every category in declaration order.
var Categories = []Category{
	CategoryError,
	CategoryWarning,
	CategoryInfo,
	CategoryDebug,
	CategorySuccess,
	CategoryPlatformInfo,
	CategoryOther,
}

// String returns the category name used in filenames and filter flags.
func (c Category) String() string {
	switch c {
	case CategoryError:
		return "error"
	case CategoryWarning:
		return "warning"
	case CategoryInfo:
		return "info"
	case CategoryDebug:
		return "debug"
	case CategorySuccess:
		return "success"
	case CategoryPlatformInfo:
		return "platform-info"
	default:
		return "other"
	}
}

// ParseCategory converts a category name to a Category. The second return
// value reports whether the name was recognized.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return CategoryError, true
	case "warning", "warn":
		return CategoryWarning, true
	case "info":
		return CategoryInfo, true
	case "debug", "dbg":
		return CategoryDebug, true
	case "success":
		return CategorySuccess, true
	case "platform-info", "platform":
		return CategoryPlatformInfo, true
	case "other":
		return CategoryOther, true
	default:
		return CategoryOther, false
	}
}

// Rule binds a token pattern to a category. Source is the token text the
// pattern was registered with; it decides precedence between matching rules.
type Rule struct {
	Pattern  *regexp.Regexp
	Source   string
	Category Category
}

// rule compiles a case-insensitive, word-bounded token match.
func rule(token string, cat Category) Rule {
	return Rule{
		Pattern:  regexp.MustCompile(`(?i)\b(?:` + token + `)\b`),
		Source:   token,
		Category: cat,
	}
}

// DefaultRules returns the built-in severity token table. CategoryOther has
// no rule; it is the fallback when nothing matches.
func DefaultRules() []Rule {
	return []Rule{
		rule(`FATAL`, CategoryError),
		rule(`ERROR`, CategoryError),
		rule(`ERR`, CategoryError),
		rule(`INVALID`, CategoryError),
		rule(`WARN(?:ING)?`, CategoryWarning),
		rule(`WARNING`, CategoryWarning),
		rule(`INFO`, CategoryInfo),
		rule(`DBG`, CategoryDebug),
		rule(`DEBUG`, CategoryDebug),
		rule(`SUCCESS`, CategorySuccess),
		rule(`OK`, CategorySuccess),
		rule(`MAC`, CategoryPlatformInfo),
	}
}

// Classifier evaluates a fixed rule table against lines. It is immutable
// after construction and safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// NewClassifier orders rules longest-source-first (declaration order breaks
// ties) so that the most specific token wins, and returns a Classifier over
// them.
func NewClassifier(rules []Rule) *Classifier {
	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Source) > len(ordered[j].Source)
	})
	return &Classifier{rules: ordered}
}

// Default returns a Classifier over DefaultRules.
func Default() *Classifier {
	return NewClassifier(DefaultRules())
}

// Classify maps a line to its category. Empty lines and lines matching no
// rule return CategoryOther. Classify is pure; calling it repeatedly on the
// same line always yields the same result.
func (c *Classifier) Classify(line string) Category {
	if line == "" {
		return CategoryOther
	}
	for _, r := range c.rules {
		if r.Pattern.MatchString(line) {
			return r.Category
		}
	}
	return CategoryOther
}
