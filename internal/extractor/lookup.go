package extractor

import (
	"regexp"
	"sort"
	"strings"
)

// labelIndex finds labelled header values in a document's lines. A label matches
// case-insensitively when it starts a line or follows whitespace and is followed by
// optional ": . # -" punctuation, whitespace or the end of the line.
type labelIndex struct {
	patterns map[string]*regexp.Regexp
	// next matches any known label inside a value, marking where the value ends.
	next *regexp.Regexp
	// lead matches a line that begins with a known label.
	lead *regexp.Regexp
}

func newLabelIndex(labels []string) *labelIndex {
	idx := &labelIndex{patterns: make(map[string]*regexp.Regexp, len(labels))}

	uniq := make([]string, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		key := strings.ToLower(l)
		if l == "" || seen[key] {
			continue
		}
		seen[key] = true
		uniq = append(uniq, l)
		idx.patterns[l] = regexp.MustCompile(`(?i)(?:^|\s)` + regexp.QuoteMeta(l) + `(?:[ \t]*[:.#\-]+[ \t]*|[ \t]+|$)(.*)$`)
	}

	// Longer labels first so "GSTIN/UIN" is preferred over "GSTIN".
	sort.SliceStable(uniq, func(i, j int) bool { return len(uniq[i]) > len(uniq[j]) })
	quoted := make([]string, len(uniq))
	for i, l := range uniq {
		quoted[i] = regexp.QuoteMeta(l)
	}
	alt := strings.Join(quoted, "|")
	idx.next = regexp.MustCompile(`(?i)\s(?:` + alt + `)(?:[ \t]*[:.#\-]+|[ \t]+|$)`)
	idx.lead = regexp.MustCompile(`(?i)^(?:` + alt + `)(?:[ \t]*[:.#\-]+|[ \t]+|$)`)
	return idx
}

// find returns the value of the first occurrence of any of labels within lines[from:to].
// Within one line the leftmost label wins. When the label ends its line the value is
// taken from the next non-empty line, unless that line starts with another label.
func (idx *labelIndex) find(lines []string, labels []string, from, to int) (value string, line int, ok bool) {
	if to > len(lines) {
		to = len(lines)
	}
	for i := from; i < to; i++ {
		bestPos := -1
		var bestVal string
		for _, l := range labels {
			re := idx.patterns[l]
			if re == nil {
				continue
			}
			m := re.FindStringSubmatchIndex(lines[i])
			if m == nil {
				continue
			}
			if bestPos == -1 || m[0] < bestPos {
				bestPos = m[0]
				bestVal = lines[i][m[2]:m[3]]
			}
		}
		if bestPos == -1 {
			continue
		}

		v := idx.trim(bestVal)
		if v == "" {
			v = idx.followingValue(lines, i+1, to)
		}
		if v == "" {
			return "", i, false
		}
		return v, i, true
	}
	return "", -1, false
}

func (idx *labelIndex) followingValue(lines []string, from, to int) string {
	for j := from; j < to; j++ {
		l := strings.TrimSpace(lines[j])
		if l == "" {
			continue
		}
		if idx.lead.MatchString(l) {
			return ""
		}
		return idx.trim(l)
	}
	return ""
}

// trim cuts a value at the next known label and strips surrounding whitespace.
func (idx *labelIndex) trim(v string) string {
	if loc := idx.next.FindStringIndex(v); loc != nil {
		v = v[:loc[0]]
	}
	return strings.TrimSpace(v)
}

// firstToken returns the first whitespace-separated token of s.
func firstToken(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}
