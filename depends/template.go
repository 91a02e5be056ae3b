package depends

import (
	"maps"
	"regexp"
	"slices"
)

// Placeholder is a `{name}` or `{name.method()}` substitution site in a
// prompt template.
type Placeholder struct {
	Name   string
	Method string
	// byte offsets of the whole placeholder, braces included
	Start int
	End   int
}

var placeholderPattern = regexp.MustCompile(`^\{(\w+)(?:\.(\w+)\(\))?\}`)

// Segment is a piece of a template: either literal text or a placeholder.
type Segment struct {
	Text        string
	Placeholder *Placeholder
}

// Segments splits a template into literal text and placeholders.
// `{{` and `}}` are escapes for single braces. Braces that do not form
// a placeholder are kept as text.
func Segments(template string) []Segment {
	var ret []Segment
	var text []byte
	flush := func() {
		if len(text) > 0 {
			ret = append(ret, Segment{Text: string(text)})
			text = nil
		}
	}
	for i := 0; i < len(template); {
		c := template[i]
		switch {
		case c == '{' && i+1 < len(template) && template[i+1] == '{':
			text = append(text, '{')
			i += 2
		case c == '}' && i+1 < len(template) && template[i+1] == '}':
			text = append(text, '}')
			i += 2
		case c == '{':
			m := placeholderPattern.FindStringSubmatchIndex(template[i:])
			if m == nil {
				text = append(text, c)
				i++
				continue
			}
			flush()
			p := &Placeholder{
				Name:  template[i+m[2] : i+m[3]],
				Start: i,
				End:   i + m[1],
			}
			if m[4] >= 0 {
				p.Method = template[i+m[4] : i+m[5]]
			}
			ret = append(ret, Segment{Placeholder: p})
			i += m[1]
		default:
			text = append(text, c)
			i++
		}
	}
	flush()
	return ret
}

// Placeholders returns every placeholder of a template in order.
func Placeholders(template string) []Placeholder {
	var ret []Placeholder
	for _, seg := range Segments(template) {
		if seg.Placeholder != nil {
			ret = append(ret, *seg.Placeholder)
		}
	}
	return ret
}

// Template returns the known names referenced by placeholders.
func Template(template string, known map[string]bool) []string {
	reads := make(map[string]bool)
	for _, p := range Placeholders(template) {
		if known[p.Name] {
			reads[p.Name] = true
		}
	}
	return slices.Sorted(maps.Keys(reads))
}
