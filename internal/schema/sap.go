package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SAPApplication is an SAP landscape whose cores are given as free text,
// e.g. "ASCS 2 VCPU, Primario APP Server 16 VCPU".
type SAPApplication struct {
	Name            string          `json:"name"`
	Server          string          `json:"server"`
	Type            string          `json:"type"`
	Nodes           int             `json:"nodes"`
	CoreDescription string          `json:"cores_str"`
	Components      []CoreComponent `json:"components"`
	ComponentCores  int             `json:"component_cores"`
	Warnings        []Warning       `json:"warnings,omitempty"`
}

// CoreComponent is one "label number unit" triple from an SAP core description.
type CoreComponent struct {
	Label string `json:"label"`
	Cores int    `json:"cores"`
	Unit  string `json:"unit,omitempty"`
}

// NewSAPApplication builds an SAPApplication and decomposes its core
// description. Unparsed fragments are dropped and reported as warnings, as
// are fractional values rounded up.
func NewSAPApplication(name, server, typ string, nodes int, description string) SAPApplication {
	s := SAPApplication{
		Name:            name,
		Server:          server,
		Type:            typ,
		Nodes:           nodes,
		CoreDescription: description,
	}

	parsed := ParseCoreDescription(description)
	s.Components = parsed.Components
	s.ComponentCores = parsed.Total

	for _, v := range parsed.Rounded {
		s.Warnings = append(s.Warnings, Warning{
			Code:    WarnSAPRounded,
			Field:   "cores",
			Value:   v,
			Message: fmt.Sprintf("fractional cores %q rounded up to whole cores", v),
		})
	}
	for _, frag := range parsed.Unparsed {
		s.Warnings = append(s.Warnings, Warning{
			Code:    WarnSAPFragment,
			Field:   "cores",
			Value:   frag,
			Message: fmt.Sprintf("could not read cores from %q; fragment ignored", frag),
		})
	}
	if strings.TrimSpace(description) != "" && len(parsed.Components) == 0 {
		s.Warnings = append(s.Warnings, Warning{
			Code:    WarnSAPNoCores,
			Field:   "cores",
			Value:   description,
			Message: "no cores found in SAP core description; counted as 0",
		})
	}
	return s
}

// TotalCores returns the summed component cores × nodes.
func (s SAPApplication) TotalCores() int {
	return s.ComponentCores * s.Nodes
}

// UnmarshalJSON decodes an SAP record and re-derives its components from
// the core description so API callers get the same parsing as spreadsheets.
func (s *SAPApplication) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name            string          `json:"name"`
		Server          string          `json:"server"`
		Type            string          `json:"type"`
		Nodes           *int            `json:"nodes"`
		CoreDescription json.RawMessage `json:"cores_str"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	nodes := 1
	if raw.Nodes != nil {
		nodes = *raw.Nodes
	}

	desc := ""
	if len(raw.CoreDescription) > 0 {
		// Accept both "ASCS 2 VCPU" and a bare number.
		var str string
		if err := json.Unmarshal(raw.CoreDescription, &str); err == nil {
			desc = str
		} else {
			var n json.Number
			if err := json.Unmarshal(raw.CoreDescription, &n); err != nil {
				return fmt.Errorf("cores_str: %w", err)
			}
			desc = n.String()
		}
	}

	*s = NewSAPApplication(raw.Name, raw.Server, raw.Type, nodes, desc)
	return nil
}

// CoreParse is the result of decomposing an SAP core description.
type CoreParse struct {
	Components []CoreComponent
	Total      int
	Unparsed   []string
	Rounded    []string // fractional values, rounded up to whole cores
}

var coreUnits = map[string]bool{
	"vcpu": true, "vcpus": true,
	"cpu": true, "cpus": true,
	"core": true, "cores": true,
	"vcore": true, "vcores": true,
	"nucleo": true, "nucleos": true, "núcleo": true, "núcleos": true,
}

// connectors join two components inside one fragment: "ASCS 2 VCPU y APP 16 VCPU".
var connectors = map[string]bool{
	"y": true, "e": true, "and": true, "mas": true, "más": true, "plus": true,
}

type tokenKind int

const (
	tokWord tokenKind = iota
	tokNumber
)

type token struct {
	kind       tokenKind
	text       string
	start, end int
}

func (t token) isUnit() bool {
	return t.kind == tokWord && coreUnits[strings.ToLower(t.text)]
}

func (t token) isTimes() bool {
	return t.kind == tokWord && (t.text == "x" || t.text == "X")
}

// ParseCoreDescription splits desc into fragments and reads every
// (label, number, unit) triple from each.
//
// Every number directly followed by a core unit is a component, and
// "2x8 VCPU" counts as 16. A fragment without any such pair is accepted
// only when it holds exactly one number and no unit. Anything else is
// returned in Unparsed. Fractional values are rounded up and listed in
// Rounded.
func ParseCoreDescription(desc string) CoreParse {
	var out CoreParse

	for _, frag := range splitFragments(desc) {
		comps, rounded, ok := parseFragment(frag)
		if !ok {
			out.Unparsed = append(out.Unparsed, frag)
			continue
		}
		for _, c := range comps {
			out.Components = append(out.Components, c)
			out.Total += c.Cores
		}
		out.Rounded = append(out.Rounded, rounded...)
	}
	return out
}

// splitFragments cuts desc at ',', ';', '+' and line breaks. A comma
// between two digits is a decimal separator and does not cut.
func splitFragments(desc string) []string {
	var frags []string
	add := func(p string) {
		if p = strings.TrimSpace(p); p != "" {
			frags = append(frags, p)
		}
	}

	start := 0
	for i := 0; i < len(desc); i++ {
		switch desc[i] {
		case ',':
			if i > 0 && i+1 < len(desc) && isDigit(desc[i-1]) && isDigit(desc[i+1]) {
				continue
			}
		case ';', '+', '\n', '\r':
		default:
			continue
		}
		add(desc[start:i])
		start = i + 1
	}
	add(desc[start:])
	return frags
}

func parseFragment(frag string) ([]CoreComponent, []string, bool) {
	toks := tokenize(frag)

	numbers := 0
	units := 0
	for _, t := range toks {
		if t.kind == tokNumber {
			numbers++
		} else if t.isUnit() {
			units++
		}
	}
	if numbers == 0 {
		return nil, nil, false
	}

	var (
		comps   []CoreComponent
		rounded []string
	)
	labelStart := 0
	for i := 0; i < len(toks); i++ {
		if toks[i].kind != tokNumber {
			continue
		}
		last := i
		if i+2 < len(toks) && toks[i+1].isTimes() && toks[i+2].kind == tokNumber {
			last = i + 2
		}
		if last+1 >= len(toks) || !toks[last+1].isUnit() {
			continue
		}

		value, ok := numberValue(toks[i].text)
		if !ok {
			return nil, nil, false
		}
		if last != i {
			factor, ok := numberValue(toks[last].text)
			if !ok {
				return nil, nil, false
			}
			value *= factor
		}

		cores, exact := wholeCores(value)
		if !exact {
			rounded = append(rounded, strings.TrimSpace(frag[toks[i].start:toks[last].end]))
		}
		comps = append(comps, CoreComponent{
			Label: cleanLabel(frag[labelStart:toks[i].start]),
			Cores: cores,
			Unit:  strings.ToUpper(toks[last+1].text),
		})
		labelStart = toks[last+1].end
		i = last + 1
	}
	if len(comps) > 0 {
		return comps, rounded, true
	}

	if numbers != 1 || units != 0 {
		return nil, nil, false
	}
	for _, t := range toks {
		if t.kind != tokNumber {
			continue
		}
		value, ok := numberValue(t.text)
		if !ok {
			return nil, nil, false
		}
		cores, exact := wholeCores(value)
		if !exact {
			rounded = append(rounded, t.text)
		}
		return []CoreComponent{{Label: cleanLabel(frag[:t.start]), Cores: cores}}, rounded, true
	}
	return nil, nil, false
}

// numberValue parses "16", "2.5" and "2,5".
func numberValue(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// wholeCores rounds v up and reports whether v was already whole.
func wholeCores(v float64) (int, bool) {
	c := math.Ceil(v)
	return int(c), c == v
}

func cleanLabel(s string) string {
	s = strings.Trim(s, ":=-()/ ")
	for {
		word, rest, ok := strings.Cut(s, " ")
		if !ok || !connectors[strings.ToLower(word)] {
			return s
		}
		s = strings.TrimSpace(rest)
	}
}

// tokenize splits s into runs of letters and runs of digits. A '.' or ','
// between digits stays inside the number, and '×' or '*' read as "x".
// Everything else separates tokens.
func tokenize(s string) []token {
	var toks []token
	start := -1
	kind := tokWord

	flush := func(end int) {
		if start >= 0 {
			toks = append(toks, token{kind: kind, text: s[start:end], start: start, end: end})
			start = -1
		}
	}

	for i, r := range s {
		switch {
		case unicode.IsDigit(r):
			if start >= 0 && kind != tokNumber {
				flush(i)
			}
			if start < 0 {
				start, kind = i, tokNumber
			}
		case (r == '.' || r == ',') && start >= 0 && kind == tokNumber && i+1 < len(s) && isDigit(s[i+1]):
		case unicode.IsLetter(r):
			if start >= 0 && kind != tokWord {
				flush(i)
			}
			if start < 0 {
				start, kind = i, tokWord
			}
		case r == '×' || r == '*':
			flush(i)
			end := i + utf8.RuneLen(r)
			toks = append(toks, token{kind: tokWord, text: "x", start: i, end: end})
		default:
			flush(i)
		}
	}
	flush(len(s))
	return toks
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}
