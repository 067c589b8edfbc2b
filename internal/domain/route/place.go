package route

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// Place is a canonical port recognised by the registry.
type Place string

// Supported ports.
const (
	Shanghai Place = "shanghai"
	Ningbo   Place = "ningbo"
	Qingdao  Place = "qingdao"
	Tianjin  Place = "tianjin"
	Dalian   Place = "dalian"
	Shenzhen Place = "shenzhen"
	Xiamen   Place = "xiamen"
)

// PlaceInfo describes a canonical place and the names it is known by.
type PlaceInfo struct {
	Place       Place    `json:"id"`
	DisplayName string   `json:"name"`
	NativeName  string   `json:"native_name"`
	Aliases     []string `json:"aliases"`
}

// places is the single alias table. Native names, romanisations, historic
// spellings, short abbreviations and UN/LOCODEs all map to one canonical place.
var places = []PlaceInfo{
	{Shanghai, "Shanghai", "上海", []string{"上海港", "沪", "sh", "sha", "cnsha"}},
	{Ningbo, "Ningbo", "宁波", []string{"宁波港", "宁波舟山", "甬", "nb", "ngb", "cnngb", "ningbo-zhoushan"}},
	{Qingdao, "Qingdao", "青岛", []string{"青岛港", "qd", "tao", "cntao", "tsingtao"}},
	{Tianjin, "Tianjin", "天津", []string{"天津港", "tj", "tsn", "cntsn", "cntxg", "tientsin", "xingang"}},
	{Dalian, "Dalian", "大连", []string{"大连港", "dl", "dlc", "cndlc", "dairen"}},
	{Shenzhen, "Shenzhen", "深圳", []string{"深圳港", "sz", "szx", "cnszx"}},
	{Xiamen, "Xiamen", "厦门", []string{"厦门港", "xm", "xmn", "cnxmn", "amoy"}},
}

// Places returns the canonical places in registry order.
func Places() []PlaceInfo {
	out := make([]PlaceInfo, len(places))
	for i, p := range places {
		p.Aliases = append([]string(nil), p.Aliases...)
		out[i] = p
	}
	return out
}

// Info returns the description of a canonical place.
func (p Place) Info() (PlaceInfo, bool) {
	for _, info := range places {
		if info.Place == p {
			return info, true
		}
	}
	return PlaceInfo{}, false
}

// DisplayName returns the English name of the place, or the raw id if unknown.
func (p Place) DisplayName() string {
	if info, ok := p.Info(); ok {
		return info.DisplayName
	}
	return string(p)
}

// minReverseMatch is the shortest input, in runes, that may match as a
// fragment of a longer alias.
const minReverseMatch = 2

// maxTokenAlias is the longest Latin alias that only matches as a whole
// word. Abbreviations like "sh" or "sha" occur inside unrelated names
// such as Tangshan or Nansha.
const maxTokenAlias = 3

// Normalize trims surrounding whitespace, folds full-width forms to their
// narrow equivalents and case-folds the result.
func Normalize(name string) string {
	s := strings.TrimSpace(name)
	s = width.Fold.String(s)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

type aliasEntry struct {
	alias string
	place Place
	// wordOnly aliases match a whole token of the input, never a substring.
	wordOnly bool
}

// Gazetteer resolves free-text place names against the alias table.
type Gazetteer struct {
	exact   map[string]Place
	entries []aliasEntry
}

// NewGazetteer builds a Gazetteer over the supported places.
func NewGazetteer() *Gazetteer {
	g := &Gazetteer{exact: make(map[string]Place)}
	for _, info := range places {
		names := append([]string{string(info.Place), info.DisplayName, info.NativeName}, info.Aliases...)
		for _, name := range names {
			alias := Normalize(name)
			if alias == "" {
				continue
			}
			if _, dup := g.exact[alias]; dup {
				continue
			}
			g.exact[alias] = info.Place
			g.entries = append(g.entries, aliasEntry{
				alias:    alias,
				place:    info.Place,
				wordOnly: isShortLatin(alias),
			})
		}
	}
	// Longest aliases first keeps scoring stable regardless of table order.
	sort.SliceStable(g.entries, func(i, j int) bool {
		return utf8.RuneCountInString(g.entries[i].alias) > utf8.RuneCountInString(g.entries[j].alias)
	})
	return g
}

// Match resolves name to a canonical place.
//
// An exact alias match wins. Otherwise the input is matched by containment in
// either direction and scored by the length of the shared text; the highest
// score wins, and a tie between two different places leaves the name unresolved.
func (g *Gazetteer) Match(name string) (Place, bool) {
	norm := Normalize(name)
	if norm == "" {
		return "", false
	}
	if p, ok := g.exact[norm]; ok {
		return p, true
	}

	normLen := utf8.RuneCountInString(norm)
	tokens := tokenize(norm)
	best := 0
	var winner Place
	ambiguous := false
	for _, e := range g.entries {
		score := 0
		switch {
		case e.wordOnly:
			if tokens[e.alias] {
				score = utf8.RuneCountInString(e.alias)
			}
		case strings.Contains(norm, e.alias):
			score = utf8.RuneCountInString(e.alias)
		case normLen >= minReverseMatch && strings.Contains(e.alias, norm):
			score = normLen
		}
		if score == 0 {
			continue
		}
		switch {
		case score > best:
			best, winner, ambiguous = score, e.place, false
		case score == best && e.place != winner:
			ambiguous = true
		}
	}
	if best == 0 || ambiguous {
		return "", false
	}
	return winner, true
}

func isShortLatin(alias string) bool {
	if utf8.RuneCountInString(alias) > maxTokenAlias {
		return false
	}
	for _, r := range alias {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

// tokenize splits a normalised name on anything that is not a letter or digit.
func tokenize(norm string) map[string]bool {
	fields := strings.FieldsFunc(norm, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make(map[string]bool, len(fields))
	for _, f := range fields {
		tokens[f] = true
	}
	return tokens
}
