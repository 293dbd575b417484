// Package sourcemap implements revision 3 source maps: parsing, mappings
// encoding, and composing a new map onto an earlier one.
package sourcemap

import (
	"errors"
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
)

// Version is the only supported source map revision
const Version = 3

// ErrMissingFields is returned when a map has neither sources nor mappings
var ErrMissingFields = errors.New("source map is missing sources and mappings")

// A Map is a revision 3 source map
type Map struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	SourceRoot     string   `json:"sourceRoot,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// Init creates the empty map attached to a freshly-read file
func Init(relative, contents string) *Map {
	return &Map{
		Version:        Version,
		File:           relative,
		Sources:        []string{relative},
		SourcesContent: []string{contents},
		Names:          []string{},
	}
}

// Parse parses a JSON-encoded map
func Parse(b []byte) (*Map, error) {
	m := new(Map)

	err := json.Unmarshal(b, m)
	if err != nil {
		return nil, fmt.Errorf("invalid source map: %w", err)
	}

	if m.Version != Version {
		return nil, fmt.Errorf("unsupported source map version %d", m.Version)
	}

	return m, nil
}

// ParseString is Parse for strings
func ParseString(s string) (*Map, error) {
	return Parse([]byte(s))
}

// Marshal encodes the map as JSON
func (m *Map) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Validate checks that the map carries something to map with
func (m *Map) Validate() error {
	if len(m.Sources) == 0 && m.Mappings == "" {
		return ErrMissingFields
	}

	return nil
}

func (m *Map) content(i int) (string, bool) {
	if i < 0 || i >= len(m.SourcesContent) {
		return "", false
	}

	return m.SourcesContent[i], true
}

func (m *Map) source(i int) (string, error) {
	if i < 0 || i >= len(m.Sources) {
		return "", fmt.Errorf("source index %d out of range", i)
	}

	return m.Sources[i], nil
}

func (m *Map) name(i int) (string, bool, error) {
	if i < 0 {
		return "", false, nil
	}

	if i >= len(m.Names) {
		return "", false, fmt.Errorf("name index %d out of range", i)
	}

	return m.Names[i], true, nil
}

// Compose traces this map's mappings back through prev, which describes the
// file this map's source was generated from. Mappings into any other source are
// kept as they are.
func (m *Map) Compose(prev *Map) (*Map, error) {
	segs, err := DecodeMappings(m.Mappings)
	if err != nil {
		return nil, err
	}

	prevSegs, err := DecodeMappings(prev.Mappings)
	if err != nil {
		return nil, fmt.Errorf("previous map: %w", err)
	}

	target := prev.File
	if target == "" {
		target = m.File
	}

	idx := newLineIndex(prevSegs)
	b := newBuilder(m.File, m.SourceRoot)

	for _, seg := range segs {
		if !seg.HasSource() {
			b.addGenerated(seg)
			continue
		}

		src, err := m.source(seg.Source)
		if err != nil {
			return nil, err
		}

		name, hasName, err := m.name(seg.Name)
		if err != nil {
			return nil, err
		}

		content, hasContent := m.content(seg.Source)
		line, col := seg.OrigLine, seg.OrigCol

		if src == target {
			orig, ok := idx.find(seg.OrigLine, seg.OrigCol)
			if ok && orig.HasSource() {
				src, err = prev.source(orig.Source)
				if err != nil {
					return nil, fmt.Errorf("previous map: %w", err)
				}

				content, hasContent = prev.content(orig.Source)
				line, col = orig.OrigLine, orig.OrigCol

				prevName, ok, err := prev.name(orig.Name)
				if err != nil {
					return nil, fmt.Errorf("previous map: %w", err)
				}

				if ok {
					name, hasName = prevName, true
				}
			}
		}

		b.add(seg, src, line, col, name, hasName, content, hasContent)
	}

	return b.finish(), nil
}

// lineIndex finds the closest mapping at or before a generated position, on the
// same line only.
type lineIndex map[int][]Segment

func newLineIndex(segs []Segment) lineIndex {
	idx := make(lineIndex)
	for _, seg := range segs {
		idx[seg.GenLine] = append(idx[seg.GenLine], seg)
	}

	for _, line := range idx {
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].GenCol < line[j].GenCol
		})
	}

	return idx
}

func (idx lineIndex) find(line, col int) (Segment, bool) {
	segs := idx[line]

	i := sort.Search(len(segs), func(i int) bool {
		return segs[i].GenCol > col
	})

	if i == 0 {
		return Segment{}, false
	}

	return segs[i-1], true
}

type builder struct {
	m        *Map
	segs     []Segment
	sources  map[string]int
	names    map[string]int
	contents map[int]string
}

func newBuilder(file, root string) *builder {
	return &builder{
		m: &Map{
			Version:    Version,
			File:       file,
			SourceRoot: root,
			Sources:    []string{},
			Names:      []string{},
		},
		sources:  make(map[string]int),
		names:    make(map[string]int),
		contents: make(map[int]string),
	}
}

func (b *builder) addGenerated(seg Segment) {
	seg.Source = -1
	seg.Name = -1
	b.segs = append(b.segs, seg)
}

func (b *builder) add(
	seg Segment,
	src string, line, col int,
	name string, hasName bool,
	content string, hasContent bool) {

	si, ok := b.sources[src]
	if !ok {
		si = len(b.m.Sources)
		b.sources[src] = si
		b.m.Sources = append(b.m.Sources, src)
	}

	if hasContent {
		if _, ok := b.contents[si]; !ok {
			b.contents[si] = content
		}
	}

	ni := -1
	if hasName {
		ni, ok = b.names[name]
		if !ok {
			ni = len(b.m.Names)
			b.names[name] = ni
			b.m.Names = append(b.m.Names, name)
		}
	}

	b.segs = append(b.segs, Segment{
		GenLine:  seg.GenLine,
		GenCol:   seg.GenCol,
		Source:   si,
		OrigLine: line,
		OrigCol:  col,
		Name:     ni,
	})
}

func (b *builder) finish() *Map {
	b.m.Mappings = EncodeMappings(b.segs)

	if len(b.contents) > 0 {
		b.m.SourcesContent = make([]string, len(b.m.Sources))
		for i, c := range b.contents {
			b.m.SourcesContent[i] = c
		}
	}

	return b.m
}
