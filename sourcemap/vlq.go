package sourcemap

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	vlqShift        = 5
	vlqContinuation = 1 << vlqShift
	vlqMask         = vlqContinuation - 1

	b64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
)

var (
	b64Index [256]int8

	errVLQEnd = errors.New("unexpected end of VLQ value")
)

func init() {
	for i := range b64Index {
		b64Index[i] = -1
	}

	for i := 0; i < len(b64Chars); i++ {
		b64Index[b64Chars[i]] = int8(i)
	}
}

// A Segment is a single decoded mapping. Lines and columns are 0-based; Source
// and Name are indexes into the map's Sources and Names, or -1 when absent.
type Segment struct {
	GenLine  int
	GenCol   int
	Source   int
	OrigLine int
	OrigCol  int
	Name     int
}

// HasSource checks if the segment maps back to an original position
func (s Segment) HasSource() bool {
	return s.Source >= 0
}

func encodeVLQ(b *strings.Builder, v int) {
	vlq := v << 1
	if v < 0 {
		vlq = (-v << 1) | 1
	}

	for {
		digit := vlq & vlqMask
		vlq >>= vlqShift
		if vlq > 0 {
			digit |= vlqContinuation
		}

		b.WriteByte(b64Chars[digit])

		if vlq == 0 {
			return
		}
	}
}

func decodeVLQ(s string, i int) (int, int, error) {
	result := 0
	shift := 0

	for {
		if i >= len(s) {
			return 0, i, errVLQEnd
		}

		digit := b64Index[s[i]]
		if digit < 0 {
			return 0, i, fmt.Errorf("invalid base64 character %q at %d", s[i], i)
		}

		i++
		result += int(digit&vlqMask) << shift
		shift += vlqShift

		if digit&vlqContinuation == 0 {
			break
		}
	}

	neg := result&1 == 1
	result >>= 1
	if neg {
		result = -result
	}

	return result, i, nil
}

// DecodeMappings decodes a "mappings" string into absolute segments, ordered by
// generated position.
func DecodeMappings(mappings string) ([]Segment, error) {
	var segs []Segment
	var source, origLine, origCol, name int

	line := 0
	i := 0
	for i < len(mappings) {
		genCol := 0

		for i < len(mappings) && mappings[i] != ';' {
			if mappings[i] == ',' {
				i++
				continue
			}

			var fields [5]int
			n := 0
			for i < len(mappings) && mappings[i] != ',' && mappings[i] != ';' {
				if n == len(fields) {
					return nil, fmt.Errorf(
						"segment on line %d has too many fields", line+1)
				}

				v, next, err := decodeVLQ(mappings, i)
				if err != nil {
					return nil, fmt.Errorf("line %d: %v", line+1, err)
				}

				fields[n] = v
				n++
				i = next
			}

			if n != 1 && n != 4 && n != 5 {
				return nil, fmt.Errorf(
					"segment on line %d has %d fields", line+1, n)
			}

			genCol += fields[0]
			seg := Segment{
				GenLine: line,
				GenCol:  genCol,
				Source:  -1,
				Name:    -1,
			}

			if n >= 4 {
				source += fields[1]
				origLine += fields[2]
				origCol += fields[3]

				seg.Source = source
				seg.OrigLine = origLine
				seg.OrigCol = origCol
			}

			if n == 5 {
				name += fields[4]
				seg.Name = name
			}

			segs = append(segs, seg)
		}

		if i < len(mappings) {
			// Skip ';'
			i++
			line++
		}
	}

	return segs, nil
}

// EncodeMappings encodes segments into a "mappings" string. Segments are sorted
// by generated position first.
func EncodeMappings(segs []Segment) string {
	sorted := make([]Segment, len(segs))
	copy(sorted, segs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].GenLine != sorted[j].GenLine {
			return sorted[i].GenLine < sorted[j].GenLine
		}

		return sorted[i].GenCol < sorted[j].GenCol
	})

	var b strings.Builder
	var source, origLine, origCol, name int

	line := 0
	genCol := 0
	first := true
	for _, seg := range sorted {
		for line < seg.GenLine {
			b.WriteByte(';')
			line++
			genCol = 0
			first = true
		}

		if !first {
			b.WriteByte(',')
		}
		first = false

		encodeVLQ(&b, seg.GenCol-genCol)
		genCol = seg.GenCol

		if !seg.HasSource() {
			continue
		}

		encodeVLQ(&b, seg.Source-source)
		encodeVLQ(&b, seg.OrigLine-origLine)
		encodeVLQ(&b, seg.OrigCol-origCol)
		source = seg.Source
		origLine = seg.OrigLine
		origCol = seg.OrigCol

		if seg.Name >= 0 {
			encodeVLQ(&b, seg.Name-name)
			name = seg.Name
		}
	}

	return b.String()
}
