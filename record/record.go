// Package record models game records, lines of the form
//
//	Game 1: 3 blue, 4 red; 1 red, 2 green, 6 blue; 2 green
//
// and parses them from text.
package record

import (
	"strconv"
	"strings"
)

// Color is one of the closed set of cube colors.
type Color uint8

const (
	Red Color = iota
	Green
	Blue

	numColors = 3
)

// Colors lists every color in rendering order.
var Colors = [numColors]Color{Red, Green, Blue}

var colorNames = [numColors]string{
	Red:   "red",
	Green: "green",
	Blue:  "blue",
}

func (c Color) String() string {
	if int(c) < numColors {
		return colorNames[c]
	}
	return "Color(" + strconv.Itoa(int(c)) + ")"
}

// ParseColor maps a color literal to its Color.
func ParseColor(s string) (Color, bool) {
	for _, c := range Colors {
		if colorNames[c] == s {
			return c, true
		}
	}
	return 0, false
}

// ColorCount is a single "<count> <color>" entry of a draw.
type ColorCount struct {
	Color Color
	Count int
}

// Draw holds one count per color. Colors a draw does not mention are 0.
type Draw struct {
	counts [numColors]int
}

// NewDraw folds counts into a Draw. When a color appears more than once the
// last count wins, so "1 red, 2 red" is a draw of 2 red.
func NewDraw(counts ...ColorCount) Draw {
	var d Draw
	for _, cc := range counts {
		d.counts[cc.Color] = cc.Count
	}
	return d
}

// Count returns the number of cubes of color c in the draw.
func (d Draw) Count(c Color) int {
	return d.counts[c]
}

func (d Draw) Red() int   { return d.counts[Red] }
func (d Draw) Green() int { return d.counts[Green] }
func (d Draw) Blue() int  { return d.counts[Blue] }

// String renders the draw in record syntax. Zero counts are omitted; a draw
// with no cubes at all renders as "0 red".
func (d Draw) String() string {
	var parts []string
	for _, c := range Colors {
		if n := d.counts[c]; n != 0 {
			parts = append(parts, strconv.Itoa(n)+" "+c.String())
		}
	}
	if len(parts) == 0 {
		return "0 " + Red.String()
	}
	return strings.Join(parts, ", ")
}

// Record is one game: its identifier and the draws revealed during it.
type Record struct {
	ID    int
	Draws []Draw
}

func (r Record) String() string {
	var sb strings.Builder
	sb.WriteString("Game ")
	sb.WriteString(strconv.Itoa(r.ID))
	sb.WriteString(": ")
	for i, d := range r.Draws {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}

// TrimFinalNewline strips the line break that ends most record files.
// Parse itself rejects it.
func TrimFinalNewline(text string) string {
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r")
}

// Format renders records one per line, the inverse of Parse.
func Format(records []Record) string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}
