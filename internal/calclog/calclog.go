// Package calclog records the intermediate quantities of an analysis as an
// ordered, numbered narrative for reports.
package calclog

import (
	"fmt"
	"strings"
)

// Value is one named quantity of a step
type Value struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Entry is one numbered step of the calculation
type Entry struct {
	Step   int     `json:"step"`
	Title  string  `json:"title"`
	Detail string  `json:"detail,omitempty"`
	Values []Value `json:"values,omitempty"`
}

// Log is the ordered calculation trail of one solve call
type Log struct {
	Entries []Entry `json:"entries"`
}

// V builds a Value
func V(name string, value float64, unit string) Value {
	return Value{Name: name, Value: value, Unit: unit}
}

// Add appends a step and returns its number
func (l *Log) Add(title, detail string, values ...Value) int {
	step := len(l.Entries) + 1
	l.Entries = append(l.Entries, Entry{
		Step:   step,
		Title:  title,
		Detail: detail,
		Values: values,
	})
	return step
}

// Addf appends a step with a formatted detail line
func (l *Log) Addf(title, format string, args ...any) int {
	return l.Add(title, fmt.Sprintf(format, args...))
}

// Len returns the number of steps
func (l *Log) Len() int {
	return len(l.Entries)
}

// String renders the narrative, one step per block
func (l *Log) String() string {
	var sb strings.Builder
	for _, e := range l.Entries {
		sb.WriteString(e.String())
	}
	return sb.String()
}

func (e Entry) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%3d. %s\n", e.Step, e.Title)
	if e.Detail != "" {
		for _, line := range strings.Split(e.Detail, "\n") {
			fmt.Fprintf(&sb, "     %s\n", line)
		}
	}
	for _, v := range e.Values {
		fmt.Fprintf(&sb, "     %-24s %14.6g %s\n", v.Name, v.Value, v.Unit)
	}
	return sb.String()
}
