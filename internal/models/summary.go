package models

import (
	"sort"
	"strconv"
)

// Count is the number of responses that share one value.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Summary is the grouped count of one column.
type Summary struct {
	Column string  `json:"column"`
	Total  int     `json:"total"`
	Empty  bool    `json:"empty"`
	Counts []Count `json:"counts"`
}

// CountBy groups the table's rows by the given column. Groups are ordered by
// count descending; equal counts keep the order their value was first seen in.
func CountBy(t *Table, column string) *Summary {
	s := &Summary{Column: column, Counts: []Count{}}
	if t == nil || t.Empty() || !t.HasColumn(column) {
		s.Empty = true
		return s
	}

	index := make(map[string]int)
	for _, r := range t.Rows {
		v := r.Value(column)
		i, ok := index[v]
		if !ok {
			i = len(s.Counts)
			index[v] = i
			s.Counts = append(s.Counts, Count{Value: v})
		}
		s.Counts[i].Count++
		s.Total++
	}
	sort.SliceStable(s.Counts, func(i, j int) bool {
		return s.Counts[i].Count > s.Counts[j].Count
	})
	return s
}

// Max returns the largest group size.
func (s *Summary) Max() int {
	m := 0
	for _, c := range s.Counts {
		if c.Count > m {
			m = c.Count
		}
	}
	return m
}

// AsMap is a convenience view used by the dashboard.
func (s *Summary) AsMap() map[string]int {
	m := make(map[string]int, len(s.Counts))
	for _, c := range s.Counts {
		m[c.Value] = c.Count
	}
	return m
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
