package media

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Keyword is a named seasons selector.
type Keyword string

const (
	KeywordAll   Keyword = "all"
	KeywordFirst Keyword = "first"
	KeywordLast  Keyword = "last"
	KeywordNext  Keyword = "next"
)

func (k Keyword) valid() bool {
	switch k {
	case KeywordAll, KeywordFirst, KeywordLast, KeywordNext:
		return true
	}
	return false
}

// SeasonsSelector is either a keyword or an explicit list of season numbers.
// On the wire it is a JSON string ("all", "first", "last", "next") or an
// array of positive integers.
type SeasonsSelector struct {
	keyword Keyword
	numbers []int
}

// AllSeasons returns the "all" selector.
func AllSeasons() *SeasonsSelector {
	return &SeasonsSelector{keyword: KeywordAll}
}

// SelectKeyword returns a keyword selector. It panics on an unknown keyword.
func SelectKeyword(k Keyword) *SeasonsSelector {
	if !k.valid() {
		panic(fmt.Sprintf("media: unknown seasons keyword %q", k))
	}
	return &SeasonsSelector{keyword: k}
}

// SelectSeasons returns an explicit list selector.
func SelectSeasons(numbers ...int) *SeasonsSelector {
	return &SeasonsSelector{numbers: append([]int{}, numbers...)}
}

// Keyword returns the keyword, or "" for an explicit list.
func (s *SeasonsSelector) Keyword() Keyword {
	return s.keyword
}

// IsAll reports whether the selector is the "all" keyword.
func (s *SeasonsSelector) IsAll() bool {
	return s.keyword == KeywordAll
}

// IsList reports whether the selector is an explicit season list.
func (s *SeasonsSelector) IsList() bool {
	return s.keyword == ""
}

// Numbers returns a copy of the explicit season list.
func (s *SeasonsSelector) Numbers() []int {
	return append([]int{}, s.numbers...)
}

func (s *SeasonsSelector) String() string {
	if s == nil {
		return ""
	}
	if !s.IsList() {
		return string(s.keyword)
	}
	parts := make([]string, len(s.numbers))
	for i, n := range s.numbers {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (s SeasonsSelector) MarshalJSON() ([]byte, error) {
	if s.keyword != "" {
		return json.Marshal(string(s.keyword))
	}
	if s.numbers == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.numbers)
}

func (s *SeasonsSelector) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("seasons: empty value")
	}

	switch data[0] {
	case '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("seasons: %w", err)
		}
		k := Keyword(strings.ToLower(strings.TrimSpace(raw)))
		if !k.valid() {
			return fmt.Errorf("seasons: unknown keyword %q", raw)
		}
		*s = SeasonsSelector{keyword: k}
		return nil
	case '[':
		var numbers []int
		if err := json.Unmarshal(data, &numbers); err != nil {
			return fmt.Errorf("seasons: expected a list of integers: %w", err)
		}
		for _, n := range numbers {
			if n <= 0 {
				return fmt.Errorf("seasons: season numbers must be positive, got %d", n)
			}
		}
		*s = SeasonsSelector{numbers: numbers}
		return nil
	}

	return fmt.Errorf("seasons: expected a keyword or a list, got %s", data)
}
