package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/udecbot/horarios/utils"
)

// Matcher точное совпадение с одним из значений либо регулярка с префиксом ~
type Matcher struct {
	MatchRaw utils.StringEnum

	compiled []*regexp.Regexp
}

// Compile скомпилировать регулярки заранее, чтобы не делать это на каждый предмет
func (m *Matcher) Compile() error {
	m.compiled = m.compiled[:0]
	for _, s := range m.MatchRaw {
		if !strings.HasPrefix(s, "~") {
			continue
		}
		re, err := regexp.Compile(s[1:])
		if err != nil {
			return fmt.Errorf("bad pattern %q: %w", s, err)
		}
		m.compiled = append(m.compiled, re)
	}
	return nil
}

func (m *Matcher) Match(text string) bool {
	if len(m.MatchRaw) == 0 {
		return true
	}

	for _, s := range m.MatchRaw {
		if s == text {
			return true
		}
	}
	for _, re := range m.compiled {
		if re.MatchString(text) {
			return true
		}
	}

	return false
}

// MatchAny хотя бы один из текстов подходит
func (m *Matcher) MatchAny(texts ...string) bool {
	if len(m.MatchRaw) == 0 {
		return true
	}
	for _, t := range texts {
		if m.Match(t) {
			return true
		}
	}
	return false
}
