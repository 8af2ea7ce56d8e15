package config

import (
	"strconv"

	"github.com/udecbot/horarios/model"
)

// AnyCivilCareer так фильтр видит отметку "любая специальность"
const AnyCivilCareer = "*civil"

// Filter какие предметы выводить
type Filter struct {
	CodeMatcher   Matcher
	NameMatcher   Matcher
	CareerMatcher Matcher
}

func (f *Filter) Init() error {
	for _, m := range []*Matcher{&f.CodeMatcher, &f.NameMatcher, &f.CareerMatcher} {
		if err := m.Compile(); err != nil {
			return err
		}
	}
	return nil
}

func (f *Filter) Match(s model.Subject) bool {
	if !f.CodeMatcher.Match(strconv.FormatUint(uint64(s.Code), 10)) {
		return false
	}
	if !f.NameMatcher.Match(s.Name) {
		return false
	}

	careers := make([]string, 0, len(s.Careers))
	for _, c := range s.Careers {
		if c.AnyCivilSpecialty {
			careers = append(careers, AnyCivilCareer)
			continue
		}
		careers = append(careers, c.Name)
	}
	return f.CareerMatcher.MatchAny(careers...)
}

// Apply отфильтровать карту предметов
func (f *Filter) Apply(subjects model.SubjectMap) model.SubjectMap {
	ret := model.SubjectMap{}
	for k, s := range subjects {
		if f.Match(s) {
			ret[k] = s
		}
	}
	return ret
}
