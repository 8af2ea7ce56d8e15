package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/udecbot/horarios/model"
)

var anyCivilRE = regexp.MustCompile(`(?i)(?:cualquier|todas?)\s+(?:las\s+)?especialidad(?:es)?\s+(?:de\s+)?(?:ing(?:enier[ií]a|\.)?\s*)?civil(?:es)?`)

var careerRE = regexp.MustCompile(`(?P<name>[^()\n,;\d]+?)[\s-]*\(?\s*(?P<semester>\d{1,2})\s*\)?`)

// ParseCareers пары "специальность (семестр)" либо отметка "любая
// специальность гражданской инженерии"
func ParseCareers(text string) []model.Career {
	var careers []model.Career

	if anyCivilRE.MatchString(text) {
		careers = append(careers, model.Career{AnyCivilSpecialty: true})
		text = anyCivilRE.ReplaceAllString(text, "\n")
	}

	nameIdx := careerRE.SubexpIndex("name")
	semIdx := careerRE.SubexpIndex("semester")
	for _, m := range careerRE.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(m[nameIdx]), "-"))
		if name == "" {
			continue
		}
		semester, err := strconv.Atoi(m[semIdx])
		if err != nil {
			continue
		}
		careers = append(careers, model.Career{Name: name, Semester: semester})
	}
	return careers
}

var professorRE = regexp.MustCompile(`(?i)(?:[\[(]\s*(?P<type>[TPL])\s*[\])])?\s*(?P<names>[^\[(]+)`)

var nameSeparatorRE = regexp.MustCompile(`\s+-\s*|\s*-\s+|\n`)

// ParseProfessors сегменты "[T] Имя - Имя [P] Имя". Имена без метки в начале
// считаются теорией, дальше наследуют предыдущую метку.
func ParseProfessors(text string) []model.Professor {
	var professors []model.Professor

	kind := model.Theory
	typeIdx := professorRE.SubexpIndex("type")
	namesIdx := professorRE.SubexpIndex("names")
	for _, m := range professorRE.FindAllStringSubmatch(text, -1) {
		if k, ok := model.ParseKind(m[typeIdx]); ok {
			kind = k
		}
		for _, name := range nameSeparatorRE.Split(m[namesIdx], -1) {
			name = strings.Trim(strings.TrimSpace(name), ")]-")
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			professors = append(professors, model.Professor{Kind: kind, Name: name})
		}
	}
	return professors
}
