package cfm

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/udecbot/horarios/model"
	"github.com/udecbot/horarios/parser"
	"github.com/udecbot/horarios/utils"
)

// Столбцы таблицы, остальные не нужны
const (
	colCodes             = 2
	colName              = 3
	colCredits           = 4
	colSections          = 9
	colTheoryDays        = 10
	colTheoryBlocks      = 11
	colTheoryRooms       = 12
	colTheoryProfessors  = 13
	colPracticeDays      = 14
	colPracticeBlocks    = 15
	colPracticeRooms     = 16
	colPracticeProfessor = 17
)

const noClassroom = "Sin sala"

var (
	creditsRE      = regexp.MustCompile(`\(\s*(\d+)\s*\)|(\d+) cred`)
	sectionRangeRE = regexp.MustCompile(`^(\d+) *a *(\d+)$`)
	spacesRE       = regexp.MustCompile(`\s+`)
	nameSpacesRE   = regexp.MustCompile(` {2,}|\n`)

	daysRE   = regexp.MustCompile(`(?i)(?:lu|ma|mi|ju|vi|sa|do) */ *(?:lu|ma|mi|ju|vi|sa|do)|(?:test ?)?(?:lu|ma|mi|ju|vi|sa|do)`)
	blocksRE = regexp.MustCompile(`(?i)\d+(?:(?: *- *\d+)*| *[ay] *\d+)?(?: */ *\d+(?:(?: *- *\d+)*| *[ay] *\d+)?)?`)
	// Названия аудиторий в документах CFM не подчиняются никакому шаблону
	classroomsRE = regexp.MustCompile(`(?i)icalma|sala\s*reuniones\s*decanat(?:o|ura)|auditorio\s*facultad\s*de\s*ciencias\s*f[ií]sicas\s*y\s*matem[aá]ticas|lab\s*electr[iíoó]nica|sala\s*3\s*agronomia|auditorio\s*mancinelli|sala\s*multim\s*ii\.?\s*edif\s*arco\s*fcb|auditorio ci2ma|[a-z]+ *\d+-\d+|(\w+ *- *\w+) */ *(\w+ *- *\w+)|\w+ *- *\w+(?: *, *\w+(?: *- *\w+)?)?|[a-z]+ *\d+ */ *[a-z]+ *\d+`)
)

// Parser строки документов CFM
type Parser struct {
	Distribute parser.DistributeOptions
	Fallback   parser.Fallback
	Log        zerolog.Logger
}

func (p Parser) ParseRow(ctx context.Context, row []string) []model.Subject {
	codes := parser.ParseCodes(cell(row, colCodes))
	if len(codes) == 0 {
		return nil
	}

	name := nameSpacesRE.ReplaceAllString(strings.TrimSpace(cell(row, colName)), " ")
	credits := ParseCredits(cell(row, colCredits))
	if name == "" || credits == nil {
		info := p.Fallback.Info(ctx, codes[0])
		if name == "" {
			name = info.Name
		}
		if credits == nil {
			credits = info.Credits
		}
	}

	sections := p.ParseSections(cell(row, colSections))
	if len(sections) == 0 {
		p.Log.Warn().Uint32("code", codes[0]).Msg("no valid sections, row dropped")
		return nil
	}
	raw := Prepare(row)
	perSection := parser.Distribute(raw, len(sections), p.Distribute)

	professors := append(
		parser.ParseProfessors(cell(row, colTheoryProfessors)),
		tagged(model.Practice, parser.ParseProfessors(cell(row, colPracticeProfessor)))...,
	)

	schedules := make([][]model.ScheduleEntry, len(sections))
	for i := range sections {
		schedules[i] = parser.Expand(perSection[i])
	}

	var subjects []model.Subject
	for _, code := range codes {
		for i, section := range sections {
			subjects = append(subjects, model.Subject{
				Code:       code,
				Name:       name,
				Credits:    credits,
				Section:    section,
				Schedule:   schedules[i],
				Professors: professors,
			})
		}
	}
	return subjects
}

// ParseCredits "(5)" или "5 cred"
func ParseCredits(text string) *int {
	m := creditsRE.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil
	}
	s := m[1]
	if s == "" {
		s = m[2]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return utils.IntPtr(n)
}

// maxSection секция хранится в кеше одним байтом
const maxSection = math.MaxUint8

// ParseSections строки "1", "1 a 3". Пустая строка это секция 1,
// непонятная тоже. Секции больше maxSection отбрасываются.
func (p Parser) ParseSections(text string) []int {
	var sections []int
	for _, line := range utils.SplitLines(text) {
		if line == "" {
			sections = append(sections, 1)
			continue
		}
		if n, err := strconv.Atoi(line); err == nil {
			if n < 0 || n > maxSection {
				p.Log.Warn().Str("section", line).Msg("section out of range")
				continue
			}
			sections = append(sections, n)
			continue
		}
		m := sectionRangeRE.FindStringSubmatch(line)
		if m == nil {
			sections = append(sections, 1)
			continue
		}
		from, _ := strconv.Atoi(m[1])
		to, _ := strconv.Atoi(m[2])
		if from > to {
			from, to = to, from
		}
		if to > maxSection {
			p.Log.Warn().Str("section", line).Msg("section out of range")
			continue
		}
		for n := from; n <= to; n++ {
			sections = append(sections, n)
		}
	}
	return sections
}

// В столбце практики имена без метки относятся к практике
func tagged(kind model.ClassKind, professors []model.Professor) []model.Professor {
	for i := range professors {
		if professors[i].Kind == model.Theory {
			professors[i].Kind = kind
		}
	}
	return professors
}

func cell(row []string, i int) string {
	return utils.GetOrString(row, i, "")
}
