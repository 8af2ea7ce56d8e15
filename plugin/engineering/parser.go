package engineering

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

// Столбцы таблицы
const (
	colCode = iota
	colSection
	colName
	colCredits
	colTheoretical
	colPractical
	colLaboratory
	colCareers
	colSchedule
	colProfessors

	columns
)

// Строка предмета начинается с кода (или нескольких кодов через \n)
var codeLineRE = regexp.MustCompile(`(?m)^\s*\d{6}\s*$`)

var sectionSeparatorRE = regexp.MustCompile(`\s*-\s*`)

// [T G1] Lu 3-4 (Sala A) либо "Coordinar con docente"
var scheduleRE = regexp.MustCompile(`(?i)(?:[\[|l(]?(?P<type>[TPL])(?: ?G(?P<group>\d))?[\]|l)])? *(?:(?P<day>Lu|Ma|Mi|Ju|Vi|Sa|Do) ?(?P<blocks>\d+(?:(?:\s*(?:,|-|y|a)\s*|\s+)\d+)*) ?\(?(?P<classroom>[^)]+)\)|(?P<tbd>Coordinar?(?: con)? docentes?))`)

var (
	typeIdx      = scheduleRE.SubexpIndex("type")
	groupIdx     = scheduleRE.SubexpIndex("group")
	dayIdx       = scheduleRE.SubexpIndex("day")
	blocksIdx    = scheduleRE.SubexpIndex("blocks")
	classroomIdx = scheduleRE.SubexpIndex("classroom")
	tbdIdx       = scheduleRE.SubexpIndex("tbd")
)

// Parser строки документа факультета инженерии
type Parser struct {
	Fallback parser.Fallback
	Log      zerolog.Logger
}

func (p Parser) ParseRow(ctx context.Context, row []string) []model.Subject {
	if len(row) < columns || !codeLineRE.MatchString(row[colCode]) {
		return nil
	}

	codes := parser.ParseCodes(row[colCode])
	names := nonEmpty(utils.SplitLines(row[colName]))
	credits := parser.ParseCount(row[colCredits])
	theoretical := parser.ParseCount(row[colTheoretical])
	practical := parser.ParseCount(row[colPractical])
	laboratory := parser.ParseCount(row[colLaboratory])

	if len(names) == 0 || len(credits) == 0 || len(theoretical) == 0 || len(practical) == 0 || len(laboratory) == 0 {
		info := p.Fallback.Info(ctx, codes[0])
		names = orString(names, info.Name)
		credits = orInt(credits, info.Credits)
		theoretical = orInt(theoretical, info.Theoretical)
		practical = orInt(practical, info.Practical)
		laboratory = orInt(laboratory, info.Laboratory)
	}

	careers := parser.ParseCareers(row[colCareers])
	schedule := p.ParseSchedule(row[colSchedule])
	professors := parser.ParseProfessors(row[colProfessors])

	names = parser.Broadcast(names, len(codes))
	sections := nonEmpty(utils.SplitLines(row[colSection]))

	var subjects []model.Subject
	for i, code := range codes {
		for _, section := range p.sectionsOf(code, i, len(codes), sections) {
			subjects = append(subjects, model.Subject{
				Code:             code,
				Name:             names[i],
				Credits:          parser.IntAt(credits, i),
				Section:          section,
				TheoreticalHours: parser.IntAt(theoretical, i),
				PracticalHours:   parser.IntAt(practical, i),
				LaboratoryHours:  parser.IntAt(laboratory, i),
				Careers:          careers,
				Schedule:         schedule,
				Professors:       professors,
			})
		}
	}
	return subjects
}

// Если кодов столько же, сколько строк секций, i-тый код берёт i-тую строку
// ("1-2" это две секции). Иначе каждый код получает все секции. Секция
// больше байта в кеш не влезет и отбрасывается.
func (p Parser) sectionsOf(code uint32, i, codes int, lines []string) []int {
	if len(lines) == 0 {
		return []int{1}
	}
	if codes == len(lines) {
		lines = lines[i : i+1]
	}

	var sections []int
	for _, line := range lines {
		for _, s := range sectionSeparatorRE.Split(line, -1) {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > math.MaxUint8 {
				p.Log.Warn().Uint32("code", code).Str("section", s).Msg("bad section")
				continue
			}
			sections = append(sections, n)
		}
	}
	return sections
}

// ParseSchedule разобрать ячейку расписания. Занятие без метки типа берёт
// тип ближайшего предыдущего, подгруппа не наследуется.
func (p Parser) ParseSchedule(text string) []model.ScheduleEntry {
	var schedule []model.ScheduleEntry

	for _, m := range scheduleRE.FindAllStringSubmatch(strings.ReplaceAll(text, "\n", " "), -1) {
		kind, ok := model.ParseKind(m[typeIdx])
		for i := len(schedule) - 1; !ok && i >= 0; i-- {
			if schedule[i].Kind != model.KindNone {
				kind, ok = schedule[i].Kind, true
			}
		}
		group, _ := strconv.Atoi(m[groupIdx])

		if m[tbdIdx] != "" {
			schedule = append(schedule, model.PendingEntry(kind, group))
			continue
		}

		if !ok {
			p.Log.Warn().Str("entry", m[0]).Msg("could not resolve schedule type")
			continue
		}

		day, dayOK := parser.ParseDay(m[dayIdx])
		blocks := parser.ExpandBlocks(m[blocksIdx])
		if !dayOK || len(blocks) == 0 {
			schedule = append(schedule, model.PendingEntry(kind, group))
			continue
		}

		schedule = append(schedule, model.ScheduleEntry{
			Kind:      kind,
			Group:     group,
			Day:       day,
			Blocks:    blocks,
			Classroom: strings.TrimSpace(m[classroomIdx]),
		})
	}

	return schedule
}

func nonEmpty(lines []string) []string {
	var ret []string
	for _, l := range lines {
		if l != "" {
			ret = append(ret, l)
		}
	}
	return ret
}

func orString(values []string, fallback string) []string {
	if len(values) == 0 && fallback != "" {
		return []string{fallback}
	}
	return values
}

func orInt(values []int, fallback *int) []int {
	if len(values) == 0 && fallback != nil {
		return []int{*fallback}
	}
	return values
}
