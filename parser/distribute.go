package parser

import (
	"regexp"
	"strings"

	"github.com/udecbot/horarios/model"
)

// RawEntry занятие до распределения по секциям: день, блоки и аудитория
// ещё строками (могут содержать "Lu/Mi", "3-4/5-6", "Sala 101, 102")
type RawEntry struct {
	Kind      model.ClassKind
	Group     int
	Day       string
	Block     string
	Classroom string
}

func (e RawEntry) slot() string {
	return e.Day + ";" + e.Block
}

// DistributeOptions особенности конкретного документа
type DistributeOptions struct {
	// Первые sections-1 занятий по одному на секцию, остальные последней
	// секции. Так размечен документ MAT; правило не подтверждено и требует
	// проверки на новых документах.
	BundleRemainder bool
}

// Distribute разложить занятия строки по sections секциям.
//
// Занятия группируются по типу. Если секция одна, занятие одно или это тест,
// каждая секция получает все занятия. Если количество делится на sections,
// секции получают подряд идущие куски поровну. Иначе занятия режутся на
// серии без повторяющихся аудиторий, по серии на секцию.
func Distribute(entries []RawEntry, sections int, opts DistributeOptions) [][]RawEntry {
	if sections < 1 {
		sections = 1
	}
	ret := make([][]RawEntry, sections)

	var kinds []model.ClassKind
	byKind := map[model.ClassKind][]RawEntry{}
	for _, e := range entries {
		if _, ok := byKind[e.Kind]; !ok {
			kinds = append(kinds, e.Kind)
		}
		byKind[e.Kind] = append(byKind[e.Kind], e)
	}

	for _, kind := range kinds {
		list := byKind[kind]

		if sections == 1 || len(list) == 1 || kind == model.Test {
			for i := range ret {
				ret[i] = append(ret[i], list...)
			}
			continue
		}

		var chunks [][]RawEntry
		switch {
		case len(list)%sections == 0:
			step := len(list) / sections
			for i := 0; i < sections; i++ {
				chunks = append(chunks, list[i*step:(i+1)*step])
			}
		case opts.BundleRemainder:
			chunks = bundleRemainder(list, sections)
		default:
			chunks = classroomRuns(list, sections)
		}

		for i, chunk := range chunks {
			ret[i] = append(ret[i], numberGroups(chunk)...)
		}
	}

	return ret
}

func bundleRemainder(list []RawEntry, sections int) [][]RawEntry {
	chunks := make([][]RawEntry, 0, sections)
	for i := 0; i < sections-1 && i < len(list); i++ {
		chunks = append(chunks, list[i:i+1])
	}
	if len(list) >= sections {
		chunks = append(chunks, list[sections-1:])
	}
	return chunks
}

// Серия заканчивается, когда аудитория повторяется. Лишние серии достаются
// последней секции.
func classroomRuns(list []RawEntry, sections int) [][]RawEntry {
	var runs [][]RawEntry
	seen := map[string]bool{}
	for _, e := range list {
		if len(runs) == 0 || seen[e.Classroom] {
			runs = append(runs, nil)
			seen = map[string]bool{}
		}
		seen[e.Classroom] = true
		runs[len(runs)-1] = append(runs[len(runs)-1], e)
	}

	if len(runs) <= sections {
		return runs
	}
	chunks := runs[:sections-1]
	var last []RawEntry
	for _, run := range runs[sections-1:] {
		last = append(last, run...)
	}
	return append(chunks, last)
}

// Подряд идущие занятия в одном слоте получают подгруппы 1, 2, ...
func numberGroups(chunk []RawEntry) []RawEntry {
	out := make([]RawEntry, len(chunk))
	copy(out, chunk)
	if len(out) < 2 {
		return out
	}

	slot := ""
	group := 1
	for i := range out {
		if s := out[i].slot(); s != slot {
			slot = s
			group = 1
		}
		out[i].Group = group
		group++
	}
	return out
}

var (
	slashRE           = regexp.MustCompile(`\s*/\s*`)
	commaRE           = regexp.MustCompile(`\s*,\s*`)
	digitsRE          = regexp.MustCompile(`^\d+$`)
	classroomPrefixRE = regexp.MustCompile(`^(.+?)\d+$`)
)

// Expand превратить занятия одной секции в записи расписания.
//
// "Lu/Mi" даёт запись на каждый день. "Sala 101, 102" даёт запись на каждую
// аудиторию со своей подгруппой. Исходная подгруппа остаётся, только если у
// типа в секции больше одной подгруппы. Нераспознанный день или блоки дают
// Pending. Пустая секция получает одну Pending запись.
func Expand(entries []RawEntry) []model.ScheduleEntry {
	groupsByKind := map[model.ClassKind]map[int]bool{}
	for _, e := range entries {
		if groupsByKind[e.Kind] == nil {
			groupsByKind[e.Kind] = map[int]bool{}
		}
		if e.Group != 0 {
			groupsByKind[e.Kind][e.Group] = true
		}
	}

	var schedule []model.ScheduleEntry
	lastKind := model.KindNone
	override := 1

	for _, e := range entries {
		if e.Kind != lastKind {
			lastKind = e.Kind
			override = 1
		}

		group := 0
		if e.Group != 0 && len(groupsByKind[e.Kind]) > 1 {
			group = e.Group
		}

		days := slashRE.Split(strings.TrimSpace(e.Day), -1)
		blocks := stretch(slashRE.Split(strings.TrimSpace(e.Block), -1), len(days))
		classrooms := stretch(slashRE.Split(strings.TrimSpace(e.Classroom), -1), len(blocks))

		for i, dayText := range days {
			day, ok := ParseDay(dayText)
			expanded := ExpandBlocks(blocks[i])
			if !ok || len(expanded) == 0 {
				schedule = append(schedule, model.PendingEntry(e.Kind, group))
				continue
			}

			rooms := splitClassrooms(classrooms[i])
			for _, room := range rooms {
				g := group
				if len(rooms) > 1 || e.Kind == model.Test {
					g = override
					override++
				}
				schedule = append(schedule, model.ScheduleEntry{
					Kind:      e.Kind,
					Group:     g,
					Day:       day,
					Blocks:    append([]int(nil), expanded...),
					Classroom: room,
				})
			}
		}
	}

	if len(schedule) == 0 {
		return []model.ScheduleEntry{model.PendingEntry(model.KindNone, 0)}
	}
	return schedule
}

func stretch(values []string, n int) []string {
	for len(values) < n {
		values = append(values, values[0])
	}
	return values
}

// "Sala 101, 102" -> "Sala 101", "Sala 102"
func splitClassrooms(text string) []string {
	if !strings.Contains(text, ",") {
		return []string{text}
	}

	rooms := commaRE.Split(text, -1)
	prefix := ""
	if m := classroomPrefixRE.FindStringSubmatch(rooms[0]); m != nil {
		prefix = m[1]
	}
	for i := 1; i < len(rooms); i++ {
		if digitsRE.MatchString(rooms[i]) {
			rooms[i] = prefix + rooms[i]
		}
	}
	return rooms
}
