package cfm

import (
	"strings"

	"github.com/udecbot/horarios/model"
	"github.com/udecbot/horarios/parser"
)

// Prepare занятия теории (столбцы 10-12) и практики (14-16) до распределения
// по секциям
func Prepare(row []string) []parser.RawEntry {
	entries := prepareKind(model.Theory,
		cell(row, colTheoryDays), cell(row, colTheoryBlocks), cell(row, colTheoryRooms))
	return append(entries, prepareKind(model.Practice,
		cell(row, colPracticeDays), cell(row, colPracticeBlocks), cell(row, colPracticeRooms))...)
}

// prepareKind согласовать списки дней, блоков и аудиторий одного типа.
//
// Один блок или один день растягиваются на длину другого списка, одна
// аудитория на все дни, один день на все аудитории. Если аудиторий больше,
// чем дней, каждая пара день-блок повторяется ceil(аудитории/дни) раз.
func prepareKind(kind model.ClassKind, daysText, blocksText, roomsText string) []parser.RawEntry {
	daysText = unlessConvenir(daysText)
	blocksText = unlessConvenir(blocksText)
	roomsText = strings.TrimSpace(roomsText)
	if roomsText == "" {
		roomsText = noClassroom
	}
	if daysText == "" || blocksText == "" {
		return nil
	}

	days := daysRE.FindAllString(daysText, -1)
	blocks := blocksRE.FindAllString(blocksText, -1)
	rooms := classroomsRE.FindAllString(roomsText, -1)
	if rooms == nil {
		rooms = strings.Split(roomsText, "\n")
	}
	if len(days) == 0 || len(blocks) == 0 {
		return nil
	}

	if len(blocks) == 1 {
		blocks = repeat(blocks, len(days))
	}
	if len(days) == 1 {
		days = repeat(days, len(blocks))
	}
	if len(rooms) == 1 {
		rooms = repeat(rooms, len(days))
	}
	if len(days) == 1 && len(rooms) > 1 {
		days = repeat(days, len(rooms))
		blocks = repeat(blocks[:1], len(rooms))
	}

	factor := (len(rooms) + len(days) - 1) / len(days)
	n := len(days)
	if factor > 1 {
		n = len(rooms)
	}

	entries := make([]parser.RawEntry, 0, n)
	for i := 0; i < n; i++ {
		j := i
		if factor > 1 {
			j = i / factor
		}
		day := at(days, j)

		entryKind := kind
		if parser.IsTestDay(day) {
			entryKind = model.Test
		}

		entries = append(entries, parser.RawEntry{
			Kind:      entryKind,
			Day:       day,
			Block:     at(blocks, j),
			Classroom: strings.TrimSpace(spacesRE.ReplaceAllString(at(rooms, i), " ")),
		})
	}
	return entries
}

func unlessConvenir(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(strings.ToLower(s), "convenir") {
		return ""
	}
	return s
}

func repeat(values []string, n int) []string {
	for len(values) < n {
		values = append(values, values[0])
	}
	return values
}

// Лишних индексов в кривых документах хватает, берём по кругу
func at(values []string, i int) string {
	return values[i%len(values)]
}
