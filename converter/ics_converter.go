package converter

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/udecbot/horarios/model"
)

// ICSConverter еженедельные события на весь семестр
type ICSConverter struct {
	TermStart time.Time // Первый день семестра
	Weeks     int
	Location  *time.Location
}

func (c ICSConverter) Write(subjects model.SubjectMap, out string) error {
	if out == "" {
		return fmt.Errorf("--output can not be empty")
	}

	cal, err := c.Calendar(subjects)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := cal.SerializeTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Calendar одно событие на каждый непрерывный отрезок блоков. Занятия без
// времени пропускаются.
func (c ICSConverter) Calendar(subjects model.SubjectMap) (*ics.Calendar, error) {
	if c.TermStart.IsZero() {
		return nil, errors.New("TERM_START is not set")
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	weeks := c.Weeks
	if weeks < 1 {
		weeks = 1
	}

	start := time.Date(c.TermStart.Year(), c.TermStart.Month(), c.TermStart.Day(), 0, 0, 0, 0, loc)
	now := time.Now()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRTimezone(loc.String())
	tzid := ics.WithTZID(loc.String())

	for _, s := range sorted(subjects) {
		for _, e := range s.Schedule {
			if e.Pending {
				continue
			}
			day := firstWeekday(start, e.Day.Time())

			for _, run := range blockRuns(e.Blocks) {
				first, last := run[0], run[len(run)-1]

				event := cal.AddEvent(eventUID(s, e, first))
				event.SetDtStampTime(now)
				// Местное время с TZID: повтор идёт по местным часам и переживает
				// переход на зимнее время
				event.SetProperty(ics.ComponentPropertyDtStart,
					wallClock(day, model.BlockStart(first)).Format(localLayout), tzid)
				event.SetProperty(ics.ComponentPropertyDtEnd,
					wallClock(day, model.BlockStart(last)+model.BlockLength).Format(localLayout), tzid)
				event.SetSummary(summary(s, e))
				event.SetLocation(e.Classroom)
				event.SetDescription(description(s, e))
				event.SetProperty(ics.ComponentPropertyRrule, "FREQ=WEEKLY;COUNT="+strconv.Itoa(weeks))
			}
		}
	}
	return cal, nil
}

const localLayout = "20060102T150405"

// wallClock day в offset по местным часам. day.Add(offset) в день перевода
// часов дал бы сдвиг на час.
func wallClock(day time.Time, offset time.Duration) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, int(offset/time.Hour), int(offset%time.Hour/time.Minute), 0, 0, day.Location())
}

// Первый день с нужным днём недели, не раньше from
func firstWeekday(from time.Time, wd time.Weekday) time.Time {
	diff := (int(wd) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, diff)
}

// blockRuns разбить блоки на непрерывные отрезки: 1,2,4 -> [1 2] [4]
func blockRuns(blocks []int) [][]int {
	if len(blocks) == 0 {
		return nil
	}
	b := append([]int(nil), blocks...)
	sort.Ints(b)

	var runs [][]int
	run := []int{b[0]}
	for _, n := range b[1:] {
		switch {
		case n == run[len(run)-1]:
			continue
		case n == run[len(run)-1]+1:
			run = append(run, n)
		default:
			runs = append(runs, run)
			run = []int{n}
		}
	}
	return append(runs, run)
}

// UID не меняется между выгрузками, календарь обновляет события, а не дублирует
func eventUID(s model.Subject, e model.ScheduleEntry, firstBlock int) string {
	name := fmt.Sprintf("%s/%s/%d/%s/%d", s.Key(), e.Kind, e.Group, e.Day, firstBlock)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

func summary(s model.Subject, e model.ScheduleEntry) string {
	kind := e.Kind.String()
	if e.Group != 0 {
		kind += " G" + strconv.Itoa(e.Group)
	}
	if kind == "" {
		return s.Name
	}
	return s.Name + " [" + kind + "]"
}

func description(s model.Subject, e model.ScheduleEntry) string {
	lines := []string{fmt.Sprintf("Código %d, sección %d", s.Code, s.Section)}
	for _, p := range s.Professors {
		if p.Kind == e.Kind {
			lines = append(lines, p.Name)
		}
	}
	return strings.Join(lines, "\n")
}
