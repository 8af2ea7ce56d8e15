package model

import (
	"strconv"
	"time"
)

// ClassKind тип занятия: теория, практика, лаборатория или тест
type ClassKind int8

const (
	KindNone ClassKind = iota - 1 // Тип не указан (только у Pending)
	Theory
	Practice
	Lab
	Test
)

var kindNames = [...]string{"T", "P", "L", "TEST"}

func (k ClassKind) String() string {
	if k < Theory || int(k) >= len(kindNames) {
		return ""
	}
	return kindNames[k]
}

// ParseKind T/P/L (без учёта регистра)
func ParseKind(s string) (ClassKind, bool) {
	switch s {
	case "T", "t":
		return Theory, true
	case "P", "p":
		return Practice, true
	case "L", "l":
		return Lab, true
	}
	return KindNone, false
}

// Weekday день недели, Monday = 0
type Weekday uint8

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"LU", "MA", "MI", "JU", "VI", "SA", "DO"}

func (d Weekday) String() string {
	if int(d) >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[d]
}

// Time перевод в time.Weekday
func (d Weekday) Time() time.Weekday {
	return time.Weekday((int(d) + 1) % 7)
}

// Career специальность, для которой предмет обязателен в указанном семестре.
// AnyCivilSpecialty означает "любая специальность гражданской инженерии".
type Career struct {
	Name              string `json:"name,omitempty"`
	Semester          int    `json:"semester,omitempty"`
	AnyCivilSpecialty bool   `json:"any_civil_specialty,omitempty"`
}

// ScheduleEntry одна строчка расписания секции.
//
// Если Pending, то день, блоки и аудитория не указаны (время согласуется с
// преподавателем), а Kind может быть KindNone. Group == 0 значит без подгруппы.
type ScheduleEntry struct {
	Pending   bool      `json:"pending,omitempty"`
	Kind      ClassKind `json:"type"`
	Group     int       `json:"group,omitempty"`
	Day       Weekday   `json:"day"`
	Blocks    []int     `json:"blocks,omitempty"`
	Classroom string    `json:"classroom,omitempty"`
}

// PendingEntry занятие без времени
func PendingEntry(kind ClassKind, group int) ScheduleEntry {
	return ScheduleEntry{Pending: true, Kind: kind, Group: group}
}

// Professor преподаватель и тип занятия, которое он ведёт
type Professor struct {
	Kind ClassKind `json:"type"`
	Name string    `json:"name"`
}

// Subject предмет в конкретной секции
type Subject struct {
	Code             uint32          `json:"code"`
	Name             string          `json:"name"`
	Credits          *int            `json:"credits,omitempty"`
	Section          int             `json:"section"`
	TheoreticalHours *int            `json:"theoretical_hours,omitempty"`
	PracticalHours   *int            `json:"practical_hours,omitempty"`
	LaboratoryHours  *int            `json:"laboratory_hours,omitempty"`
	Careers          []Career        `json:"careers,omitempty"`
	Schedule         []ScheduleEntry `json:"schedule"`
	Professors       []Professor     `json:"professors,omitempty"`
}

// Key "код-секция"
func (s Subject) Key() string {
	return SubjectKey(s.Code, s.Section)
}

func SubjectKey(code uint32, section int) string {
	return strconv.FormatUint(uint64(code), 10) + "-" + strconv.Itoa(section)
}
