package model

import "time"

// ScheduleFile содержимое одного файла кеша
type ScheduleFile struct {
	UpdatedAt int64     `json:"updated_at"` // Время обновления документа-источника (unix ms)
	Subjects  []Subject `json:"subjects"`   // Предметы в порядке разбора
}

// SubjectMap "код-секция" -> предмет
type SubjectMap map[string]Subject

// Index построить SubjectMap, первое вхождение ключа побеждает
func Index(subjects []Subject) SubjectMap {
	m := make(SubjectMap, len(subjects))
	m.Add(subjects...)
	return m
}

// Add добавить предметы, которых ещё нет
func (m SubjectMap) Add(subjects ...Subject) {
	for _, s := range subjects {
		if _, ok := m[s.Key()]; !ok {
			m[s.Key()] = s
		}
	}
}

// Первый блок начинается в 08:00, каждый блок длится час
const (
	firstBlockHour = 8
	BlockLength    = time.Hour
)

// BlockStart смещение начала блока n от полуночи
func BlockStart(n int) time.Duration {
	return time.Duration(firstBlockHour+n-1) * time.Hour
}
