package cache

import (
	"errors"
	"fmt"
	"math"

	"github.com/udecbot/horarios/model"
)

// Version текущая версия формата. При несовпадении кеш считается пустым.
const Version = 2

const flagHours = 1 << 0

// ErrVersion файл записан другой версией формата
var ErrVersion = errors.New("cache: unsupported format version")

// Codec бинарный формат файла кеша:
//
//	u8  version
//	u8  flags (bit0: у предметов есть часы T/P/L)
//	u64 updatedAt
//	u16 subjectCount
//	subject*
//
// Все числа little-endian. -1 в знаковых полях значит "не указано".
type Codec struct {
	Hours bool // Писать часы (только у инженерного факультета)
}

// Encode сериализовать файл кеша
func (c Codec) Encode(file model.ScheduleFile) ([]byte, error) {
	if file.UpdatedAt < 0 {
		return nil, fmt.Errorf("%w: updatedAt %d", ErrRange, file.UpdatedAt)
	}
	if len(file.Subjects) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d subjects", ErrRange, len(file.Subjects))
	}

	var flags uint8
	if c.Hours {
		flags |= flagHours
	}

	w := &Writer{}
	w.Uint8(Version)
	w.Uint8(flags)
	w.Uint64(uint64(file.UpdatedAt))
	w.Uint16(uint16(len(file.Subjects)))

	for _, s := range file.Subjects {
		if err := c.encodeSubject(w, s); err != nil {
			return nil, fmt.Errorf("subject %s: %w", s.Key(), err)
		}
	}
	return w.Bytes(), nil
}

// Check помещается ли предмет в формат
func (c Codec) Check(s model.Subject) error {
	return c.encodeSubject(&Writer{}, s)
}

func (c Codec) encodeSubject(w *Writer, s model.Subject) error {
	w.Uint32(s.Code)
	if err := w.CString(s.Name); err != nil {
		return err
	}
	if err := writeOptional(w, s.Credits, "credits"); err != nil {
		return err
	}
	if s.Section < 0 || s.Section > math.MaxUint8 {
		return fmt.Errorf("%w: section %d", ErrRange, s.Section)
	}
	w.Uint8(uint8(s.Section))

	if c.Hours {
		for _, h := range []*int{s.TheoreticalHours, s.PracticalHours, s.LaboratoryHours} {
			if err := writeOptional(w, h, "hours"); err != nil {
				return err
			}
		}
	}

	if err := w.Count(len(s.Careers), "careers"); err != nil {
		return err
	}
	for _, career := range s.Careers {
		if career.AnyCivilSpecialty {
			w.Uint8(1)
			continue
		}
		w.Uint8(0)
		if err := w.CString(career.Name); err != nil {
			return err
		}
		if career.Semester < 0 || career.Semester > math.MaxUint8 {
			return fmt.Errorf("%w: semester %d", ErrRange, career.Semester)
		}
		w.Uint8(uint8(career.Semester))
	}

	if err := w.Count(len(s.Schedule), "schedule entries"); err != nil {
		return err
	}
	for _, entry := range s.Schedule {
		if err := encodeEntry(w, entry); err != nil {
			return err
		}
	}

	if err := w.Count(len(s.Professors), "professors"); err != nil {
		return err
	}
	for _, p := range s.Professors {
		if p.Kind < model.Theory {
			return fmt.Errorf("%w: professor type %d", ErrRange, p.Kind)
		}
		w.Uint8(uint8(p.Kind))
		if err := w.CString(p.Name); err != nil {
			return err
		}
	}
	return nil
}

func encodeEntry(w *Writer, e model.ScheduleEntry) error {
	if e.Group < 0 || e.Group > math.MaxInt8 {
		return fmt.Errorf("%w: group %d", ErrRange, e.Group)
	}
	group := int8(e.Group)
	if e.Group == 0 {
		group = -1
	}

	if e.Pending {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
	w.Int8(int8(e.Kind))
	w.Int8(group)
	if e.Pending {
		return nil
	}

	if e.Day > model.Sunday {
		return fmt.Errorf("%w: day %d", ErrRange, e.Day)
	}
	w.Uint8(uint8(e.Day))
	if err := w.Count(len(e.Blocks), "blocks"); err != nil {
		return err
	}
	for _, b := range e.Blocks {
		if b < 0 || b > math.MaxUint8 {
			return fmt.Errorf("%w: block %d", ErrRange, b)
		}
		w.Uint8(uint8(b))
	}
	return w.CString(e.Classroom)
}

// -1 если nil
func writeOptional(w *Writer, v *int, what string) error {
	if v == nil {
		w.Int8(-1)
		return nil
	}
	if *v < 0 || *v > math.MaxInt8 {
		return fmt.Errorf("%w: %s %d", ErrRange, what, *v)
	}
	w.Int8(int8(*v))
	return nil
}

// Decode десериализовать файл кеша
func Decode(data []byte) (model.ScheduleFile, error) {
	var file model.ScheduleFile
	r := NewReader(data)

	version, err := r.Uint8()
	if err != nil {
		return file, err
	}
	if version != Version {
		return file, fmt.Errorf("%w: %d", ErrVersion, version)
	}
	flags, err := r.Uint8()
	if err != nil {
		return file, err
	}
	updatedAt, err := r.Uint64()
	if err != nil {
		return file, err
	}
	if updatedAt > math.MaxInt64 {
		return file, fmt.Errorf("%w: updatedAt %d", ErrRange, updatedAt)
	}
	count, err := r.Uint16()
	if err != nil {
		return file, err
	}

	subjects := make([]model.Subject, 0, count)
	for i := 0; i < int(count); i++ {
		s, err := decodeSubject(r, flags&flagHours != 0)
		if err != nil {
			return file, fmt.Errorf("subject #%d: %w", i, err)
		}
		subjects = append(subjects, s)
	}
	if r.Remaining() != 0 {
		return file, fmt.Errorf("cache: %d trailing bytes", r.Remaining())
	}

	file.UpdatedAt = int64(updatedAt)
	file.Subjects = subjects
	return file, nil
}

func decodeSubject(r *Reader, hours bool) (s model.Subject, err error) {
	if s.Code, err = r.Uint32(); err != nil {
		return
	}
	if s.Name, err = r.CString(); err != nil {
		return
	}
	if s.Credits, err = readOptional(r); err != nil {
		return
	}
	section, err := r.Uint8()
	if err != nil {
		return
	}
	s.Section = int(section)

	if hours {
		if s.TheoreticalHours, err = readOptional(r); err != nil {
			return
		}
		if s.PracticalHours, err = readOptional(r); err != nil {
			return
		}
		if s.LaboratoryHours, err = readOptional(r); err != nil {
			return
		}
	}

	n, err := r.Uint8()
	if err != nil {
		return
	}
	for i := 0; i < int(n); i++ {
		var career model.Career
		anyCivil, err := r.Uint8()
		if err != nil {
			return s, err
		}
		if anyCivil == 1 {
			career.AnyCivilSpecialty = true
		} else {
			if career.Name, err = r.CString(); err != nil {
				return s, err
			}
			semester, err := r.Uint8()
			if err != nil {
				return s, err
			}
			career.Semester = int(semester)
		}
		s.Careers = append(s.Careers, career)
	}

	if n, err = r.Uint8(); err != nil {
		return
	}
	for i := 0; i < int(n); i++ {
		entry, err := decodeEntry(r)
		if err != nil {
			return s, err
		}
		s.Schedule = append(s.Schedule, entry)
	}

	if n, err = r.Uint8(); err != nil {
		return
	}
	for i := 0; i < int(n); i++ {
		kind, err := r.Uint8()
		if err != nil {
			return s, err
		}
		name, err := r.CString()
		if err != nil {
			return s, err
		}
		s.Professors = append(s.Professors, model.Professor{Kind: model.ClassKind(kind), Name: name})
	}
	return s, nil
}

func decodeEntry(r *Reader) (e model.ScheduleEntry, err error) {
	pending, err := r.Uint8()
	if err != nil {
		return
	}
	kind, err := r.Int8()
	if err != nil {
		return
	}
	group, err := r.Int8()
	if err != nil {
		return
	}

	e.Pending = pending == 1
	e.Kind = model.ClassKind(kind)
	if group > 0 {
		e.Group = int(group)
	}
	if e.Pending {
		return e, nil
	}

	day, err := r.Uint8()
	if err != nil {
		return
	}
	e.Day = model.Weekday(day)

	n, err := r.Uint8()
	if err != nil {
		return
	}
	for i := 0; i < int(n); i++ {
		b, err := r.Uint8()
		if err != nil {
			return e, err
		}
		e.Blocks = append(e.Blocks, int(b))
	}
	e.Classroom, err = r.CString()
	return e, err
}

func readOptional(r *Reader) (*int, error) {
	v, err := r.Int8()
	if err != nil || v < 0 {
		return nil, err
	}
	n := int(v)
	return &n, nil
}
