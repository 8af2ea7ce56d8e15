// Package converter выгрузка собранных предметов в файл или базу.
package converter

import (
	"errors"
	"sort"

	"github.com/udecbot/horarios/model"
)

type IConverter interface {
	Write(subjects model.SubjectMap, out string) error
}

// DummyConverter для неизвестного имени конвертера
type DummyConverter struct {
	Name string
}

func (d DummyConverter) Write(_ model.SubjectMap, _ string) error {
	return errors.New("unknown converter " + d.Name)
}

// sorted предметы по коду, затем по секции
func sorted(subjects model.SubjectMap) []model.Subject {
	ret := make([]model.Subject, 0, len(subjects))
	for _, s := range subjects {
		ret = append(ret, s)
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Code != ret[j].Code {
			return ret[i].Code < ret[j].Code
		}
		return ret[i].Section < ret[j].Section
	})
	return ret
}
