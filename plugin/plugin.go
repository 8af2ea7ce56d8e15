// Package plugin реестр учреждений, у каждого свой источник документов и
// свой формат таблицы.
package plugin

import (
	"github.com/udecbot/horarios/schedules"
)

// Plugin одно учреждение
type Plugin interface {
	schedules.Provider
}

// Names все известные плагины в порядке приоритета: при совпадении
// "код-секция" побеждает предмет из более раннего
var Names = []string{"engineering", "cfm"}
