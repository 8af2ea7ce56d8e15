// Package parser общие грамматики для разбора ячеек расписания и
// распределение занятий по секциям.
package parser

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/udecbot/horarios/model"
	"github.com/udecbot/horarios/utils"
)

// RowParser разбирает одну строку таблицы конкретного формата.
// Возвращает nil, если строка не описывает предмет.
type RowParser interface {
	ParseRow(ctx context.Context, row []string) []model.Subject
}

// CodeRE шестизначный код предмета
var CodeRE = regexp.MustCompile(`\d{6}`)

// ParseCodes все коды из ячейки (через \n или пробел)
func ParseCodes(text string) []uint32 {
	var codes []uint32
	for _, s := range CodeRE.FindAllString(text, -1) {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			continue
		}
		codes = append(codes, uint32(n))
	}
	return codes
}

var dayAbbr = map[string]model.Weekday{
	"lu": model.Monday,
	"ma": model.Tuesday,
	"mi": model.Wednesday,
	"ju": model.Thursday,
	"vi": model.Friday,
	"sa": model.Saturday,
	"do": model.Sunday,
}

var testPrefixRE = regexp.MustCompile(`(?i)^test\s*`)

// ParseDay день по двухбуквенному сокращению, префикс "test" игнорируется
func ParseDay(s string) (model.Weekday, bool) {
	s = testPrefixRE.ReplaceAllString(strings.TrimSpace(s), "")
	if len(s) < 2 {
		return 0, false
	}
	d, ok := dayAbbr[strings.ToLower(s[:2])]
	return d, ok
}

// IsTestDay день вида "test lu"
func IsTestDay(s string) bool {
	return testPrefixRE.MatchString(strings.TrimSpace(s))
}

// ParseCount числа через \n, нечисловые строки пропускаются
func ParseCount(text string) []int {
	var ret []int
	for _, line := range strings.Split(text, "\n") {
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			continue
		}
		ret = append(ret, n)
	}
	return ret
}

// Broadcast растянуть значения до n: i-тый код берёт i-тое значение,
// если его нет, то первое
func Broadcast(values []string, n int) []string {
	ret := make([]string, n)
	for i := range ret {
		switch {
		case i < len(values):
			ret[i] = values[i]
		case len(values) > 0:
			ret[i] = values[0]
		}
	}
	return ret
}

// IntAt i-тое значение или первое, nil если значений нет
func IntAt(values []int, i int) *int {
	if len(values) == 0 {
		return nil
	}
	if i >= len(values) {
		i = 0
	}
	return utils.IntPtr(values[i])
}

var blockRE = regexp.MustCompile(`(?i)(\d+)(?:\s*a\s*(\d+))?`)

// Больше 13 блоков в дне не бывает, "34" это склеенные "3" и "4"
const maxBlock = 13

// ExpandBlocks "3 a 6" -> [3 4 5 6], "2,4" и "2 y 4" -> [2 4], "2-3" -> [2 3].
// Пустая или нечисловая строка даёт nil. Диапазон с концом больше maxBlock
// отбрасывается целиком.
func ExpandBlocks(s string) []int {
	var blocks []int
	for _, m := range blockRE.FindAllStringSubmatch(s, -1) {
		if m[2] != "" {
			from, _ := strconv.Atoi(m[1])
			to, _ := strconv.Atoi(m[2])
			if from > to {
				from, to = to, from
			}
			if to > maxBlock {
				continue
			}
			for n := from; n <= to; n++ {
				if n > 0 {
					blocks = append(blocks, n)
				}
			}
			continue
		}

		n, _ := strconv.Atoi(m[1])
		if n > maxBlock && len(m[1]) > 1 {
			for _, r := range m[1] {
				if d := int(r - '0'); d > 0 {
					blocks = append(blocks, d)
				}
			}
			continue
		}
		if n > 0 {
			blocks = append(blocks, n)
		}
	}
	return blocks
}
