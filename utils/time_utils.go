package utils

import (
	"strings"
	"time"
)

// Форматы даты в листинге директории (Apache/nginx)
var listingLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"02-Jan-2006 15:04",
}

// ParseListingTime спарсить дату из листинга в указанной зоне
func ParseListingTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range listingLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDate дата в формате гггг-мм-дд (начало семестра)
func ParseDate(s string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadLocation зона по имени, UTC если не найдена
func LoadLocation(name string) *time.Location {
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}
