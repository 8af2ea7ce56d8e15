package source

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/gocolly/colly"

	"github.com/udecbot/horarios/utils"
)

// Типы документов CFM
var CFMTypes = []string{"AST", "DIM", "EST", "FIS", "GEO", "MAT"}

var cfmFileRE = regexp.MustCompile(`^(?:HORA)?(AST|DIM|EST|FIS|GEO|MAT).+\.pdf$`)

var listingRowSelector = "table tr"

// CFMListing листинг директории с PDF расписаниями CFM
type CFMListing struct {
	URL      string
	Location *time.Location
	Timeout  time.Duration
	Now      func() time.Time // Для тестов
}

// Latest последний документ текущего года по каждому типу
func (l CFMListing) Latest(ctx context.Context) (map[string]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loc := l.Location
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	year := now().In(loc).Year()

	c := colly.NewCollector()
	if l.Timeout > 0 {
		c.SetRequestTimeout(l.Timeout)
	}

	docs := map[string]Document{}
	c.OnHTML(listingRowSelector, func(e *colly.HTMLElement) {
		href := e.ChildAttr("td:nth-child(2) > a", "href")
		if href == "" {
			return
		}
		name, err := url.PathUnescape(href)
		if err != nil {
			name = href
		}
		m := cfmFileRE.FindStringSubmatch(name)
		if m == nil {
			return
		}

		updated, ok := utils.ParseListingTime(e.ChildText("td:nth-child(3)"), loc)
		if !ok || updated.Year() != year {
			return
		}

		kind := m[1]
		if last, ok := docs[kind]; ok && last.UpdatedAt >= updated.UnixMilli() {
			return
		}
		docs[kind] = Document{
			Name:      name,
			UpdatedAt: updated.UnixMilli(),
			URL:       e.Request.AbsoluteURL(href),
		}
	})

	var visitErr error
	c.OnError(func(r *colly.Response, err error) {
		visitErr = fmt.Errorf("cfm listing: %d: %w", r.StatusCode, err)
	})

	if err := c.Visit(l.URL); err != nil {
		return nil, fmt.Errorf("cfm listing: %w", err)
	}
	if visitErr != nil {
		return nil, visitErr
	}
	return docs, nil
}
