package source

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/udecbot/horarios/utils"
)

// Lookup текст страницы одного предмета по коду
type Lookup interface {
	Lookup(ctx context.Context, code uint32) (string, error)
}

// HTTPLookup страница предмета на alumnos.udec.cl
type HTTPLookup struct {
	URL     string // Код передаётся параметром codasignatura
	Client  *http.Client
	Limiter *rate.Limiter // Общий на все запросы, может быть nil
}

func (l HTTPLookup) Lookup(ctx context.Context, code uint32) (string, error) {
	if l.Limiter != nil {
		if err := l.Limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	u, err := url.Parse(l.URL)
	if err != nil {
		return "", fmt.Errorf("lookup url: %w", err)
	}
	q := u.Query()
	q.Set("codasignatura", strconv.FormatUint(uint64(code), 10))
	u.RawQuery = q.Encode()

	body, err := Download(ctx, l.Client, u.String())
	if err != nil {
		return "", fmt.Errorf("lookup %d: %w", code, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("lookup %d: %w", code, err)
	}
	return doc.Find("body").Text(), nil
}

// Info то, что удалось вытащить со страницы предмета
type Info struct {
	Name        string
	Credits     *int
	Theoretical *int
	Practical   *int
	Laboratory  *int
}

var (
	lookupNameRE        = regexp.MustCompile(`(?m)^\s*(.+?) - \d{6}`)
	lookupCreditsRE     = regexp.MustCompile(`(?i)cr[eé]ditos *(?:</strong>)? *: *(\d+)`)
	lookupTheoreticalRE = regexp.MustCompile(`(?i)horas? te[oó]ricas? *(?:</strong>)? *: *(\d+)`)
	lookupPracticalRE   = regexp.MustCompile(`(?i)horas? pr[aá]cticas? *(?:</strong>)? *: *(\d+)`)
	lookupLaboratoryRE  = regexp.MustCompile(`(?i)horas? (?:de )?laboratorio *(?:</strong>)? *: *(\d+)`)
)

// ParseLookup нестрогий разбор текста страницы. Чего нет, то nil.
func ParseLookup(text string) Info {
	info := Info{
		Credits:     firstInt(lookupCreditsRE, text),
		Theoretical: firstInt(lookupTheoreticalRE, text),
		Practical:   firstInt(lookupPracticalRE, text),
		Laboratory:  firstInt(lookupLaboratoryRE, text),
	}
	if m := lookupNameRE.FindStringSubmatch(text); m != nil {
		info.Name = m[1]
	}
	return info
}

func firstInt(re *regexp.Regexp, text string) *int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return utils.IntPtr(n)
}
