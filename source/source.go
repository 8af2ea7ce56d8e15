// Package source клиенты сайтов, где публикуются документы с расписанием,
// и справочника предметов.
package source

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNoDocument на сайте нет подходящего документа
var ErrNoDocument = errors.New("no schedule document")

// Document последняя версия документа
type Document struct {
	Name      string // Имя файла на сайте
	UpdatedAt int64  // unix ms
	URL       string // Откуда скачивать PDF
}

// NewHTTPClient клиент с таймаутом. insecure отключает проверку сертификата
// (у ofivirtualfi он битый).
func NewHTTPClient(timeout time.Duration, insecure bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// Download скачать тело ответа целиком
func Download(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
