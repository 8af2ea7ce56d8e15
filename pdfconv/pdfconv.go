// Package pdfconv перевод PDF в xlsx через внешний веб-конвертер.
package pdfconv

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/udecbot/horarios/source"
)

// Converter PDF по ссылке -> байты xlsx
type Converter interface {
	Convert(ctx context.Context, pdfURL string) ([]byte, error)
}

const (
	fileInputSelector = "input[type=file]"
	downloadSelector  = "a[download]"
)

// Browser загружает PDF в веб-конвертер через headless Chrome
type Browser struct {
	URL     string       // Страница конвертера
	Client  *http.Client // Скачивание PDF и результата
	Timeout time.Duration
	TempDir string // "" значит os.TempDir()
	Log     zerolog.Logger
}

func (b Browser) Convert(ctx context.Context, pdfURL string) ([]byte, error) {
	id := uuid.NewString()
	log := b.Log.With().Str("conversion", id).Logger()

	pdf, err := source.Download(ctx, b.Client, pdfURL)
	if err != nil {
		return nil, fmt.Errorf("download pdf: %w", err)
	}

	f, err := os.CreateTemp(b.TempDir, "schedule-*.pdf")
	if err != nil {
		return nil, err
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(pdf); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	log.Info().Str("url", pdfURL).Msg("uploading")
	href, err := b.upload(ctx, f.Name())
	if err != nil {
		return nil, err
	}

	log.Info().Str("url", href).Msg("downloading")
	data, err := source.Download(ctx, b.Client, href)
	if err != nil {
		return nil, fmt.Errorf("download xlsx: %w", err)
	}
	log.Info().Int("bytes", len(data)).Msg("converted")
	return data, nil
}

// upload вернуть ссылку на готовый xlsx
func (b Browser) upload(ctx context.Context, path string) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if b.Timeout > 0 {
		browserCtx, cancel = context.WithTimeout(browserCtx, b.Timeout)
		defer cancel()
	}

	var href string
	var ok bool
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(b.URL),
		chromedp.SetUploadFiles(fileInputSelector, []string{path}, chromedp.ByQuery),
		chromedp.WaitReady(downloadSelector, chromedp.ByQuery),
		chromedp.AttributeValue(downloadSelector, "href", &href, &ok, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("converter page: %w", err)
	}
	if !ok || href == "" {
		return "", fmt.Errorf("converter page: no download link")
	}
	return href, nil
}
