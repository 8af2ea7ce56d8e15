package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// EngineeringAPI файловый API факультета инженерии
type EngineeringAPI struct {
	DocumentsURL string // Запрос последнего PDF с расписанием
	DownloadURL  string // К нему дописывается fileName
	Client       *http.Client
}

type documentsResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Data    struct {
		Data []documentFile `json:"data"`
	} `json:"data"`
}

type documentFile struct {
	FileName  string  `json:"fileName"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt *string `json:"updatedAt"`
}

// Latest метаданные последнего документа
func (a EngineeringAPI) Latest(ctx context.Context) (Document, error) {
	body, err := Download(ctx, a.Client, a.DocumentsURL)
	if err != nil {
		return Document{}, fmt.Errorf("engineering documents: %w", err)
	}

	var resp documentsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Document{}, fmt.Errorf("engineering documents: %w", err)
	}
	if !resp.Success {
		return Document{}, fmt.Errorf("engineering documents: api error %q", resp.Error)
	}
	if len(resp.Data.Data) == 0 {
		return Document{}, ErrNoDocument
	}

	file := resp.Data.Data[0]
	stamp := file.CreatedAt
	if file.UpdatedAt != nil && *file.UpdatedAt != "" {
		stamp = *file.UpdatedAt
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return Document{}, fmt.Errorf("engineering document %s: bad timestamp: %w", file.FileName, err)
	}

	return Document{
		Name:      file.FileName,
		UpdatedAt: updatedAt.UnixMilli(),
		URL:       a.DownloadURL + file.FileName,
	}, nil
}
