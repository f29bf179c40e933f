package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"avaliaccess/internal/domain"
)

// Search issues a paginated, filtered search against the directory
func (c *Client) Search(ctx context.Context, params SearchParams) (*domain.EstablishmentPage, error) {
	var page domain.EstablishmentPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/establishments/search", params.Query(), nil, &page); err != nil {
		return nil, err
	}
	if page.Content == nil {
		page.Content = []domain.EstablishmentSummary{}
	}
	return &page, nil
}

// GetEstablishment fetches a single establishment
func (c *Client) GetEstablishment(ctx context.Context, id int64) (*domain.EstablishmentSummary, error) {
	var e domain.EstablishmentSummary
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/establishments/%d", id), nil, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEstablishment registers an establishment. photoPath is an optional local image file.
func (c *Client) CreateEstablishment(ctx context.Context, req domain.EstablishmentRequest, photoPath string) (*domain.EstablishmentSummary, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.City) == "" ||
		strings.TrimSpace(req.State) == "" || strings.TrimSpace(req.Type) == "" {
		return nil, fmt.Errorf("%w: name, city, state and type are required", ErrInvalidParams)
	}

	body, contentType, err := encodeEstablishmentForm(req, photoPath)
	if err != nil {
		return nil, err
	}

	var e domain.EstablishmentSummary
	if err := c.do(ctx, http.MethodPost, "/api/establishments", nil, body, contentType, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// encodeEstablishmentForm builds the multipart body: a JSON "establishment" part and an optional "photo" part
func encodeEstablishmentForm(req domain.EstablishmentRequest, photoPath string) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="establishment"; filename="blob"`)
	header.Set("Content-Type", "application/json")
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create establishment part: %w", err)
	}
	if err := json.NewEncoder(part).Encode(req); err != nil {
		return nil, "", fmt.Errorf("failed to encode establishment: %w", err)
	}

	if photoPath = strings.TrimSpace(photoPath); photoPath != "" {
		f, err := os.Open(photoPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open photo: %w", err)
		}
		defer f.Close()

		photo, err := w.CreateFormFile("photo", filepath.Base(photoPath))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create photo part: %w", err)
		}
		if _, err := io.Copy(photo, f); err != nil {
			return nil, "", fmt.Errorf("failed to read photo: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
