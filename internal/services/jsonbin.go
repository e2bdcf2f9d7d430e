package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"alfredoptarigan/job-assistant/internal/models"
)

type jsonBinStore struct {
	apiKey     string
	binID      string
	baseURL    string
	httpClient *http.Client
}

// NewJSONBinStore keeps the visit total in a JSONBin document shaped like
// {"visits": N}.
func NewJSONBinStore(apiKey, binID, baseURL string) CounterStore {
	return &jsonBinStore{
		apiKey:     apiKey,
		binID:      binID,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// ReadVisits implements CounterStore.
func (j *jsonBinStore) ReadVisits(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.binURL()+"/latest", nil)
	if err != nil {
		return 0, fmt.Errorf("build read request: %w", err)
	}
	req.Header.Set("X-Master-Key", j.apiKey)
	req.Header.Set("X-Bin-Meta", "false")

	body, err := j.do(req)
	if err != nil {
		return 0, fmt.Errorf("read visitor count: %w", err)
	}

	var doc models.VisitorCount
	if err := json.Unmarshal(body, &doc); err != nil {
		return 0, fmt.Errorf("decode visitor count: %w", err)
	}

	return doc.Visits, nil
}

// WriteVisits implements CounterStore.
func (j *jsonBinStore) WriteVisits(ctx context.Context, visits int) error {
	payload, err := json.Marshal(models.VisitorCount{Visits: visits})
	if err != nil {
		return fmt.Errorf("marshal visitor count: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, j.binURL(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build write request: %w", err)
	}
	req.Header.Set("X-Master-Key", j.apiKey)
	req.Header.Set("Content-Type", "application/json")

	if _, err := j.do(req); err != nil {
		return fmt.Errorf("write visitor count: %w", err)
	}

	return nil
}

func (j *jsonBinStore) binURL() string {
	return fmt.Sprintf("%s/b/%s", j.baseURL, j.binID)
}

func (j *jsonBinStore) do(req *http.Request) ([]byte, error) {
	resp, err := j.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("jsonbin http status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
