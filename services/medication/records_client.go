package medication

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"careflow/models"
)

// HTTPRecordsClient calls the pharmacy records API for a patient's active
// medication list.
type HTTPRecordsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPRecordsClient returns a RecordsClient for the given API base URL.
func NewHTTPRecordsClient(baseURL, apiKey string) *HTTPRecordsClient {
	return &HTTPRecordsClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ActiveMedications fetches the live medication list for a patient.
func (c *HTTPRecordsClient) ActiveMedications(ctx context.Context, patientID string) ([]models.Medication, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("pharmacy records API not configured")
	}

	endpoint := fmt.Sprintf("%s/patients/%s/medications", c.baseURL, url.PathEscape(patientID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build medication request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("medication lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("medication lookup returned status %d", resp.StatusCode)
	}

	var payload struct {
		Medications []models.Medication `json:"medications"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode medication response: %w", err)
	}
	return payload.Medications, nil
}
