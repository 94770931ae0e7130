package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go-hospital-scheduling/config"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/service"

	"github.com/sirupsen/logrus"
)

// GatewayProvider talks to the calendar provider gateway, an internal service
// that owns OAuth credentials and normalizes Google/Outlook/iCal payloads into
// one wire format. The engine never sees provider-specific APIs.
type GatewayProvider struct {
	baseURL string
	token   string
	client  *http.Client
	log     *logrus.Logger
}

func NewGatewayProvider(cfg config.SchedulingConfig, log *logrus.Logger) *GatewayProvider {
	return &GatewayProvider{
		baseURL: cfg.CalendarGatewayURL,
		token:   cfg.CalendarGatewayToken,
		client:  &http.Client{},
		log:     log,
	}
}

type busyBlockPayload struct {
	ExternalID string    `json:"external_id"`
	Summary    string    `json:"summary"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	AllDay     bool      `json:"all_day"`
}

type fetchBusyResponse struct {
	Events    []busyBlockPayload `json:"events"`
	SyncToken string             `json:"sync_token"`
}

// FetchBusyBlocks pulls external events for the integration's calendar. The
// context deadline set by the caller bounds the whole round trip.
func (p *GatewayProvider) FetchBusyBlocks(ctx context.Context, integration *entity.CalendarIntegration, from, to time.Time) ([]service.BusyBlock, string, error) {
	endpoint := fmt.Sprintf("%s/v1/calendars/%s/busy", p.baseURL, url.PathEscape(integration.CalendarID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", err
	}
	q := req.URL.Query()
	q.Set("provider", integration.Provider)
	q.Set("provider_id", integration.ProviderID)
	q.Set("from", from.Format(time.RFC3339))
	q.Set("to", to.Format(time.RFC3339))
	if integration.SyncToken != "" {
		q.Set("sync_token", integration.SyncToken)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("calendar gateway returned status %d", resp.StatusCode)
	}

	var payload fetchBusyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, "", fmt.Errorf("failed to decode calendar gateway response: %w", err)
	}

	blocks := make([]service.BusyBlock, len(payload.Events))
	for i, event := range payload.Events {
		blocks[i] = service.BusyBlock{
			ExternalID: event.ExternalID,
			Summary:    event.Summary,
			Start:      event.Start,
			End:        event.End,
			AllDay:     event.AllDay,
		}
	}
	return blocks, payload.SyncToken, nil
}

type pushAppointmentPayload struct {
	AppointmentID string `json:"appointment_id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

type pushResponse struct {
	Accepted int `json:"accepted"`
}

// PushAppointments exports blocking appointments to the external calendar.
func (p *GatewayProvider) PushAppointments(ctx context.Context, integration *entity.CalendarIntegration, appointments []entity.Appointment) (int, error) {
	payload := make([]pushAppointmentPayload, 0, len(appointments))
	for i := range appointments {
		appt := &appointments[i]
		if !appt.BlocksSlots() {
			continue
		}
		payload = append(payload, pushAppointmentPayload{
			AppointmentID: appt.ID.String(),
			Date:          appt.AppointmentDate.Format("2006-01-02"),
			StartTime:     appt.StartTime.String(),
			EndTime:       appt.EndTime().String(),
		})
	}
	if len(payload) == 0 {
		return 0, nil
	}

	body, err := json.Marshal(map[string]interface{}{
		"provider":    integration.Provider,
		"provider_id": integration.ProviderID,
		"events":      payload,
	})
	if err != nil {
		return 0, err
	}

	endpoint := fmt.Sprintf("%s/v1/calendars/%s/events", p.baseURL, url.PathEscape(integration.CalendarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("calendar gateway returned status %d", resp.StatusCode)
	}

	var result pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode calendar gateway response: %w", err)
	}
	return result.Accepted, nil
}
