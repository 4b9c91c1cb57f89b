package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ClinicaVitaBR/crm-followup/internal/validators"
)

// WhatsAppSender posts to a WhatsApp Business style API.
type WhatsAppSender struct {
	apiURL string
	token  string
	client *http.Client
}

func NewWhatsAppSender(apiURL, token string) *WhatsAppSender {
	return &WhatsAppSender{
		apiURL: apiURL,
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type whatsAppPayload struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

func (s *WhatsAppSender) Send(ctx context.Context, msg Message) error {
	if s.apiURL == "" || s.token == "" {
		return fmt.Errorf("whatsapp API not configured")
	}
	if msg.Phone == "" {
		return fmt.Errorf("phone not provided")
	}

	payload := whatsAppPayload{
		MessagingProduct: "whatsapp",
		To:               internationalPhone(msg.Phone),
		Type:             "text",
	}
	payload.Text.Body = msg.Body

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.apiURL+"/messages",
		bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("whatsapp API returned status %d", resp.StatusCode)
	}

	return nil
}

// internationalPhone prefixes the Brazilian country code when missing.
// Ex.: 11987654321 -> 5511987654321
func internationalPhone(phone string) string {
	clean := validators.SanitizePhone(phone)
	if !strings.HasPrefix(clean, "55") && len(clean) >= 10 {
		clean = "55" + clean
	}
	return clean
}

// MockSender logs instead of delivering. Used until the real API is wired
// up (WHATSAPP_MOCK_MODE=true).
type MockSender struct{}

func (MockSender) Send(_ context.Context, msg Message) error {
	if msg.Phone == "" {
		return fmt.Errorf("phone not provided")
	}
	log.Printf("[MOCK] whatsapp message to %s (%s)", msg.ClientName, internationalPhone(msg.Phone))
	return nil
}
