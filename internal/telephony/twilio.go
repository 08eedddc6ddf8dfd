package telephony

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Hassnain829/Ai-Sales-Representative/internal/config"
)

// Dialer places outbound calls. The wire protocol is a collaborator detail;
// the pipeline never depends on it.
type Dialer interface {
	PlaceCall(ctx context.Context, to, message string) (string, error)
}

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioDialer is a thin REST client for outbound voice calls.
type TwilioDialer struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	http       *http.Client
}

var _ Dialer = (*TwilioDialer)(nil)

// NewTwilioDialer builds the dialer from telephony credentials.
func NewTwilioDialer(cfg config.TelephonyConfig) *TwilioDialer {
	return &TwilioDialer{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.FromNumber,
		baseURL:    twilioAPIBase,
		http:       &http.Client{Timeout: 15 * time.Second},
	}
}

// PlaceCall dials the number and speaks the message, returning the call SID.
func (d *TwilioDialer) PlaceCall(ctx context.Context, to, message string) (string, error) {
	var say strings.Builder
	if err := xml.EscapeText(&say, []byte(message)); err != nil {
		return "", fmt.Errorf("escape message: %w", err)
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", d.from)
	form.Set("Twiml", fmt.Sprintf("<Response><Say>%s</Say></Response>", say.String()))

	endpoint := fmt.Sprintf("%s/Accounts/%s/Calls.json", d.baseURL, d.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.SetBasicAuth(d.accountSID, d.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("place call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("place call: unexpected status %s", resp.Status)
	}

	var payload struct {
		Sid string `json:"sid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode call response: %w", err)
	}
	return payload.Sid, nil
}
