package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSConfig is the SMS provider account. AccountSID or AuthToken empty means
// SMS is off. APIURL is overridable for tests.
type SMSConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	APIURL     string
}

type smsSender struct {
	cfg    SMSConfig
	client *http.Client
}

func newSMSSender(cfg SMSConfig) *smsSender {
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.twilio.com/2010-04-01"
	}
	return &smsSender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *smsSender) Send(ctx context.Context, to, body string) error {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.cfg.APIURL, s.cfg.AccountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.cfg.From)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return fmt.Errorf("sms provider returned %s", res.Status)
	}
	return nil
}
