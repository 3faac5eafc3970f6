// Package notify sends hold notices to stores through a transactional email API.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ErrNoRecipientForStore is returned when a notice targets a store tag without a mailbox.
var ErrNoRecipientForStore = errors.New("no notification recipient for store")

// Recipients maps a store tag to the mailbox that receives its notices.
type Recipients map[string]string

// ParseRecipients reads "tagA:a@example.com,tagB:b@example.com".
func ParseRecipients(s string) (Recipients, error) {
	out := Recipients{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		tag, addr, ok := strings.Cut(pair, ":")
		tag, addr = strings.TrimSpace(tag), strings.TrimSpace(addr)
		if !ok || tag == "" {
			return nil, errs.NewValueIsInvalidErrorWithCause("notify recipients", fmt.Errorf("%q is not tag:address", pair))
		}
		if _, err := mail.ParseAddress(addr); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("notify recipient for "+tag, err)
		}
		out[tag] = addr
	}
	return out, nil
}

// Client implements Notifier.
type Client struct {
	baseURL    string
	apiKey     string
	from       string
	recipients Recipients
	http       *http.Client
}

func NewClient(baseURL, apiKey, from string, recipients Recipients, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		from:       from,
		recipients: recipients,
		http:       httpClient,
	}
}

type message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// NotifyHold emails the store that owns the held order.
func (c *Client) NotifyHold(ctx context.Context, notice ports.HoldNotice) error {
	to, ok := c.recipients[notice.StoreTag]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoRecipientForStore, notice.StoreTag)
	}

	body, err := json.Marshal(message{
		From:    c.from,
		To:      to,
		Subject: fmt.Sprintf("Order %s on hold", notice.OrderNumber),
		Text:    holdText(notice),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("email api responded %s: %s", resp.Status, strings.TrimSpace(string(text)))
	}
	return nil
}

func holdText(n ports.HoldNotice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s was put on hold and will not be dispatched.\n\n", n.OrderNumber)
	fmt.Fprintf(&b, "Location: %s\n", n.Location)
	fmt.Fprintf(&b, "Delivery: %s %s\n", n.DeliveryType, n.DeliveryDate)
	fmt.Fprintf(&b, "Reason: %s\n", n.Reason)
	return b.String()
}
