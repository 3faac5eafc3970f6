// Package carrier books pickups with the delivery carriers over HTTP and downloads
// their shipping labels. One Client serves one delivery lane.
package carrier

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Mode selects the carrier environment a client talks to.
type Mode string

const (
	Sandbox Mode = "sandbox"
	Live    Mode = "live"
)

// ParseMode accepts "sandbox" and "live" in any case. An empty string selects Sandbox.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Sandbox):
		return Sandbox, nil
	case string(Live):
		return Live, nil
	default:
		return "", errs.NewValueIsInvalidError("carrier mode " + s)
	}
}

// Endpoint is the base URL and API key of one carrier environment.
type Endpoint struct {
	BaseURL string
	APIKey  string
}

// Credentials hold both environments; the client picks one at construction.
type Credentials struct {
	Sandbox Endpoint
	Live    Endpoint
}

func (c Credentials) forMode(mode Mode) Endpoint {
	if mode == Live {
		return c.Live
	}
	return c.Sandbox
}
