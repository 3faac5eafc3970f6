package ports

import (
	"context"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ArtifactKind tags every generated item with the production stage it belongs to.
type ArtifactKind int

const (
	UnknownArtifact ArtifactKind = iota
	Personalization
	PackingSlip
	MessageCard
)

func getArtifactKindStrings() map[ArtifactKind]string {
	return map[ArtifactKind]string{
		UnknownArtifact: "unknown",
		Personalization: "personalization",
		PackingSlip:     "packing-slip",
		MessageCard:     "message-card",
	}
}

// ParseArtifactKind maps the wire name of a kind back to its value.
func ParseArtifactKind(s string) (ArtifactKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for kind, name := range getArtifactKindStrings() {
		if kind != UnknownArtifact && name == s {
			return kind, nil
		}
	}
	return UnknownArtifact, errs.NewValueIsInvalidErrorWithCause("artifact kind", fmt.Errorf("%q is not a known kind", s))
}

func (k ArtifactKind) String() string {
	if s, ok := getArtifactKindStrings()[k]; ok {
		return s
	}
	return "unknown"
}

// ContentRequest is one Booked order handed to content generation. Batch is nil when
// the location's counter was unknown or batching was disabled. Folder is the asset folder
// address, empty when pre-creation failed or was skipped.
type ContentRequest struct {
	OrderID      string
	OrderNumber  string
	StoreTag     string
	Location     string
	DeliveryDate kernel.DeliveryDate
	Batch        *int
	LineItems    []string
	Folder       string
}

// GeneratedArtifact is one item returned by a bulk generation call.
type GeneratedArtifact struct {
	Kind        ArtifactKind
	OrderNumber string
	Location    string
	URL         string
}

// ContentGenerator renders production material for a set of orders in one call.
type ContentGenerator interface {
	Generate(ctx context.Context, kind ArtifactKind, requests []ContentRequest) ([]GeneratedArtifact, error)
}
