package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
)

var ErrContentGeneratorNotConfigured = errors.New("content generator is not configured")

// contentStage returns the step for one artifact kind. Its input is the Booked subset and
// an order without a batch number is sent with a nil batch. An order counts as done when an
// artifact of the stage's kind names its order number; the call succeeding on its own does
// not set the flag.
func (h RunPipelineCommandHandler) contentStage(kind ports.ArtifactKind, flag StageFlags) stageFunc {
	return func(ctx context.Context, run *PipelineRun) StageResult {
		name := kind.String()
		if !run.Command.Stages().Has(flag) {
			return disabled(name)
		}

		input := run.Ledger.Filter(func(r *tracking.Record) bool {
			return r.IsBooked()
		})
		if len(input) == 0 {
			return skipped(name, "no booked orders")
		}
		if h.deps.Content == nil {
			return failed(name, ErrContentGeneratorNotConfigured.Error())
		}

		requests := make([]ports.ContentRequest, 0, len(input))
		for _, r := range input {
			requests = append(requests, ports.ContentRequest{
				OrderID:      r.OrderID(),
				OrderNumber:  r.OrderNumber(),
				StoreTag:     r.StoreTag(),
				Location:     r.Location(),
				DeliveryDate: r.DeliveryDate(),
				Batch:        r.Batch(),
				LineItems:    r.LineItems(),
				Folder:       run.Folders[r.Location()],
			})
		}

		callCtx, cancel := h.call(ctx)
		artifacts, err := h.deps.Content.Generate(callCtx, kind, requests)
		cancel()
		if err != nil {
			result := failed(name, err.Error())
			result.Failed = len(input)
			return result
		}

		produced := make(map[string]struct{}, len(artifacts))
		for _, a := range artifacts {
			if a.Kind == kind {
				produced[a.OrderNumber] = struct{}{}
			}
		}

		var done, missing int
		for _, r := range input {
			_, ok := produced[r.OrderNumber()]
			setContentFlag(r, kind, ok)
			if ok {
				done++
			} else {
				missing++
			}
		}
		return tally(name, done, missing, 0)
	}
}

func setContentFlag(r *tracking.Record, kind ports.ArtifactKind, done bool) {
	switch kind {
	case ports.Personalization:
		r.SetPersonalization(done)
	case ports.PackingSlip:
		r.SetPackingSlip(done)
	case ports.MessageCard:
		r.SetMessageCard(done)
	case ports.UnknownArtifact:
	}
}
