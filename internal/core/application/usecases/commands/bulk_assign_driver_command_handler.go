package commands

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"

	"golang.org/x/sync/errgroup"
)

const defaultBulkAssignConcurrency = 4

// BulkAssignResult is the outcome for one parcel. Err is nil on success.
type BulkAssignResult struct {
	ParcelID kernel.UUID
	Err      error
}

// BulkAssignDriverCommandHandler runs the single assignment for every parcel
// with bounded concurrency. Different parcels proceed in parallel; the
// driver lock taken by each assignment serializes the counter updates.
type BulkAssignDriverCommandHandler struct {
	assign      AssignDriverCommandHandler
	concurrency int
}

func NewBulkAssignDriverCommandHandler(assign AssignDriverCommandHandler, concurrency int) BulkAssignDriverCommandHandler {
	if concurrency <= 0 {
		concurrency = defaultBulkAssignConcurrency
	}
	return BulkAssignDriverCommandHandler{
		assign:      assign,
		concurrency: concurrency,
	}
}

// Handle returns one result per parcel in command order. The error is only
// set when the command itself is invalid.
func (h BulkAssignDriverCommandHandler) Handle(ctx context.Context, command BulkAssignDriverCommand) ([]BulkAssignResult, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	ids := command.ParcelIDs()
	results := make([]BulkAssignResult, len(ids))

	var g errgroup.Group
	g.SetLimit(h.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			results[i].ParcelID = id

			cmd, err := NewAssignDriverCommand(id, command.DriverID())
			if err == nil {
				err = h.assign.Handle(ctx, cmd)
			}
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}
