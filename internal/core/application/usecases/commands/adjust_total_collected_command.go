package commands

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrAdjustTotalCollectedCommandIsNotConstructed = errors.New(
	"AdjustTotalCollectedCommand must be created via NewAdjustTotalCollectedCommand constructor",
)

// AdjustTotalCollectedCommand is an administrative correction of a shop's
// TotalCollected balance. The reason is kept on the ledger row.
type AdjustTotalCollectedCommand struct {
	shopID    kernel.UUID
	amount    kernel.Money
	reason    string
	direction shop.ChangeType

	guard guard.ConstructorGuard
}

func NewAdjustTotalCollectedCommand(
	shopID kernel.UUID,
	amount kernel.Money,
	reason string,
	direction shop.ChangeType,
) (AdjustTotalCollectedCommand, error) {
	if err := shopID.Validate(); err != nil {
		return AdjustTotalCollectedCommand{}, err
	}
	if strings.TrimSpace(reason) == "" {
		return AdjustTotalCollectedCommand{}, errs.NewRuleViolationError(
			errs.ErrReasonRequired, "shop", "adjustment needs a reason",
		)
	}
	if _, err := shop.ParseChangeType(string(direction)); err != nil {
		return AdjustTotalCollectedCommand{}, err
	}

	return AdjustTotalCollectedCommand{
		shopID:    shopID,
		amount:    amount,
		reason:    reason,
		direction: direction,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AdjustTotalCollectedCommand) Validate() error {
	return c.guard.Validate(ErrAdjustTotalCollectedCommandIsNotConstructed)
}

func (c AdjustTotalCollectedCommand) ShopID() kernel.UUID        { return c.shopID }
func (c AdjustTotalCollectedCommand) Amount() kernel.Money       { return c.amount }
func (c AdjustTotalCollectedCommand) Reason() string             { return c.reason }
func (c AdjustTotalCollectedCommand) Direction() shop.ChangeType { return c.direction }
