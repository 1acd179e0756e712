package queries

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

const (
	DefaultTransactionsLimit = 50
	MaxTransactionsLimit     = 500
)

var ErrListMoneyTransactionsQueryIsNotConstructed = errors.New(
	"ListMoneyTransactionsQuery must be created via NewListMoneyTransactionsQuery constructor",
)

// ListMoneyTransactionsQuery pages through a shop's ledger, oldest first.
// An empty attribute lists every attribute.
type ListMoneyTransactionsQuery struct {
	shopID    kernel.UUID
	attribute shop.Attribute
	limit     int
	offset    int

	guard guard.ConstructorGuard
}

// NewListMoneyTransactionsQuery uses DefaultTransactionsLimit for a zero
// limit.
func NewListMoneyTransactionsQuery(
	shopID kernel.UUID,
	attribute shop.Attribute,
	limit, offset int,
) (ListMoneyTransactionsQuery, error) {
	if err := shopID.Validate(); err != nil {
		return ListMoneyTransactionsQuery{}, err
	}
	if attribute != "" {
		if err := attribute.Validate(); err != nil {
			return ListMoneyTransactionsQuery{}, err
		}
	}
	if limit == 0 {
		limit = DefaultTransactionsLimit
	}
	if limit < 0 || limit > MaxTransactionsLimit {
		return ListMoneyTransactionsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxTransactionsLimit)
	}
	if offset < 0 {
		return ListMoneyTransactionsQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}

	return ListMoneyTransactionsQuery{
		shopID:    shopID,
		attribute: attribute,
		limit:     limit,
		offset:    offset,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListMoneyTransactionsQuery) Validate() error {
	return q.guard.Validate(ErrListMoneyTransactionsQueryIsNotConstructed)
}

func (q ListMoneyTransactionsQuery) ShopID() kernel.UUID       { return q.shopID }
func (q ListMoneyTransactionsQuery) Attribute() shop.Attribute { return q.attribute }
func (q ListMoneyTransactionsQuery) Limit() int                { return q.limit }
func (q ListMoneyTransactionsQuery) Offset() int               { return q.offset }

type MoneyTransactionView struct {
	ID          kernel.UUID
	DriverID    *kernel.UUID
	Attribute   string
	ChangeType  string
	Amount      kernel.Money
	Description string
	CreatedAt   time.Time
}
