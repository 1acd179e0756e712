package queries_test

import (
	"testing"

	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	tests := []struct {
		name  string
		query interface{ Validate() error }
		want  error
	}{
		{"parcel", queries.GetParcelQuery{}, queries.ErrGetParcelQueryIsNotConstructed},
		{"tracking", queries.GetParcelByTrackingQuery{}, queries.ErrGetParcelByTrackingQueryIsNotConstructed},
		{"balance", queries.GetShopBalanceQuery{}, queries.ErrGetShopBalanceQueryIsNotConstructed},
		{"transactions", queries.ListMoneyTransactionsQuery{}, queries.ErrListMoneyTransactionsQueryIsNotConstructed},
		{"workload", queries.GetDriverWorkloadQuery{}, queries.ErrGetDriverWorkloadQueryIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Validate())
		})
	}
}

func TestNewGetParcelByTrackingQuery_RequiresNumber(t *testing.T) {
	_, err := queries.NewGetParcelByTrackingQuery("   ")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewListMoneyTransactionsQuery(t *testing.T) {
	t.Run("zero limit uses the default", func(t *testing.T) {
		q, err := queries.NewListMoneyTransactionsQuery(kernel.NewUUID(), shop.Revenue, 0, 0)

		require.NoError(t, err)
		assert.Equal(t, queries.DefaultTransactionsLimit, q.Limit())
	})

	t.Run("limit above the maximum", func(t *testing.T) {
		_, err := queries.NewListMoneyTransactionsQuery(kernel.NewUUID(), "", queries.MaxTransactionsLimit+1, 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := queries.NewListMoneyTransactionsQuery(kernel.NewUUID(), shop.Attribute("Bonus"), 10, 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
