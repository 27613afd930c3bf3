package order_test

import (
	"fmt"
	"testing"

	"comanda/internal/core/domain/model/order"
	"comanda/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allOrderStatuses() []order.Status {
	return []order.Status{
		order.ToConfirm,
		order.Confirmed,
		order.Prepared,
		order.Paid,
		order.Modified,
		order.Canceled,
	}
}

func TestStatus_Strings(t *testing.T) {
	t.Run("should use wire names", func(t *testing.T) {
		assert.Equal(t, "TO_CONFIRM", order.ToConfirm.String())
		assert.Equal(t, "CONFIRMED", order.Confirmed.String())
		assert.Equal(t, "PREPARED", order.Prepared.String())
		assert.Equal(t, "PAGADO", order.Paid.String())
		assert.Equal(t, "MODIFIED", order.Modified.String())
		assert.Equal(t, "CANCELED", order.Canceled.String())
		assert.Equal(t, "UNKNOWN", order.Unknown.String())
	})

	t.Run("ParseStatus round-trips every valid status", func(t *testing.T) {
		for _, status := range allOrderStatuses() {
			parsed, err := order.ParseStatus(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("ParseStatus rejects strings outside the vocabulary", func(t *testing.T) {
		for _, s := range []string{"", "UNKNOWN", "pagado", "DONE"} {
			_, err := order.ParseStatus(s)
			require.Error(t, err, "input %q", s)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate every vocabulary status", func(t *testing.T) {
		for _, status := range allOrderStatuses() {
			require.NoError(t, status.Validate(), status.String())
		}
	})

	t.Run("should reject Unknown and out-of-range values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(100)} {
			err := status.Validate()
			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_TransitionGraph(t *testing.T) {
	validEdges := map[order.Status][]order.Status{
		order.ToConfirm: {order.Confirmed, order.Canceled},
		order.Confirmed: {order.Prepared, order.Modified, order.Canceled},
		order.Prepared:  {order.Paid},
		order.Modified:  {order.Confirmed, order.Canceled},
		order.Paid:      {},
		order.Canceled:  {},
	}

	t.Run("every edge of the graph transitions", func(t *testing.T) {
		for from, tos := range validEdges {
			for _, to := range tos {
				got, err := from.TransitionTo(to)
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, got)
			}
		}
	})

	t.Run("every non-edge fails with InvalidTransition", func(t *testing.T) {
		for _, from := range allOrderStatuses() {
			for _, to := range allOrderStatuses() {
				if from.CanTransitionTo(to) {
					continue
				}
				t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
					_, err := from.TransitionTo(to)
					require.Error(t, err)
					require.ErrorIs(t, err, errs.ErrInvalidTransition)
				})
			}
		}
	})

	t.Run("no self-loops", func(t *testing.T) {
		for _, status := range allOrderStatuses() {
			assert.False(t, status.CanTransitionTo(status), status.String())
		}
	})

	t.Run("terminal statuses have no outgoing edges", func(t *testing.T) {
		assert.Empty(t, order.Paid.Transitions())
		assert.Empty(t, order.Canceled.Transitions())
		assert.True(t, order.Paid.IsTerminal())
		assert.True(t, order.Canceled.IsTerminal())
		assert.False(t, order.Confirmed.IsTerminal())
	})

	t.Run("Transitions drives UI affordances", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]order.Status{order.Prepared, order.Modified, order.Canceled},
			order.Confirmed.Transitions())
	})
}
