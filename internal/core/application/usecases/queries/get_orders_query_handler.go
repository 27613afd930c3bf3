package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"comanda/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists orders from the database, newest first.
// Items are loaded in a second round trip and grouped by order.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query. Filter fields are combined with AND;
// the date filter matches the calendar day the order was created.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where := "1=1"
	args := make([]any, 0, 4)

	filter := query.Filter()
	if filter.Status != nil {
		where += " AND status = ?"
		args = append(args, filter.Status.String())
	}
	if filter.TableNumber != nil {
		where += " AND table_number = ?"
		args = append(args, *filter.TableNumber)
	}
	if filter.WaiterID != nil {
		where += " AND waiter_id = ?"
		args = append(args, filter.WaiterID.String())
	}
	if filter.Date != nil {
		where += " AND created_at::date = ?::date"
		args = append(args, filter.Date.Format("2006-01-02"))
	}

	orders, err := h.scanOrders(ctx, where, args)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	if err = attachItems(ctx, h.db, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h GetOrdersQueryHandler) scanOrders(
	ctx context.Context,
	where string,
	args []any,
) ([]OrderResponse, error) {
	orders := make([]OrderResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			table_number,
			waiter_id,
			waiter_name,
			todo_junto,
			status,
			created_at,
			confirmed_at,
			prepared_at,
			paid_at
		FROM orders
		WHERE `+where+`
		ORDER BY created_at DESC
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp OrderResponse
		var id, waiterID uuid.UUID
		var confirmedAt, preparedAt, paidAt sql.NullTime

		err = rows.Scan(
			&id,
			&resp.TableNumber,
			&waiterID,
			&resp.WaiterName,
			&resp.TodoJunto,
			&resp.Status,
			&resp.CreatedAt,
			&confirmedAt,
			&preparedAt,
			&paidAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.WaiterID, err = kernel.UUIDFromBytes(waiterID[:]); err != nil {
			return nil, err
		}
		resp.ConfirmedAt = nullableTime(confirmedAt)
		resp.PreparedAt = nullableTime(preparedAt)
		resp.PaidAt = nullableTime(paidAt)
		resp.Items = make([]ItemResponse, 0)

		orders = append(orders, resp)
	}

	return orders, rows.Err()
}

// attachItems loads the items of each given order and recomputes totals.
func attachItems(ctx context.Context, db *gorm.DB, orders []OrderResponse) error {
	index := make(map[kernel.UUID]int, len(orders))
	ids := make([]string, 0, len(orders))
	for i, o := range orders {
		index[o.ID] = i
		ids = append(ids, o.ID.String())
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			menu_item_id,
			name_es,
			name_en,
			price_cents,
			customizations,
			custom_text,
			status,
			created_at
		FROM items
		WHERE order_id IN ?
		ORDER BY created_at
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item ItemResponse
		var id, orderID uuid.UUID
		var priceCents int64
		var customizations string

		err = rows.Scan(
			&id,
			&orderID,
			&item.MenuItemID,
			&item.NameES,
			&item.NameEN,
			&priceCents,
			&customizations,
			&item.CustomText,
			&item.Status,
			&item.CreatedAt,
		)
		if err != nil {
			return err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return err
		}
		ownerID, err := kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return err
		}
		if item.Price, err = kernel.NewMoney(priceCents); err != nil {
			return err
		}
		// Stored as a JSON array of {id, text, frequency}; the read model
		// only needs the texts.
		if customizations != "" {
			var mods []struct {
				Text string `json:"text"`
			}
			if err = json.Unmarshal([]byte(customizations), &mods); err != nil {
				return err
			}
			for _, mod := range mods {
				item.Customizations = append(item.Customizations, mod.Text)
			}
		}

		i, ok := index[ownerID]
		if !ok {
			continue
		}
		orders[i].Items = append(orders[i].Items, item)
		orders[i].Total = orders[i].Total.Add(item.Price)
	}

	return rows.Err()
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
