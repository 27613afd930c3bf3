// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses are stored as their wire strings so raw analytics queries and
// sync payloads read them without decoding.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TableNumber int       `gorm:"index"`
	WaiterID    uuid.UUID `gorm:"type:uuid;index"`
	WaiterName  string
	TodoJunto   bool
	Status      string     `gorm:"type:varchar(16);index"`
	Items       []ItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `gorm:"index"`
	ConfirmedAt *time.Time
	PreparedAt  *time.Time
	PaidAt      *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Customizations are serialized to a JSON
// column; they are opaque to SQL except for analytics over the item itself.
type ItemDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID     string    `gorm:"index"`
	NameES         string
	NameEN         string
	PriceCents     int64
	Customizations string `gorm:"type:text"`
	CustomText     string
	Status         string `gorm:"type:varchar(16)"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for item entities.
func (ItemDTO) TableName() string {
	return "items"
}

// CustomizationDTO is the JSON shape of one customization inside ItemDTO.
type CustomizationDTO struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Frequency int       `json:"frequency"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dto, err := itemFromDomain(aggregate.ID(), item)
		if err != nil {
			return OrderDTO{}, err
		}
		itemDTOs = append(itemDTOs, dto)
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		TableNumber: aggregate.TableNumber(),
		WaiterID:    aggregate.WaiterID().Bytes(),
		WaiterName:  aggregate.WaiterName(),
		TodoJunto:   aggregate.TodoJunto(),
		Status:      aggregate.Status().String(),
		Items:       itemDTOs,
		CreatedAt:   aggregate.CreatedAt(),
		ConfirmedAt: aggregate.ConfirmedAt(),
		PreparedAt:  aggregate.PreparedAt(),
		PaidAt:      aggregate.PaidAt(),
	}, nil
}

func itemFromDomain(orderID kernel.UUID, item *order.Item) (ItemDTO, error) {
	customizations := item.Customizations()
	mods := make([]CustomizationDTO, 0, len(customizations))
	for _, mod := range customizations {
		mods = append(mods, CustomizationDTO{
			ID:        mod.ID().Bytes(),
			Text:      mod.Text(),
			Frequency: mod.Frequency(),
		})
	}

	encoded, err := json.Marshal(mods)
	if err != nil {
		return ItemDTO{}, err
	}

	return ItemDTO{
		ID:             item.ID().Bytes(),
		OrderID:        orderID.Bytes(),
		MenuItemID:     item.MenuItem().ID(),
		NameES:         item.MenuItem().NameES(),
		NameEN:         item.MenuItem().NameEN(),
		PriceCents:     item.Price().Cents(),
		Customizations: string(encoded),
		CustomText:     item.CustomText(),
		Status:         item.Status().String(),
		CreatedAt:      item.Timestamp(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including item statuses using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	waiterID, err := kernel.UUIDFromBytes(dto.WaiterID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.TableNumber,
		waiterID,
		dto.WaiterName,
		dto.TodoJunto,
		items,
		status,
		dto.CreatedAt,
		dto.ConfirmedAt,
		dto.PreparedAt,
		dto.PaidAt,
	)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PriceCents)
	if err != nil {
		return nil, err
	}

	menuItem, err := order.NewMenuItem(dto.MenuItemID, dto.NameES, dto.NameEN, price)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseItemStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var mods []CustomizationDTO
	if dto.Customizations != "" {
		if err = json.Unmarshal([]byte(dto.Customizations), &mods); err != nil {
			return nil, err
		}
	}

	customizations := make([]order.Customization, 0, len(mods))
	for _, mod := range mods {
		modID, modErr := kernel.UUIDFromBytes(mod.ID[:])
		if modErr != nil {
			return nil, modErr
		}
		customization, modErr := order.RestoreCustomization(modID, mod.Text, mod.Frequency)
		if modErr != nil {
			return nil, modErr
		}
		customizations = append(customizations, customization)
	}

	return order.RestoreItem(id, menuItem, customizations, dto.CustomText, status, dto.CreatedAt)
}
