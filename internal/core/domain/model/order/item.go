package order

import (
	"errors"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not
	// created through NewItem or RestoreItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

	// ErrMenuItemIsNotConstructed is returned when a MenuItem snapshot was
	// not created through NewMenuItem.
	ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem")
)

// MenuItem is the snapshot of a catalog entry embedded into an order item at
// order time. Price changes to the catalog must not retroactively alter
// historical orders, so name and price are copied, never referenced.
type MenuItem struct {
	id     string
	nameES string
	nameEN string
	price  kernel.Money

	isConstructed bool
}

// NewMenuItem creates a menu snapshot. The catalog id and Spanish name are
// required; the English name may be empty.
func NewMenuItem(id, nameES, nameEN string, price kernel.Money) (MenuItem, error) {
	if id == "" {
		return MenuItem{}, errs.NewValueIsRequiredError("menuItemId")
	}
	if nameES == "" {
		return MenuItem{}, errs.NewValueIsRequiredError("menuItem name")
	}

	return MenuItem{
		id:            id,
		nameES:        nameES,
		nameEN:        nameEN,
		price:         price,
		isConstructed: true,
	}, nil
}

// Validate ensures the snapshot was created via NewMenuItem.
func (m MenuItem) Validate() error {
	if !m.isConstructed {
		return ErrMenuItemIsNotConstructed
	}
	return nil
}

// ID returns the catalog identifier the snapshot was taken from.
func (m MenuItem) ID() string {
	return m.id
}

// NameES returns the Spanish display name.
func (m MenuItem) NameES() string {
	return m.nameES
}

// NameEN returns the English display name, possibly empty.
func (m MenuItem) NameEN() string {
	return m.nameEN
}

// Price returns the price captured at order time.
func (m MenuItem) Price() kernel.Money {
	return m.price
}

// Customization is a free-text modifier attached to an item, e.g.
// "sin hielo". The frequency counter is advisory analytics data, not
// load-bearing.
type Customization struct {
	id        kernel.UUID
	text      string
	frequency int
}

// NewCustomization creates a customization with a fresh identity and zero
// frequency. The text must not be empty.
func NewCustomization(text string) (Customization, error) {
	if text == "" {
		return Customization{}, errs.NewValueIsRequiredError("customization text")
	}
	return Customization{
		id:   kernel.NewUUID(),
		text: text,
	}, nil
}

// RestoreCustomization reconstructs a customization from persistence.
func RestoreCustomization(id kernel.UUID, text string, frequency int) (Customization, error) {
	if err := id.Validate(); err != nil {
		return Customization{}, err
	}
	if text == "" {
		return Customization{}, errs.NewValueIsRequiredError("customization text")
	}
	return Customization{
		id:        id,
		text:      text,
		frequency: frequency,
	}, nil
}

// ID returns the customization identity.
func (c Customization) ID() kernel.UUID {
	return c.id
}

// Text returns the modifier text.
func (c Customization) Text() string {
	return c.text
}

// Frequency returns the advisory usage counter.
func (c Customization) Frequency() int {
	return c.frequency
}

// Item is an entity owned exclusively by its Order; it is never referenced
// outside the aggregate. Status changes go through the Order so the derived
// order status stays consistent.
type Item struct {
	id             kernel.UUID
	menuItem       MenuItem
	customizations []Customization
	customText     string
	status         ItemStatus
	timestamp      time.Time

	isConstructed bool
}

// NewItem creates an order item in TO_PREPARE with a snapshot of the menu
// entry and the requested free-text modifiers.
func NewItem(id kernel.UUID, menuItem MenuItem, customizations []string, customText string) (*Item, error) {
	if err := errors.Join(id.Validate(), menuItem.Validate()); err != nil {
		return nil, err
	}

	mods := make([]Customization, 0, len(customizations))
	for _, text := range customizations {
		mod, err := NewCustomization(text)
		if err != nil {
			return nil, err
		}
		mods = append(mods, mod)
	}

	return &Item{
		id:             id,
		menuItem:       menuItem,
		customizations: mods,
		customText:     customText,
		status:         ItemToPrepare,
		timestamp:      time.Now().UTC(),
		isConstructed:  true,
	}, nil
}

// RestoreItem reconstructs an item from persistence, preserving its status
// and creation time.
func RestoreItem(
	id kernel.UUID,
	menuItem MenuItem,
	customizations []Customization,
	customText string,
	status ItemStatus,
	timestamp time.Time,
) (*Item, error) {
	if err := errors.Join(id.Validate(), menuItem.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Item{
		id:             id,
		menuItem:       menuItem,
		customizations: customizations,
		customText:     customText,
		status:         status,
		timestamp:      timestamp,
		isConstructed:  true,
	}, nil
}

// Validate ensures the item was created via NewItem or RestoreItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's identity, unique within its order.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// MenuItem returns the embedded catalog snapshot.
func (i *Item) MenuItem() MenuItem {
	return i.menuItem
}

// Customizations returns the item's modifiers in insertion order.
func (i *Item) Customizations() []Customization {
	out := make([]Customization, len(i.customizations))
	copy(out, i.customizations)
	return out
}

// CustomText returns the optional free-form note, possibly empty.
func (i *Item) CustomText() string {
	return i.customText
}

// Status returns the current kitchen state of the item.
func (i *Item) Status() ItemStatus {
	return i.status
}

// Timestamp returns the item's creation time.
func (i *Item) Timestamp() time.Time {
	return i.timestamp
}

// Price returns the price captured at order time.
func (i *Item) Price() kernel.Money {
	return i.menuItem.Price()
}

// changeStatus validates and applies an item transition. Only the owning
// Order calls it, so the derived order status is re-evaluated in one place.
func (i *Item) changeStatus(to ItemStatus) error {
	newStatus, err := i.status.TransitionTo(to)
	if err != nil {
		return err
	}

	i.status = newStatus
	return nil
}
