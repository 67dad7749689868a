package order

import (
	"errors"
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Item is a line item value object: an order must carry at least one.
// Items are immutable after construction.
type Item struct {
	name      string
	quantity  int
	unitPrice float64
}

// NewItem creates a validated line item. Name must be non-empty, quantity
// positive, and the unit price non-negative.
func NewItem(name string, quantity int, unitPrice float64) (Item, error) {
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item unit price",
			fmt.Errorf("%g is negative", unitPrice))
	}

	return Item{
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// Name returns the item's display name.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit.
func (i Item) UnitPrice() float64 {
	return i.unitPrice
}

// Subtotal returns quantity times unit price.
func (i Item) Subtotal() float64 {
	return float64(i.quantity) * i.unitPrice
}

// validateItems checks the line item invariant shared by the order
// constructors.
func validateItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}

	var errList []error
	for _, item := range items {
		if item.name == "" {
			errList = append(errList, errs.NewValueIsRequiredError("item name"))
		}
	}
	return errors.Join(errList...)
}
