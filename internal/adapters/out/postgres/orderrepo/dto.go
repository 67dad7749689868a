// Package orderrepo provides data transfer objects and mapping functions for
// order snapshot persistence. It implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and their
// relational representation.
package orderrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order snapshots.
// Indexed for the read paths: by user, by payment reference and by status.
// Version is the optimistic concurrency token; every accepted transition
// increments it by exactly one.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"index"`
	Email     string
	PaymentID string `gorm:"index"`
	Items     []byte `gorm:"type:jsonb"`
	Total     float64
	Status    int `gorm:"index"`
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for order snapshots.
func (OrderDTO) TableName() string {
	return "orders"
}

// itemDTO is the JSON shape of one line item inside the items column.
type itemDTO struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := make([]itemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemDTO{
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:        aggregate.ID().Bytes(),
		UserID:    aggregate.UserID(),
		Email:     aggregate.Email(),
		PaymentID: aggregate.PaymentID(),
		Items:     raw,
		Total:     aggregate.Total(),
		Status:    int(aggregate.Status()),
		Version:   aggregate.Version(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO back to an order aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var rawItems []itemDTO
	if err = json.Unmarshal(dto.Items, &rawItems); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(rawItems))
	for _, raw := range rawItems {
		item, itemErr := order.NewItem(raw.Name, raw.Quantity, raw.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.UserID,
		dto.Email,
		dto.PaymentID,
		items,
		dto.Total,
		order.Status(dto.Status),
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
