package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEquipmentType = errors.New("invalid equipment type")
	ErrNegativeQuantity     = errors.New("total quantity cannot be negative")
)

type EquipmentType string

const (
	EquipmentRacket EquipmentType = "RACKET"
	EquipmentShoes  EquipmentType = "SHOES"
)

func ParseEquipmentType(s string) (EquipmentType, error) {
	switch EquipmentType(s) {
	case EquipmentRacket, EquipmentShoes:
		return EquipmentType(s), nil
	}
	return "", ErrInvalidEquipmentType
}

// Equipment is a rental pool: total quantity shared across all overlapping
// bookings, not individually tracked units.
type Equipment struct {
	id            uuid.UUID
	name          string
	equipmentType EquipmentType
	totalQuantity int
	createdAt     time.Time
	updatedAt     time.Time
}

func NewEquipment(id uuid.UUID, name string, equipmentType EquipmentType, totalQuantity int) (*Equipment, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if _, err := ParseEquipmentType(string(equipmentType)); err != nil {
		return nil, err
	}
	if totalQuantity < 0 {
		return nil, ErrNegativeQuantity
	}
	return &Equipment{
		id:            id,
		name:          strings.TrimSpace(name),
		equipmentType: equipmentType,
		totalQuantity: totalQuantity,
	}, nil
}

func ReconstructEquipment(id uuid.UUID, name string, equipmentType EquipmentType, totalQuantity int, createdAt, updatedAt time.Time) *Equipment {
	return &Equipment{
		id:            id,
		name:          name,
		equipmentType: equipmentType,
		totalQuantity: totalQuantity,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (e *Equipment) ID() uuid.UUID       { return e.id }
func (e *Equipment) Name() string        { return e.name }
func (e *Equipment) Type() EquipmentType { return e.equipmentType }
func (e *Equipment) TotalQuantity() int  { return e.totalQuantity }

// AvailableQuantity subtracts the quantity held by overlapping confirmed
// bookings from the pool total.
func (e *Equipment) AvailableQuantity(bookedQuantity int) int {
	return e.totalQuantity - bookedQuantity
}
