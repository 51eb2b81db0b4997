// Package catalog holds the read-mostly reference data: courts, equipment
// pools, coaches with weekly availability, and their invariants. Mutation is
// an administrative concern outside this service.
package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrNameTooLong     = errors.New("name is too long (max 100 characters)")
	ErrInvalidCourtTyp = errors.New("invalid court type")
)

const MaxNameLength = 100

type CourtType string

const (
	CourtIndoor  CourtType = "INDOOR"
	CourtOutdoor CourtType = "OUTDOOR"
)

func ParseCourtType(s string) (CourtType, error) {
	switch CourtType(s) {
	case CourtIndoor, CourtOutdoor:
		return CourtType(s), nil
	}
	return "", ErrInvalidCourtTyp
}

type Court struct {
	id        uuid.UUID
	name      string
	courtType CourtType
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewCourt(id uuid.UUID, name string, courtType CourtType, active bool) (*Court, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if _, err := ParseCourtType(string(courtType)); err != nil {
		return nil, err
	}
	return &Court{
		id:        id,
		name:      strings.TrimSpace(name),
		courtType: courtType,
		active:    active,
	}, nil
}

func ReconstructCourt(id uuid.UUID, name string, courtType CourtType, active bool, createdAt, updatedAt time.Time) *Court {
	return &Court{
		id:        id,
		name:      name,
		courtType: courtType,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c *Court) ID() uuid.UUID        { return c.id }
func (c *Court) Name() string         { return c.name }
func (c *Court) Type() CourtType      { return c.courtType }
func (c *Court) IsActive() bool       { return c.active }
func (c *Court) IsIndoor() bool       { return c.courtType == CourtIndoor }
func (c *Court) CreatedAt() time.Time { return c.createdAt }
func (c *Court) UpdatedAt() time.Time { return c.updatedAt }

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}
