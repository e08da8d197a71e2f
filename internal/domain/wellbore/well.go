package wellbore

import (
	"strings"
	"time"

	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

// Well is a producing well registered on the dashboard.  Geometry, fluid
// samples and analysis runs all hang off a well.
type Well struct {
	ID        common.ID
	Name      string
	Field     string
	Operator  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWell constructs a well with a fresh identifier and timestamps.
func NewWell(name, field, operator string) (*Well, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.InvalidParam("well name is required")
	}
	now := time.Now().UTC()
	return &Well{
		ID:        common.NewID(),
		Name:      name,
		Field:     strings.TrimSpace(field),
		Operator:  strings.TrimSpace(operator),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename updates the display name, rejecting blank names.
func (w *Well) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.InvalidParam("well name is required")
	}
	w.Name = name
	w.UpdatedAt = time.Now().UTC()
	return nil
}
