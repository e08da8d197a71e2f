// Package wellbore provides the well and wellbore-design application
// services: well CRUD, design editing with revision control, and geometry
// construction for the dashboard and the physics engine.
package wellbore

import (
	"context"
	"time"

	domain "github.com/turtacn/WellNodal/internal/domain/wellbore"
	"github.com/turtacn/WellNodal/pkg/types/common"
	wbtypes "github.com/turtacn/WellNodal/pkg/types/wellbore"
)

// Service is the interface consumed by the HTTP handlers and the CLI.
type Service interface {
	CreateWell(ctx context.Context, input CreateWellInput) (*WellDTO, error)
	GetWell(ctx context.Context, id common.ID) (*WellDTO, error)
	ListWells(ctx context.Context, p common.Pagination) (*WellListResult, error)
	UpdateWell(ctx context.Context, input UpdateWellInput) (*WellDTO, error)
	DeleteWell(ctx context.Context, id common.ID) error

	GetDesign(ctx context.Context, wellID common.ID) (*DesignDTO, error)
	ReplaceDesign(ctx context.Context, wellID common.ID, input ReplaceDesignInput) (*DesignDTO, error)
	AddRow(ctx context.Context, wellID common.ID, row wbtypes.ComponentRowDTO) (*DesignDTO, error)
	UpdateRow(ctx context.Context, wellID common.ID, row wbtypes.ComponentRowDTO) (*DesignDTO, error)
	RemoveRow(ctx context.Context, wellID common.ID, kind wbtypes.RowKind, rowID string) (*DesignDTO, error)
	MoveRow(ctx context.Context, wellID common.ID, kind wbtypes.RowKind, rowID string, newIndex int) (*DesignDTO, error)
	SetNodalPoint(ctx context.Context, wellID common.ID, depth float64) (*DesignDTO, error)

	BuildGeometry(ctx context.Context, wellID common.ID) (*GeometryResult, error)
}

// CreateWellInput carries the fields for registering a well.
type CreateWellInput struct {
	Name     string `json:"name"`
	Field    string `json:"field"`
	Operator string `json:"operator"`
}

// UpdateWellInput carries a partial well update; nil fields stay unchanged.
type UpdateWellInput struct {
	ID       common.ID `json:"-"`
	Name     *string   `json:"name"`
	Field    *string   `json:"field"`
	Operator *string   `json:"operator"`
}

// ReplaceDesignInput is a full design snapshot from the bulk editor save.
type ReplaceDesignInput struct {
	BHARows    []wbtypes.ComponentRowDTO `json:"bha_rows"`
	CasingRows []wbtypes.ComponentRowDTO `json:"casing_rows"`
	NodalPoint float64                   `json:"nodal_point"`
}

// WellDTO is the wire representation of a well.
type WellDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Field     string    `json:"field,omitempty"`
	Operator  string    `json:"operator,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WellListResult is a paginated well listing.
type WellListResult struct {
	Wells    []*WellDTO `json:"wells"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// DesignDTO is the wire representation of a wellbore design.
type DesignDTO struct {
	WellID     string                    `json:"well_id"`
	Revision   int64                     `json:"revision"`
	BHARows    []wbtypes.ComponentRowDTO `json:"bha_rows"`
	CasingRows []wbtypes.ComponentRowDTO `json:"casing_rows"`
	NodalPoint float64                   `json:"nodal_point"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}

// GeometryResult is the merged geometry plus optional merge diagnostics.
type GeometryResult struct {
	Payload     wbtypes.GeometryPayload    `json:"payload"`
	Diagnostics []wbtypes.RowDiagnosticDTO `json:"diagnostics,omitempty"`
}

func wellToDTO(w *domain.Well) *WellDTO {
	return &WellDTO{
		ID:        w.ID.String(),
		Name:      w.Name,
		Field:     w.Field,
		Operator:  w.Operator,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func designToDTO(d *domain.Design) *DesignDTO {
	dto := &DesignDTO{
		WellID:     d.WellID.String(),
		Revision:   d.Revision,
		BHARows:    make([]wbtypes.ComponentRowDTO, 0, len(d.BHARows)),
		CasingRows: make([]wbtypes.ComponentRowDTO, 0, len(d.CasingRows)),
		NodalPoint: d.NodalPoint,
		UpdatedAt:  d.UpdatedAt,
	}
	for _, r := range d.BHARows {
		dto.BHARows = append(dto.BHARows, r.DTO())
	}
	for _, r := range d.CasingRows {
		dto.CasingRows = append(dto.CasingRows, r.DTO())
	}
	return dto
}
