package mongo

import (
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/vesting/allocation"
	"github.com/xraph/vesting/id"
	"github.com/xraph/vesting/types"
)

type allocationModel struct {
	grove.BaseModel `grove:"table:vesting_allocations"`

	ID              string    `grove:"id,pk"            bson:"_id"`
	Beneficiary     string    `grove:"beneficiary"      bson:"beneficiary"`
	StartAt         time.Time `grove:"start_at"         bson:"start_at"`
	CliffSeconds    int64     `grove:"cliff_seconds"    bson:"cliff_seconds"`
	DurationSeconds int64     `grove:"duration_seconds" bson:"duration_seconds"`
	Asset           string    `grove:"asset"            bson:"asset"`
	TotalUnits      int64     `grove:"total_units"      bson:"total_units"`
	ClaimedUnits    int64     `grove:"claimed_units"    bson:"claimed_units"`
	InitialUnits    int64     `grove:"initial_units"    bson:"initial_units"`
	CreatedAt       time.Time `grove:"created_at"       bson:"created_at"`
	UpdatedAt       time.Time `grove:"updated_at"       bson:"updated_at"`
}

func toAllocationModel(a *allocation.Allocation) *allocationModel {
	return &allocationModel{
		ID:              a.ID.String(),
		Beneficiary:     a.Beneficiary,
		StartAt:         a.Start,
		CliffSeconds:    int64(a.Cliff / time.Second),
		DurationSeconds: int64(a.Duration / time.Second),
		Asset:           a.Total.Asset,
		TotalUnits:      a.Total.Units,
		ClaimedUnits:    a.Claimed.Units,
		InitialUnits:    a.Initial.Units,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func fromAllocationModel(m *allocationModel) (*allocation.Allocation, error) {
	allocID, err := id.ParseAllocationID(m.ID)
	if err != nil {
		return nil, err
	}

	return &allocation.Allocation{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:          allocID,
		Beneficiary: m.Beneficiary,
		Start:       m.StartAt,
		Cliff:       time.Duration(m.CliffSeconds) * time.Second,
		Duration:    time.Duration(m.DurationSeconds) * time.Second,
		Total:       types.Tokens(m.Asset, m.TotalUnits),
		Claimed:     types.Tokens(m.Asset, m.ClaimedUnits),
		Initial:     types.Tokens(m.Asset, m.InitialUnits),
	}, nil
}
