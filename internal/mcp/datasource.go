package mcp

import (
	"context"
	"fmt"

	"github.com/asisr38/home-gym-tracker-app/internal/models"
	"github.com/asisr38/home-gym-tracker-app/internal/store"
)

// DataSource abstracts where the user's document comes from. HTTPClient
// (remote via REST API) and StoreSource (in-process engine) both satisfy it.
type DataSource interface {
	UserData(ctx context.Context) (models.UserData, error)
}

// StoreSource serves the document straight from a local state engine.
type StoreSource struct {
	Store *store.Store
}

// Compile-time check: StoreSource satisfies DataSource.
var _ DataSource = (*StoreSource)(nil)

func (s *StoreSource) UserData(ctx context.Context) (models.UserData, error) {
	if s.Store == nil {
		return models.UserData{}, fmt.Errorf("mcp: no store attached")
	}
	return s.Store.GetUserData(), nil
}
