package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/asisr38/home-gym-tracker-app/internal/models"
)

// GetUserData loads a user's document. The second return is false when the
// user has never synced.
func (db *DB) GetUserData(ctx context.Context, userID string) (models.UserData, bool, error) {
	var raw []byte
	err := db.Pool.QueryRow(ctx, `
		SELECT doc FROM user_data WHERE user_id = $1
	`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserData{}, false, nil
	}
	if err != nil {
		return models.UserData{}, false, fmt.Errorf("loading user data: %w", err)
	}

	var data models.UserData
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.UserData{}, false, fmt.Errorf("decoding user data: %w", err)
	}
	return data, true, nil
}

// UpsertUserData stores a user's document, replacing any previous version.
func (db *DB) UpsertUserData(ctx context.Context, userID string, data models.UserData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding user data: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO user_data (user_id, doc, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
			SET doc = EXCLUDED.doc, updated_at = NOW()
	`, userID, raw)
	if err != nil {
		return fmt.Errorf("saving user data: %w", err)
	}
	return nil
}

// DeleteUserData removes a user's document.
func (db *DB) DeleteUserData(ctx context.Context, userID string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM user_data WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("deleting user data: %w", err)
	}
	return nil
}
