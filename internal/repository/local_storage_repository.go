package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"boildown/internal/model"
)

//go:generate mockgen -source=local_storage_repository.go -destination=mock/local_storage_repository.go -package=mock

// LocalStorageRepository is a per-client key/value store, the server-side
// stand-in for a browser's localStorage.
type LocalStorageRepository interface {
	GetItem(ctx context.Context, clientID, key string) (*model.StorageItem, error)
	SetItem(ctx context.Context, clientID, key, value string) error
	RemoveItem(ctx context.Context, clientID, key string) error
}

type localStorageRepository struct {
	db dbtx
}

func NewLocalStorageRepository(db dbtx) LocalStorageRepository {
	return &localStorageRepository{db: db}
}

// GetItem returns nil, nil when the client has no such record.
func (r *localStorageRepository) GetItem(ctx context.Context, clientID, key string) (*model.StorageItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT client_id, key, value, updated_at FROM local_storage WHERE client_id = ? AND key = ?
	`, clientID, key)

	var item model.StorageItem
	var updatedAt string
	if err := row.Scan(&item.ClientID, &item.Key, &item.Value, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	item.UpdatedAt, _ = parseTime(updatedAt)
	return &item, nil
}

func (r *localStorageRepository) SetItem(ctx context.Context, clientID, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO local_storage (client_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(client_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, clientID, key, value, formatTime(time.Now()))
	return err
}

// RemoveItem is a no-op for missing records.
func (r *localStorageRepository) RemoveItem(ctx context.Context, clientID, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM local_storage WHERE client_id = ? AND key = ?`, clientID, key)
	return err
}
