// Package device exposes the device-token lookup the dispatcher
// consumes. The tokens themselves are registered and pruned by the
// surrounding application; this side only reads.
package device

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"
)

// Repository reads registered push device tokens.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new device token repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// DeviceTokens returns all push tokens registered for a user, newest
// first. An empty slice is a valid result: the user has no push
// devices.
func (r *Repository) DeviceTokens(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `
		SELECT token
		FROM device_tokens
		WHERE user_id = $1
		ORDER BY created_at DESC;
    `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}

		tokens = append(tokens, token)
	}

	return tokens, rows.Err()
}
