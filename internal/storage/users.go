package storage

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mirovate/tablematch/pkg/models"
)

// UserStore reads the minimal user projection the recommendation model needs.
type UserStore struct {
	db     DatabaseQuerier
	logger *logrus.Logger
}

func NewUserStore(db DatabaseQuerier, logger *logrus.Logger) *UserStore {
	return &UserStore{db: db, logger: logger}
}

func (s *UserStore) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	rows, err := s.db.Query(ctx, `SELECT id, COALESCE(spice_preference, '') FROM users`)
	if err != nil {
		return nil, fmt.Errorf("users query failed: %w", err)
	}
	defer rows.Close()

	var users []models.UserRecord
	for rows.Next() {
		var u models.UserRecord
		if err := rows.Scan(&u.ID, &u.SpicePreference); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
