package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/tourtrek/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PGUserRepository struct {
	db Executor
}

func NewPGUserRepository(db Executor) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var (
		id  string
		doc []byte
	)
	err := r.db.QueryRow(ctx, `SELECT id::text, doc FROM users WHERE email=$1`, email).Scan(&id, &doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(doc, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	user.ID = id
	return &user, nil
}

func (r *PGUserRepository) Insert(ctx context.Context, user *domain.User) (*domain.InsertResult, error) {
	stored := *user
	stored.ID = ""
	doc, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}

	id := uuid.NewString()
	_, err = r.db.Exec(ctx, `INSERT INTO users (id, email, doc) VALUES ($1, $2, $3)`, id, user.Email, doc)
	if isUniqueViolation(err) {
		return nil, domain.ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
