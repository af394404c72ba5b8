package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sporthub/sporthub/internal/community"
)

type SportCategoryStore struct {
	db *sqlx.DB
}

const (
	getCategoryQuery    = "SELECT * FROM sport_categories WHERE id = ?"
	listCategoriesQuery = "SELECT * FROM sport_categories LIMIT ? OFFSET ?"
	createCategoryQuery = "INSERT INTO sport_categories (id, name, icon_url) VALUES (:id, :name, :icon_url)"
	updateCategoryQuery = "UPDATE sport_categories SET name = :name, icon_url = :icon_url WHERE id = :id"
	deleteCategoryQuery = "DELETE FROM sport_categories WHERE id = ?"
)

func NewSportCategoryStore(db *sqlx.DB) *SportCategoryStore {
	return &SportCategoryStore{db: db}
}

func (s *SportCategoryStore) GetCategory(ctx context.Context, id uuid.UUID) (*community.SportCategory, error) {
	var category community.SportCategory
	err := s.db.GetContext(ctx, &category, getCategoryQuery, id)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *SportCategoryStore) ListCategories(ctx context.Context, limit, offset int) ([]community.SportCategory, error) {
	var categories []community.SportCategory
	err := s.db.SelectContext(ctx, &categories, listCategoriesQuery, limit, offset)
	return categories, err
}

func (s *SportCategoryStore) CreateCategory(ctx context.Context, category *community.SportCategory) error {
	_, err := s.db.NamedExecContext(ctx, createCategoryQuery, category)
	return err
}

func (s *SportCategoryStore) UpdateCategory(ctx context.Context, category *community.SportCategory) error {
	_, err := s.db.NamedExecContext(ctx, updateCategoryQuery, category)
	return err
}

func (s *SportCategoryStore) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, deleteCategoryQuery, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
