package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/pagination"
)

type Scope = func(db *gorm.DB) *gorm.DB

const defaultOrder = "created_at DESC, id DESC"

// Repository is the CRUD surface shared by every entity table.
type Repository[T any] struct {
	db       *gorm.DB
	entity   string
	order    string
	preloads []string
}

func New[T any](db *gorm.DB, entity string) *Repository[T] {
	return &Repository[T]{db: db, entity: entity, order: defaultOrder}
}

// WithPreload returns a copy that eager-loads the given relations on reads.
func (r *Repository[T]) WithPreload(relations ...string) *Repository[T] {
	cp := *r
	cp.preloads = append(append([]string{}, r.preloads...), relations...)
	return &cp
}

// WithOrder returns a copy that sorts list results by order.
func (r *Repository[T]) WithOrder(order string) *Repository[T] {
	cp := *r
	cp.order = order
	return &cp
}

func (r *Repository[T]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *Repository[T]) NotFound() error {
	return httperr.ErrNotFound(r.entity + "_not_found")
}

func (r *Repository[T]) read(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, rel := range r.preloads {
		q = q.Preload(rel)
	}
	return q
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *Repository[T]) List(
	ctx context.Context,
	p pagination.Params,
	scopes ...Scope,
) (pagination.Page[T], error) {

	var total int64
	if err := r.db.WithContext(ctx).
		Model(new(T)).
		Scopes(scopes...).
		Count(&total).Error; err != nil {
		return pagination.Page[T]{}, err
	}

	var rows []T
	if err := r.read(ctx).
		Scopes(scopes...).
		Order(r.order).
		Scopes(pagination.Scope(p)).
		Find(&rows).Error; err != nil {
		return pagination.Page[T]{}, err
	}

	return pagination.New(rows, total, p), nil
}

func (r *Repository[T]) Find(ctx context.Context, scopes ...Scope) ([]T, error) {
	var rows []T
	if err := r.read(ctx).
		Scopes(scopes...).
		Order(r.order).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var v T
	if err := r.read(ctx).First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.NotFound()
		}
		return nil, err
	}
	return &v, nil
}

func (r *Repository[T]) Exists(ctx context.Context, scopes ...Scope) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(new(T)).
		Scopes(scopes...).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

// Create inserts v. Relation fields are never written through.
func (r *Repository[T]) Create(ctx context.Context, v *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error
}

func (r *Repository[T]) Save(ctx context.Context, v *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(v).Error
}

func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.NotFound()
	}
	return nil
}

// --------------------------------------------------
// Scopes
// --------------------------------------------------

func Where(query string, args ...any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// Eq filters column = value and is skipped when value is empty.
func Eq(column, value string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

// Search matches a lowercase LIKE pattern across columns.
func Search(term string, columns ...string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + term + "%"
		cond := ""
		args := make([]any, 0, len(columns))
		for i, col := range columns {
			if i > 0 {
				cond += " OR "
			}
			cond += "LOWER(" + col + ") LIKE ?"
			args = append(args, like)
		}
		return db.Where("("+cond+")", args...)
	}
}

// Between filters column in [start, end).
func Between(column string, start, end any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" >= ? AND "+column+" < ?", start, end)
	}
}
