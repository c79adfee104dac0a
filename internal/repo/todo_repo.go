package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/xxxsen/mtodo/internal/model"
	"github.com/xxxsen/mtodo/internal/pkg/dbutil"
	appErr "github.com/xxxsen/mtodo/internal/pkg/errors"
)

var todoColumns = []string{"id", "user_id", "title", "ctime"}

type TodoRepo struct {
	db *sqlx.DB
}

func NewTodoRepo(db *sqlx.DB) *TodoRepo {
	return &TodoRepo{db: db}
}

func (r *TodoRepo) Create(ctx context.Context, todo *model.Todo) error {
	data := map[string]interface{}{
		"id":      todo.ID,
		"user_id": todo.UserID,
		"title":   todo.Title,
		"ctime":   todo.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("todos", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(r.db, sqlStr, args)
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

// GetByID looks a todo up regardless of owner. Callers check ownership.
func (r *TodoRepo) GetByID(ctx context.Context, todoID string) (*model.Todo, error) {
	where := map[string]interface{}{"id": todoID}
	sqlStr, args, err := builder.BuildSelect("todos", where, todoColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(r.db, sqlStr, args)
	var todo model.Todo
	if err := r.db.GetContext(ctx, &todo, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErr.ErrNotFound
		}
		return nil, fmt.Errorf("select todo: %w", err)
	}
	return &todo, nil
}

func (r *TodoRepo) List(ctx context.Context, userID string) ([]model.Todo, error) {
	where := map[string]interface{}{"user_id": userID, "_orderby": "ctime asc, id asc"}
	sqlStr, args, err := builder.BuildSelect("todos", where, todoColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(r.db, sqlStr, args)
	todos := make([]model.Todo, 0)
	if err := r.db.SelectContext(ctx, &todos, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("select todos: %w", err)
	}
	return todos, nil
}

func (r *TodoRepo) Delete(ctx context.Context, userID, todoID string) error {
	where := map[string]interface{}{
		"id":      todoID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildDelete("todos", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(r.db, sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
