package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxxsen/mtodo/internal/model"
	appErr "github.com/xxxsen/mtodo/internal/pkg/errors"
	"github.com/xxxsen/mtodo/internal/pkg/timeutil"
)

type TodoStore interface {
	Create(ctx context.Context, todo *model.Todo) error
	GetByID(ctx context.Context, todoID string) (*model.Todo, error)
	List(ctx context.Context, userID string) ([]model.Todo, error)
	Delete(ctx context.Context, userID, todoID string) error
}

type TodoService struct {
	todos TodoStore
}

func NewTodoService(todos TodoStore) *TodoService {
	return &TodoService{todos: todos}
}

func (s *TodoService) Create(ctx context.Context, userID, title string) (*model.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, appErr.Required("title")
	}
	todo := &model.Todo{
		ID:     newID(),
		UserID: userID,
		Title:  title,
		Ctime:  timeutil.NowUnixMilli(),
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, userID string) ([]model.Todo, error) {
	todos, err := s.todos.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

// Delete removes a todo owned by userID. A todo owned by someone else is
// reported exactly like a missing one.
func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	if todoID == "" {
		return appErr.Required("id")
	}
	todo, err := s.todos.GetByID(ctx, todoID)
	if err != nil {
		if appErr.IsNotFound(err) {
			return appErr.ErrNotFound
		}
		return fmt.Errorf("get todo: %w", err)
	}
	if todo.UserID != userID {
		return appErr.ErrNotFound
	}
	if err := s.todos.Delete(ctx, userID, todoID); err != nil {
		if appErr.IsNotFound(err) {
			return appErr.ErrNotFound
		}
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}
