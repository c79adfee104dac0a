package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/mtodo/internal/pkg/response"
	"github.com/xxxsen/mtodo/internal/service"
)

type TodoHandler struct {
	todos *service.TodoService
}

func NewTodoHandler(todos *service.TodoService) *TodoHandler {
	return &TodoHandler{todos: todos}
}

type createTodoRequest struct {
	Title string `json:"title"`
}

type deleteTodoRequest struct {
	ID string `json:"id"`
}

func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	todo, err := h.todos.Create(c.Request.Context(), getUserID(c), req.Title)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"todo": todo})
}

func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.todos.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, todos)
}

func (h *TodoHandler) Delete(c *gin.Context) {
	var req deleteTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.todos.Delete(c.Request.Context(), getUserID(c), req.ID); err != nil {
		handleError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "todo deleted")
}
