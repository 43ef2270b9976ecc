package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created answers a create with the new record's id.
func Created(c *gin.Context, id string) {
	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
