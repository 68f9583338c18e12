// Package httpresp padroniza os envelopes de resposta de sucesso.
package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse é o envelope das listagens: data nunca é null.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// PageResponse acrescenta paginação; Total é o total sem limit/offset.
type PageResponse[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{Data: data, Total: len(data)})
}

func Page[T any](c *gin.Context, data []T, total int64, page, limit int) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, PageResponse[T]{Data: data, Total: total, Page: page, Limit: limit})
}
