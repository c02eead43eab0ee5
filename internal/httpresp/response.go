package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/pagination"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func Page[T any](c *gin.Context, page pagination.Page[T]) {
	c.JSON(http.StatusOK, page)
}

func Deleted(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
