package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/warungkita/pos/internal/order/domain"
	"github.com/warungkita/pos/pkg/db/pagination"
)

func (s *Server) registerOrderRoutes() {
	app := s.engine.Group("/v1/app")

	app.GET("/order", s.ListOrders)
	app.POST("/order", s.CreateOrder)
	// Reads and updates address an order by uuid; delete and the label
	// endpoint address it by orderno, matching the receipt in hand.
	app.GET("/order/:id", s.GetOrder)
	app.PUT("/order/:id", s.UpdateOrder)
	app.PATCH("/order/:id", s.UpdateOrder)
	app.DELETE("/order/:id", s.DeleteOrder)
	app.POST("/order/:id/print-label", s.PrintOrderLabel)
}

func (s *Server) ListOrders(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, newValidationError("page", "invalid_pagination", "invalid pagination"))
		return
	}

	resp, err := s.orderSvc.List(c.Request.Context(), orderdomain.ListOrdersRequest{Page: page})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Get Order Successfully", resp)
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req orderdomain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("body", "invalid_request", "invalid request body"))
		return
	}

	order, err := s.orderSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Transaksi berhasil", order)
}

func (s *Server) GetOrder(c *gin.Context) {
	order, err := s.orderSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Get Order Successfully", order)
}

func (s *Server) UpdateOrder(c *gin.Context) {
	var req orderdomain.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("body", "invalid_request", "invalid request body"))
		return
	}

	order, err := s.orderSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Order updated successfully", order)
}

func (s *Server) DeleteOrder(c *gin.Context) {
	if err := s.orderSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Delete Order Successfully", nil)
}

func (s *Server) PrintOrderLabel(c *gin.Context) {
	result, err := s.labelSvc.Print(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Label printed successfully", result)
}
