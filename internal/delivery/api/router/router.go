// Package router registers the account API routes.
package router

import (
	"accounts/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
}

type router struct {
	accountHandler *handler.AccountHandler
}

func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")

	accountsGroup := apiV1.Group("/accounts")
	{
		accountsGroup.GET("", r.accountHandler.ListAccounts)
		accountsGroup.POST("", r.accountHandler.CreateAccount)
		accountsGroup.GET("/:id", r.accountHandler.GetAccount)
		accountsGroup.PUT("/:id", r.accountHandler.UpdateAccount)
		accountsGroup.DELETE("/:id", r.accountHandler.DeleteAccount)
		accountsGroup.POST("/:id/change-password", r.accountHandler.ChangePassword)
	}
}
