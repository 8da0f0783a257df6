package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/discoshop/backend/internal/models"
	"github.com/discoshop/backend/internal/session"
)

type Deps struct {
	Auth     *AuthHTTP
	Account  *AccountHTTP
	Products *ProductHTTP
	Cart     *CartHTTP
	Orders   *OrderHTTP
	Users    *UserHTTP
	Session  session.Provider
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Use(session.Attach(d.Session))

	auth := e.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/logout", d.Auth.Logout)

	account := e.Group("/account", session.RequireUser)
	account.GET("/me", d.Account.GetMe)
	account.PATCH("/me", d.Account.PatchMe)

	products := e.Group("/products")
	products.GET("", d.Products.ListProducts)
	products.GET("/search", d.Products.SearchProducts)
	products.GET("/:id", d.Products.GetProduct)

	adminProducts := products.Group("", session.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
	adminProducts.POST("", d.Products.CreateProduct)
	adminProducts.PATCH("/:id", d.Products.PatchProduct)
	adminProducts.DELETE("/:id", d.Products.DeleteProduct)

	// The cart works for guests too; the owner key just differs.
	cartGroup := e.Group("/cart")
	cartGroup.GET("", d.Cart.GetCart)
	cartGroup.PUT("", d.Cart.PutCart)
	cartGroup.DELETE("", d.Cart.ClearCart)

	orders := e.Group("/orders", session.RequireUser)
	orders.POST("", d.Orders.CreateOrder)
	orders.GET("/me", d.Orders.ListMyOrders)
	orders.GET("/summary", d.Orders.Summary)
	orders.PATCH("/:id/status", d.Orders.UpdateStatus)

	users := e.Group("/users")
	users.GET("/:id", d.Users.GetUser, session.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
	users.PATCH("/:id", d.Users.PatchUser, session.RequireRole(models.RoleSuperAdmin))
	users.DELETE("/:id", d.Users.DeleteUser, session.RequireRole(models.RoleSuperAdmin))
	users.PATCH("/:id/email", d.Users.ChangeEmail, session.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
	users.PATCH("/:id/password", d.Users.ChangePassword, session.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
}
