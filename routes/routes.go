package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"library_backend/app"
	"library_backend/controllers"
	"library_backend/models"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	Register(r, s, a.RDB)
}

// Register wires the route table against an already-built Srv. Tests
// call this directly with rdb == nil to skip the last-seen throttle.
func Register(r *gin.Engine, s *controllers.Srv, rdb *redis.Client) {
	ac := controllers.GetAuthController(s)
	uc := controllers.GetUserController(s)
	bc := controllers.NewBookController(s)

	// Reusable middleware
	authMW := app.AuthRequired(s.Auth)
	adminMW := app.RequireRoles(models.RoleAdmin)
	memberMW := app.RequireRoles(models.RoleAdmin, models.RoleUser)
	anyRoleMW := app.RequireRoles(models.RoleAdmin, models.RoleUser, models.RoleGuest)
	seenMW := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	if rdb != nil {
		seenMW = app.TouchLastSeen(s.Repo, rdb, 5*time.Minute)
	}

	// ------------------------------
	// Auth
	// ------------------------------
	auth := r.Group("/auth")
	{
		auth.POST("/login", ac.Login)
		auth.POST("/logout", authMW, ac.Logout)
	}

	// ------------------------------
	// Book catalog
	// ------------------------------
	// Cover images are public, everything else needs a credential.
	r.GET("/book/images/:filename", bc.GetImage)

	books := r.Group("/book", authMW, seenMW)
	{
		books.GET("/", anyRoleMW, bc.ListBooks)
		books.GET("/:id", anyRoleMW, bc.GetBook)
		books.POST("/", adminMW, bc.CreateBook)
		books.PUT("/:id", adminMW, bc.UpdateBook)
		books.DELETE("/:id", adminMW, bc.DeleteBook)
	}

	// Borrow / return (path spelling kept for client compatibility)
	r.PUT("/barrow/:id", authMW, seenMW, memberMW, bc.Borrow)
	r.PUT("/return/:id", authMW, seenMW, memberMW, bc.Return)

	// ------------------------------
	// User directory
	// ------------------------------
	users := r.Group("/user", authMW, seenMW)
	{
		users.GET("/me", anyRoleMW, uc.Me)
		users.PUT("/me", anyRoleMW, uc.UpdateMe)
		users.DELETE("/me", anyRoleMW, uc.DeleteMe)

		users.GET("/", adminMW, uc.ListUsers)
		users.POST("/", adminMW, uc.CreateUser)
		users.GET("/:id", adminMW, uc.GetUser)
		users.PUT("/:id", adminMW, uc.UpdateUser)
		users.DELETE("/:id", adminMW, uc.DeleteUser)
	}
}
