package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskaura-api/internal/middleware"
)

// Routes bundles the handlers mounted under /api.
type Routes struct {
	Auth     *AuthHandler
	Projects *ProjectHandler
	Tasks    *TaskHandler
	Identity middleware.IdentityResolver
}

// RegisterRoutes mounts the API on r.
func RegisterRoutes(r gin.IRouter, routes Routes) {
	requireAuth := middleware.RequireAuth(routes.Identity)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", routes.Auth.Signup)
			auth.POST("/signin", routes.Auth.Signin)
			auth.POST("/signout", routes.Auth.Signout)
			auth.GET("/user", requireAuth, routes.Auth.GetCurrentUser)
			auth.GET("/username", middleware.OptionalAuth(routes.Identity), routes.Auth.GetCurrentUsername)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.POST("", routes.Projects.CreateProject)
			projects.GET("", routes.Projects.ListProjects)
			projects.GET("/:id", routes.Projects.GetProject)
			projects.PUT("/:id", routes.Projects.UpdateProject)
			projects.DELETE("/:id", routes.Projects.DeleteProject)
			projects.GET("/:id/tasks", routes.Tasks.ListTasks)
			projects.POST("/:id/tasks", routes.Tasks.CreateTask)
			projects.POST("/:id/tasks/generate", routes.Tasks.GenerateTasks)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.PUT("/:id", routes.Tasks.UpdateTask)
			tasks.DELETE("/:id", routes.Tasks.DeleteTask)
		}
	}
}
