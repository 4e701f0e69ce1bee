// Command todo-list-app is the task-management backend: HTTP CRUD over users,
// tasks, task lists, comments, attachments, and projects, stored in MongoDB,
// with JWT-gated project routes.
//
// @title Todo List API
// @version 1.0
// @description Task-management backend with users, task lists, tasks, comments, attachments, and projects.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Anse-dev/todo-list-app/attachments"
	"github.com/Anse-dev/todo-list-app/auth"
	"github.com/Anse-dev/todo-list-app/comments"
	"github.com/Anse-dev/todo-list-app/config"
	"github.com/Anse-dev/todo-list-app/db"
	_ "github.com/Anse-dev/todo-list-app/docs" // swagger spec registration
	"github.com/Anse-dev/todo-list-app/projects"
	"github.com/Anse-dev/todo-list-app/tasklists"
	"github.com/Anse-dev/todo-list-app/tasks"
	"github.com/Anse-dev/todo-list-app/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, database, err := db.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	userService := users.NewService(users.NewStore(database))
	userHandlers := users.NewHandlers(userService)

	taskService := tasks.NewService(tasks.NewStore(database))
	taskHandlers := tasks.NewHandlers(taskService)

	taskListService := tasklists.NewService(tasklists.NewStore(database))
	taskListHandlers := tasklists.NewHandlers(taskListService)

	commentService := comments.NewService(comments.NewStore(database))
	commentHandlers := comments.NewHandlers(commentService)

	attachmentService := attachments.NewService(attachments.NewStore(database))
	attachmentHandlers := attachments.NewHandlers(attachmentService)

	projectService := projects.NewService(projects.NewStore(database))
	projectHandlers := projects.NewHandlers(projectService)

	authService := auth.NewService(userService, *cfg.Auth)
	authHandlers := auth.NewHandlers(authService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/auth", authHandlers.RegisterRoutes)
	r.Route("/api/users", userHandlers.RegisterRoutes)
	r.Route("/api/tasks", taskHandlers.RegisterRoutes)
	r.Route("/api/tasklists", taskListHandlers.RegisterRoutes)
	r.Route("/api/comments", commentHandlers.RegisterRoutes)
	r.Route("/api/attachments", attachmentHandlers.RegisterRoutes)

	// Projects are the gated part of the surface: every route requires a valid
	// token, mutations additionally require the admin role.
	r.Route("/api/projects", func(r chi.Router) {
		r.Use(auth.RequireAuth(cfg.Auth))

		r.Get("/", projectHandlers.HandleList())
		r.Get("/{id}", projectHandlers.HandleGet())

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole("admin"))
			r.Post("/", projectHandlers.HandleCreate())
			r.Patch("/{id}", projectHandlers.HandleUpdate())
			r.Delete("/{id}", projectHandlers.HandleDelete())
		})
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	if err := db.Disconnect(client); err != nil {
		log.Printf("Error disconnecting from database: %v", err)
	}
	log.Println("Server stopped gracefully")
}
