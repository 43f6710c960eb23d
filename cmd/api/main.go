package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/dcastellm/taskboard/docs"
	"github.com/dcastellm/taskboard/internal/auth"
	"github.com/dcastellm/taskboard/internal/authz"
	"github.com/dcastellm/taskboard/internal/config"
	"github.com/dcastellm/taskboard/internal/database"
	"github.com/dcastellm/taskboard/internal/group"
	"github.com/dcastellm/taskboard/internal/grouptask"
	"github.com/dcastellm/taskboard/internal/task"
	"github.com/dcastellm/taskboard/internal/user"
	mw "github.com/dcastellm/taskboard/pkg/middleware"
)

// @title        Taskboard API
// @version      1.0
// @description  Multi-user task and group management service
// @BasePath     /
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	log.Println("Connected to database successfully")

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	rules := authz.Rules{
		EnforceTaskOwnership:   cfg.EnforceTaskOwnership,
		EnforceUserSelfService: cfg.EnforceUserSelfService,
	}

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, tokens, rules)
	userHandler := user.NewHandler(userService)

	// Personal task feature
	taskRepo := task.NewRepository(db)
	taskService := task.NewService(taskRepo, rules)
	taskHandler := task.NewHandler(taskService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Group task workflow (group registry injected for existence checks)
	groupTaskRepo := grouptask.NewRepository(db)
	groupTaskService := grouptask.NewService(groupTaskRepo, groupRepo)
	groupTaskHandler := grouptask.NewHandler(groupTaskService)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/swagger/*", httpSwagger.Handler())

	// Public surface
	r.Post("/register", userHandler.Register)
	r.Post("/validate", userHandler.Validate)
	r.Get("/users", userHandler.List)
	r.Get("/all-tasks", taskHandler.ListAll)

	// Authenticated surface
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth(tokens))

		r.Put("/users/{id}", userHandler.Update)
		r.Delete("/users/{id}", userHandler.Delete)
		r.Get("/user/role", userHandler.Role)

		r.Post("/tasks", taskHandler.Create)
		r.Get("/tasks", taskHandler.ListMine)
		r.Put("/tasks/{id}", taskHandler.Update)
		r.Delete("/tasks", taskHandler.Delete)

		r.Post("/groups", groupHandler.Create)
		r.Get("/groups", groupHandler.List)
		r.Mount("/groups/{groupID}/groupTasks", groupTaskHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
