package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/391rajan/Quiz/internal/admin"
	"github.com/391rajan/Quiz/internal/analytics"
	"github.com/391rajan/Quiz/internal/auth"
	"github.com/391rajan/Quiz/internal/config"
	"github.com/391rajan/Quiz/internal/database"
	"github.com/391rajan/Quiz/internal/generator"
	"github.com/391rajan/Quiz/internal/middleware"
	"github.com/391rajan/Quiz/internal/payments"
	"github.com/391rajan/Quiz/internal/quizzes"
	"github.com/391rajan/Quiz/internal/subscriptions"
)

func main() {
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize handlers
	secret := []byte(cfg.JWTSecret)
	authHandler := auth.NewHandler(db, secret)
	quizHandler := quizzes.NewHandler(quizzes.NewService(quizzes.NewStore(db), generator.NewGenerator()))
	analyticsHandler := analytics.NewHandler(analytics.NewStore(db))
	subscriptionHandler := subscriptions.NewHandler(subscriptions.NewStore(db))
	paymentHandler := payments.NewHandler(payments.NewStore(db))
	adminHandler := admin.NewHandler(db)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/forgot-password", authHandler.ForgotPassword).Methods("POST")
	api.HandleFunc("/auth/reset-password/{token}", authHandler.ResetPassword).Methods("PUT")
	api.HandleFunc("/subscriptions", subscriptionHandler.Subscribe).Methods("POST")
	api.HandleFunc("/subscriptions/{email}", subscriptionHandler.Unsubscribe).Methods("DELETE")
	api.HandleFunc("/plans", paymentHandler.ListPlans).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(secret))
	protected.HandleFunc("/auth/me", authHandler.GetProfile).Methods("GET")

	protected.HandleFunc("/quizzes/generate", quizHandler.GenerateQuiz).Methods("POST")
	protected.HandleFunc("/quizzes/submit", quizHandler.SubmitQuiz).Methods("POST")
	protected.HandleFunc("/quizzes", quizHandler.ListQuizzes).Methods("GET")
	protected.HandleFunc("/quizzes/{id:[0-9]+}", quizHandler.GetQuiz).Methods("GET")
	protected.HandleFunc("/quizzes/{id:[0-9]+}/progress", quizHandler.SaveProgress).Methods("PUT")
	protected.HandleFunc("/quizzes/{id:[0-9]+}/progress", quizHandler.GetProgress).Methods("GET")

	protected.HandleFunc("/analytics/me", analyticsHandler.GetUserAnalytics).Methods("GET")
	protected.HandleFunc("/analytics/results/{id:[0-9]+}", analyticsHandler.GetQuizResults).Methods("GET")
	protected.HandleFunc("/analytics/activity", analyticsHandler.GetUserActivity).Methods("GET")

	protected.HandleFunc("/orders", paymentHandler.CreateOrder).Methods("POST")
	protected.HandleFunc("/payments/dummy-payment", paymentHandler.ProcessDummyPayment).Methods("POST")
	protected.HandleFunc("/payments/subscription-status", paymentHandler.GetSubscriptionStatus).Methods("GET")

	// Admin routes
	adminRoutes := protected.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.Admin(db))
	adminRoutes.HandleFunc("/users", adminHandler.GetAllUsers).Methods("GET")
	adminRoutes.HandleFunc("/users/{id:[0-9]+}/promote", adminHandler.PromoteUser).Methods("PUT")
	adminRoutes.HandleFunc("/quizzes", adminHandler.GetAllQuizzes).Methods("GET")
	adminRoutes.HandleFunc("/quizzes/{id:[0-9]+}", adminHandler.DeleteQuiz).Methods("DELETE")
	adminRoutes.HandleFunc("/subscriptions", subscriptionHandler.GetAllSubscriptions).Methods("GET")
	adminRoutes.HandleFunc("/subscriptions/stats", subscriptionHandler.GetSubscriptionStats).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
