package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/staffdesk/ems-backend-go/internal/config"
	"github.com/staffdesk/ems-backend-go/internal/fixtures"
	appHTTP "github.com/staffdesk/ems-backend-go/internal/handler/http"
	"github.com/staffdesk/ems-backend-go/internal/pkg/database"
	"github.com/staffdesk/ems-backend-go/internal/pkg/jwt"
	"github.com/staffdesk/ems-backend-go/internal/repository/postgresql"
	leaveService "github.com/staffdesk/ems-backend-go/internal/service/leave"
	notificationService "github.com/staffdesk/ems-backend-go/internal/service/notification"
	taskService "github.com/staffdesk/ems-backend-go/internal/service/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	if err := fixtures.SeedDefaultAdmin(context.Background(), userRepo, cfg.Seed); err != nil {
		log.Fatal("Failed to seed default admin: ", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	notificationSvc := notificationService.NewNotificationService(notificationRepo, notificationService.Config{
		WorkerCount:   cfg.Notification.WorkerCount,
		QueueSize:     cfg.Notification.QueueSize,
		BatchSize:     cfg.Notification.BatchSize,
		FlushInterval: cfg.Notification.FlushInterval,
	})
	defer notificationSvc.Stop()

	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, notificationSvc)
	taskSvc := taskService.NewTaskService(taskRepo, userRepo, notificationSvc)

	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	taskHandler := appHTTP.NewTaskHandler(taskSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)

	router := appHTTP.NewRouter(cfg, JWTService, leaveHandler, taskHandler, notificationHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
