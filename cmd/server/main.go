package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"noticeboard/internal/database"
	"noticeboard/internal/entity"
	"noticeboard/internal/handler"
	middleware "noticeboard/internal/midlleware"
	"noticeboard/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используются переменные окружения")
	}

	err := database.InitDB()
	if err != nil {
		fmt.Printf("Ошибка инициализации БД: %v\n", err)
		return
	}
	defer database.CloseDB()

	if err := database.RunMigrations(database.DB, "migrations"); err != nil {
		fmt.Printf("Ошибка миграций: %v\n", err)
		return
	}

	cfg := database.LoadConfig()

	userRepo := repository.NewUserRepository(database.DB)
	noticeRepo := repository.NewNoticeRepository(database.DB)
	sessionRepo := repository.NewSessionRepository(database.DB, cfg.SessionLifetime)

	if err := ensureAdmin(userRepo); err != nil {
		fmt.Printf("Ошибка создания администратора: %v\n", err)
		return
	}

	go cleanupSessions(sessionRepo)

	indexHandler := handler.NewIndexHandler(noticeRepo)
	loginHandler := handler.NewLoginHandler(userRepo, sessionRepo, cfg.SessionLifetime)
	studentHandler := handler.NewStudentHandler(userRepo, noticeRepo)
	teacherHandler := handler.NewTeacherHandler(noticeRepo)
	adminHandler := handler.NewAdminHandler(userRepo, noticeRepo)

	mux := http.NewServeMux()

	mux.HandleFunc("/", indexHandler.Index)
	mux.HandleFunc("/student/login", loginHandler.Login)
	mux.HandleFunc("/logout", middleware.RequireAuth(loginHandler.Logout))

	mux.HandleFunc("/student", middleware.RequireRole(entity.RoleStudent, studentHandler.Home))

	mux.HandleFunc("/teacher", middleware.RequireRole(entity.RoleTeacher, teacherHandler.Dashboard))
	mux.HandleFunc("/teacher/notices", middleware.RequireRole(entity.RoleTeacher, teacherHandler.Notices))
	mux.HandleFunc("/teacher/post", middleware.RequireRole(entity.RoleTeacher, teacherHandler.PostForm))
	mux.HandleFunc("/teacher/post-notice", middleware.RequireRole(entity.RoleTeacher, teacherHandler.CreateNotice))
	mux.HandleFunc("/teacher/edit-notice/", middleware.RequireRole(entity.RoleTeacher, teacherHandler.EditForm))
	mux.HandleFunc("/teacher/update-notice", middleware.RequireRole(entity.RoleTeacher, teacherHandler.UpdateNotice))
	mux.HandleFunc("/teacher/delete-notice", middleware.RequireRole(entity.RoleTeacher, teacherHandler.DeleteNotice))

	mux.HandleFunc("/admin", middleware.RequireRole(entity.RoleAdmin, adminHandler.Home))
	mux.HandleFunc("/admin/add-user", middleware.RequireRole(entity.RoleAdmin, adminHandler.AddUser))
	mux.HandleFunc("/admin/delete-user", middleware.RequireRole(entity.RoleAdmin, adminHandler.DeleteUser))
	mux.HandleFunc("/admin/delete-notice", middleware.RequireRole(entity.RoleAdmin, adminHandler.DeleteNotice))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Println("Сервер запустился на порту " + port)
	err = http.ListenAndServe(":"+port, middleware.WithSession(sessionRepo)(mux))
	if err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		os.Exit(1)
	}
}

// ensureAdmin создает первого администратора, если пользователей
// еще нет. Имя и пароль берутся из окружения
func ensureAdmin(users *repository.UserRepository) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	existing, err := users.GetByUsername(username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
		log.Println("ADMIN_PASSWORD не задан, используется пароль по умолчанию")
	}

	_, err = users.Create(username, password, entity.RoleAdmin, "Администратор")
	if err != nil {
		return err
	}

	log.Printf("Создан администратор %s\n", username)
	return nil
}

// Периодическая очистка истекших сессий
func cleanupSessions(sessions *repository.SessionRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		deleted, err := sessions.DeleteExpired()
		if err != nil {
			fmt.Printf("Ошибка очистки сессий: %v\n", err)
			continue
		}
		if deleted > 0 {
			log.Printf("Удалено истекших сессий: %d\n", deleted)
		}
	}
}
