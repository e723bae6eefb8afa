package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gorilla/websocket"

	"github.com/VitaminP8/picshare/graph"
	"github.com/VitaminP8/picshare/graph/generated"
	"github.com/VitaminP8/picshare/internal/auth"
	"github.com/VitaminP8/picshare/internal/config"
	"github.com/VitaminP8/picshare/internal/post"
	"github.com/VitaminP8/picshare/internal/storage/memory"
	"github.com/VitaminP8/picshare/internal/storage/postgres"
	"github.com/VitaminP8/picshare/internal/subscription"
	"github.com/VitaminP8/picshare/internal/user"
	"github.com/VitaminP8/picshare/models"
)

const tokenTTL = 24 * time.Hour // "1d"

func main() {
	storageType := flag.String("storage", "memory", "Тип хранилища: memory или postgres")
	flag.Parse()

	// загружаем .env из нашего config.go
	config.LoadEnv()

	// секрет читается один раз и внедряется, а не достается из окружения по месту
	jwtSecret := config.GetEnv("JWT_SECRET")
	tokens := auth.NewTokenIssuer(jwtSecret, tokenTTL)

	manager := subscription.NewSubscriptionManager()

	var postStore post.PostStorage
	var userStore user.UserStorage

	switch *storageType {
	case "postgres":
		if err := postgres.InitDB(); err != nil {
			log.Fatalf("failed to init database: %v", err)
		}
		err := postgres.DB.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}).Error
		if err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		log.Println("Используется PostgreSQL хранилище")
		postStore = postgres.NewPostPostgresStorage(manager)
		userStore = postgres.NewUserPostgresStorage()

	case "memory":
		log.Println("Используется in-memory хранилище")
		postStore, userStore = memory.NewMemoryStorages(manager)

	default:
		log.Fatalf("неизвестный тип хранилища: %s", *storageType)
	}

	// Инициализация резолвера
	resolver := &graph.Resolver{
		PostStore:           postStore,
		UserStore:           userStore,
		Tokens:              tokens,
		SubscriptionManager: manager,
	}

	// Создаем новый сервер GraphQL с резолверами
	srv := handler.New(generated.NewExecutableSchema(generated.Config{
		Resolvers: resolver,
	}))

	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})
	// Websocket транспорт для подписки commentAdded
	srv.AddTransport(transport.Websocket{
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		KeepAlivePingInterval: 10 * time.Second,
	})
	srv.Use(extension.Introspection{})

	// AuthMiddleware - http.Handler, который получает запрос, вытаскивает JWT токен из заголовка,
	// проверяет и валидирует его, сохраняет личность пользователя в context
	http.Handle("/query", auth.AuthMiddleware(jwtSecret, srv))
	// Страница с тестовым интерфейсом Playground
	http.Handle("/", playground.Handler("GraphQL Playground", "/query"))

	// HTTP сервер
	server := &http.Server{
		Addr: ":8080",
	}

	// запуск HTTP сервер
	go func() {
		log.Println("Сервер запущен на http://localhost:8080/")
		// строка не возвращается (блокирует поток) пока не выполнится server.Shutdown() или не произойдет фатальная ошибка
		// Поэтому запускаем goroutine
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // ждет сигнал

	log.Println("Завершение...")

	if *storageType == "postgres" {
		postgres.CloseDB()
	}

	if err := server.Shutdown(context.Background()); err != nil {
		log.Fatalf("Ошибка при завершении сервера: %v", err)
	}

	log.Println("Сервер остановлен корректно")
}
