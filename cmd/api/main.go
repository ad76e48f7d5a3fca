package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"github.com/takitajwar17/my-chat-app/internal/adapter/api"
	"github.com/takitajwar17/my-chat-app/internal/adapter/api/handler"
	apimiddleware "github.com/takitajwar17/my-chat-app/internal/adapter/api/middleware"
	"github.com/takitajwar17/my-chat-app/internal/adapter/api/router"
	"github.com/takitajwar17/my-chat-app/internal/adapter/repository"
	"github.com/takitajwar17/my-chat-app/internal/infrastructure/firebase"
	"github.com/takitajwar17/my-chat-app/internal/infrastructure/websocket"
	"github.com/takitajwar17/my-chat-app/internal/usecase"
	"github.com/takitajwar17/my-chat-app/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	// Service account from the environment (production) or a key file
	// (local development).
	if cfg.ServiceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON))
	} else {
		serviceAccountPath := cfg.ServiceAccountPath
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	conversationSubscriber := repository.NewFirestoreConversationSubscriber(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo)
	chatUseCase := usecase.NewChatUseCase(conversationRepo, conversationSubscriber, userRepo)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	authHandler := handler.NewAuthHandler(authUseCase)
	userHandler := handler.NewUserHandler(userUseCase)
	conversationHandler := handler.NewConversationHandler(chatUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, chatUseCase)
	healthHandler := handler.NewHealthHandler()

	router.Setup(e, authHandler, userHandler, conversationHandler, wsHandler, healthHandler, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
