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

	"tukarin/internal/adapter/api"
	"tukarin/internal/adapter/api/handler"
	apimiddleware "tukarin/internal/adapter/api/middleware"
	"tukarin/internal/adapter/api/router"
	"tukarin/internal/adapter/repository"
	"tukarin/internal/infrastructure/firebase"
	"tukarin/internal/infrastructure/storage"
	"tukarin/internal/infrastructure/websocket"
	"tukarin/internal/usecase"
	"tukarin/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseProject, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	itemRepo := repository.NewFirestoreItemRepository(firestoreClient)
	transactionRepo := repository.NewFirestoreTransactionRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)
	creditRepo := repository.NewFirestoreCreditRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	handler.SetupDevTokenHandler(firebaseAuthClient, userRepo)

	userUseCase := usecase.NewUserUseCase(userRepo)
	itemUseCase := usecase.NewItemUseCase(itemRepo, storageClient)
	transactionUseCase := usecase.NewTransactionUseCase(transactionRepo, itemRepo, userRepo, creditRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, transactionRepo, userRepo, wsManager)
	notificationUseCase := usecase.NewNotificationUseCase(transactionRepo, chatRepo, userRepo, cfg.PollIntervalSec)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, transactionRepo, userRepo)
	creditUseCase := usecase.NewCreditUseCase(creditRepo)

	handler.Setup(
		userUseCase,
		itemUseCase,
		transactionUseCase,
		chatUseCase,
		notificationUseCase,
		reviewUseCase,
		creditUseCase,
	)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware)

	router.Setup(e, authMiddleware, wsHandler)
	router.SetupDevRouter(e, cfg.Environment)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
