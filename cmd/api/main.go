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

	"nexusmarket/internal/adapter/api"
	"nexusmarket/internal/adapter/api/handler"
	apimiddleware "nexusmarket/internal/adapter/api/middleware"
	"nexusmarket/internal/adapter/api/router"
	"nexusmarket/internal/adapter/repository"
	"nexusmarket/internal/infrastructure/firebase"
	"nexusmarket/internal/infrastructure/ratelimit"
	"nexusmarket/internal/infrastructure/storage"
	"nexusmarket/internal/infrastructure/websocket"
	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	serviceAccountPath := ""

	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
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

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	gameRepo := repository.NewFirestoreGameRepository(firestoreClient)
	categoryRepo := repository.NewFirestoreCategoryRepository(firestoreClient)
	platformRepo := repository.NewFirestorePlatformRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)
	bannerRepo := repository.NewFirestoreBannerRepository(firestoreClient)
	mediaRepo := repository.NewFirestoreMediaRepository(firestoreClient)
	couponRepo := repository.NewFirestoreCouponRepository(firestoreClient)

	firebaseAuthClient := firebase.NewAuthClient(authClient, cfg.FirebaseApiKey)

	authUseCase := usecase.NewAuthUseCase(firebaseAuthClient, userRepo)
	userUseCase := usecase.NewUserUseCase(userRepo)
	catalogUseCase := usecase.NewCatalogUseCase(gameRepo, categoryRepo, platformRepo)
	listingUseCase := usecase.NewListingUseCase(listingRepo, gameRepo, categoryRepo, userRepo)
	browseUseCase := usecase.NewBrowseUseCase(listingRepo, gameRepo, categoryRepo)

	hub := websocket.NewHub(userUseCase)
	hub.Start(ctx)

	orderUseCase := usecase.NewOrderUseCase(orderRepo, listingRepo, gameRepo, userRepo, couponRepo, hub)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, orderRepo, userRepo)
	contentUseCase := usecase.NewContentUseCase(bannerRepo, mediaRepo, storageClient, int(cfg.MaxUploadSizeMB))
	couponUseCase := usecase.NewCouponUseCase(couponRepo)

	handler.Setup(
		authUseCase,
		userUseCase,
		catalogUseCase,
		listingUseCase,
		browseUseCase,
		orderUseCase,
		reviewUseCase,
		contentUseCase,
		couponUseCase,
	)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(limiter)

	router.Setup(e, authMiddleware, adminMiddleware, rateLimitMiddleware)

	wsHandler := handler.NewWebSocketHandler(hub, authUseCase)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
