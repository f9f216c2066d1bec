package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/violethawk/server/internal/api/http/context"
	"github.com/violethawk/server/internal/api/http/handler"
	"github.com/violethawk/server/internal/api/http/middleware"
	"github.com/violethawk/server/internal/api/http/router"
	httpServer "github.com/violethawk/server/internal/api/http/server"
	"github.com/violethawk/server/internal/auth"
	"github.com/violethawk/server/internal/config"
	"github.com/violethawk/server/internal/logger"
	"github.com/violethawk/server/internal/model"
	"github.com/violethawk/server/internal/repository/postgres"
	"github.com/violethawk/server/internal/salt"
	"github.com/violethawk/server/internal/server"
	"github.com/violethawk/server/internal/service"
	storage "github.com/violethawk/server/internal/storage/minio"
	"github.com/violethawk/server/internal/token"
	"github.com/violethawk/server/internal/vote"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	subRepo := postgres.NewSubRepository(db)
	reactionRepo := postgres.NewReactionRepository(db)

	clock := model.SystemClock{}
	tokenLifetime := time.Duration(cfg.JWT.LifetimeMinutes) * time.Minute
	tokenManager := token.NewJWT(model.StaticSecret(cfg.JWT.Secret), clock, tokenLifetime)
	codec := salt.NewCodec(cfg.Auth.SaltSize, cfg.Auth.BcryptCost)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	authService := service.NewAuth(userRepo, codec, tokenManager, clock, service.AuthPolicy{
		EnableAccountCreation: cfg.Auth.EnableAccountCreation,
		EnableBearerAuth:      cfg.Auth.EnableBearerAuth,
		ForceComplexPasswords: cfg.Auth.ForceComplexPasswords,
	}, logger)
	contentService := service.NewContent(postRepo, commentRepo, subRepo, storageClient, clock, logger)
	userService := service.NewUser(userRepo, logger)
	voteEngine := vote.NewEngine(reactionRepo, cfg.Vote.AllowGuests, logger)

	resolver := auth.NewResolver(tokenManager, userRepo, logger)
	ctxMgr := httpctx.NewManager()

	routes := router.New(
		middleware.NewLogging(logger),
		middleware.NewAuthenticate(resolver, ctxMgr, logger),
		handler.NewAuth(authService, ctxMgr, tokenLifetime, logger),
		handler.NewContent(contentService, ctxMgr, logger),
		handler.NewVote(voteEngine, ctxMgr, logger),
		handler.NewUser(userService, ctxMgr, logger),
	)
	srv := httpServer.NewHTTPServer(routes, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
