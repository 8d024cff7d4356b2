package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fishing-game-backend/internal/common/config"
	"fishing-game-backend/internal/common/logger"
	"fishing-game-backend/internal/common/middleware"
	authhttp "fishing-game-backend/internal/features/auth/delivery/http"
	authredis "fishing-game-backend/internal/features/auth/repository/redis"
	authservice "fishing-game-backend/internal/features/auth/service"
	mininghttp "fishing-game-backend/internal/features/mining/delivery/http"
	miningservice "fishing-game-backend/internal/features/mining/service"
	playerhttp "fishing-game-backend/internal/features/player/delivery/http"
	playerredis "fishing-game-backend/internal/features/player/repository/redis"
	playerservice "fishing-game-backend/internal/features/player/service"
	referralhttp "fishing-game-backend/internal/features/referral/delivery/http"
	referralredis "fishing-game-backend/internal/features/referral/repository/redis"
	referralservice "fishing-game-backend/internal/features/referral/service"
	shophttp "fishing-game-backend/internal/features/shop/delivery/http"
	shopservice "fishing-game-backend/internal/features/shop/service"
	spinhttp "fishing-game-backend/internal/features/spin/delivery/http"
	spinservice "fishing-game-backend/internal/features/spin/service"
	statshttp "fishing-game-backend/internal/features/stats/delivery/http"
	statsredis "fishing-game-backend/internal/features/stats/repository/redis"
	statsservice "fishing-game-backend/internal/features/stats/service"
	swaphttp "fishing-game-backend/internal/features/swap/delivery/http"
	swapservice "fishing-game-backend/internal/features/swap/service"
	platform "fishing-game-backend/internal/platform/redis"
)

// @title Fishing Game Backend API
// @version 1.0
// @description Play-to-earn fishing economy: mining casts, spin wheel, swaps and referrals.
// @BasePath /api/v1
func main() {
	cfg := config.Load()
	logger.Init("fishing-game-backend", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	rdb, err := platform.Open(ctx, redisAddr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Str("addr", redisAddr).Msg("Redis connection failed")
	}
	defer rdb.Close()

	playerRepo := playerredis.NewRepository(rdb)
	statsRepo := statsredis.NewRepository(rdb)
	referralRepo := referralredis.NewRepository(rdb)
	authRepo := authredis.NewRepository(rdb)

	playerSvc := playerservice.NewPlayerService(playerRepo, statsRepo, referralRepo, cfg)
	authSvc := authservice.NewService(authRepo, playerSvc, cfg)
	shopSvc := shopservice.NewShopService(playerRepo, cfg)
	referralSvc := referralservice.NewReferralService(referralRepo, playerRepo, statsRepo, cfg)
	miningSvc := miningservice.NewMiningService(playerRepo, statsRepo, referralSvc, cfg)
	spinSvc := spinservice.NewSpinService(playerRepo, statsRepo, cfg)
	swapSvc := swapservice.NewSwapService(playerRepo, statsRepo, cfg)
	statsSvc := statsservice.NewStatsService(statsRepo, cfg)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.Origin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "init_data", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", func(c *gin.Context) {
		if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1", middleware.TelegramInitData(cfg.Telegram.BotToken, 24*time.Hour))
	sessionGate := middleware.RequireSession(authRepo, cfg.IsDeveloper)

	authhttp.NewAuthHandler(authSvc).RegisterRoutes(api)
	playerhttp.NewPlayerHandler(playerSvc).RegisterRoutes(api)
	shophttp.NewShopHandler(shopSvc).RegisterRoutes(api, sessionGate)
	mininghttp.NewMiningHandler(miningSvc).RegisterRoutes(api, sessionGate)
	spinhttp.NewSpinHandler(spinSvc).RegisterRoutes(api, sessionGate)
	swaphttp.NewSwapHandler(swapSvc).RegisterRoutes(api, sessionGate)
	referralhttp.NewReferralHandler(referralSvc).RegisterRoutes(api, sessionGate)
	statshttp.NewStatsHandler(statsSvc).RegisterRoutes(api)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}

	log.Info().Msg("Server stopped")
}
