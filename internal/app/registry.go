package app

import (
	"database/sql"

	"go-asset/internal/activity"
	"go-asset/internal/approvalflow"
	"go-asset/internal/asset"
	"go-asset/internal/assettype"
	"go-asset/internal/auth"
	"go-asset/internal/branch"
	"go-asset/internal/config"
	"go-asset/internal/department"
	"go-asset/internal/depreciation"
	"go-asset/internal/messaging/kafka"
	"go-asset/internal/middleware"
	"go-asset/internal/rbac"
	"go-asset/internal/rbac/infra"
	"go-asset/internal/scraprequest"
	"go-asset/internal/shared/counter"
	"go-asset/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func depreciationOptions(cfg config.DepreciationConfig) depreciation.Options {
	return depreciation.Options{
		Concurrency:  cfg.Concurrency,
		AssetTimeout: cfg.AssetTimeout,
		LockTTL:      cfg.LockTTL,
	}
}

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	branchRepo := branch.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	assetTypeRepo := assettype.NewRepository(gormDB)
	assetRepo := asset.NewRepository(gormDB)
	depreciationRepo := depreciation.NewRepository(gormDB)
	approvalFlowRepo := approvalflow.NewRepository(gormDB)
	scrapRequestRepo := scraprequest.NewRepository(gormDB)
	activityRepo := activity.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService, cfg.JWT)
	branchService := branch.NewService(branchRepo)
	departmentService := department.NewService(db, departmentRepo, rdb)
	userService := user.NewService(userRepo, rbacService)
	assetTypeService := assettype.NewService(assetTypeRepo, rdb)
	depreciationService := depreciation.NewService(db, depreciationRepo, outboxRepo, rdb, depreciationOptions(cfg.Depreciation))
	assetService := asset.NewService(db, assetRepo, counterRepo, depreciationService, outboxRepo)
	approvalFlowService := approvalflow.NewService(db, approvalFlowRepo, rbacService, rdb)
	scrapRequestService := scraprequest.NewService(db, scrapRequestRepo, outboxRepo)
	activityService := activity.NewService(activityRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.Server.IsProduction())
	branchHandler := branch.NewHandler(branchService)
	departmentHandler := department.NewHandler(departmentService)
	userHandler := user.NewHandler(userService)
	assetTypeHandler := assettype.NewHandler(assetTypeService)
	assetHandler := asset.NewHandler(assetService)
	depreciationHandler := depreciation.NewHandler(depreciationService)
	approvalFlowHandler := approvalflow.NewHandler(approvalFlowService)
	scrapRequestHandler := scraprequest.NewHandler(scrapRequestService)
	activityHandler := activity.NewHandler(activityService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	authMiddleware := middleware.AuthMiddleware(cfg.JWT.Secret)

	api := router.Group("/api/v1")
	auth.RegisterRoutes(api, authHandler, authMiddleware)
	depreciation.RegisterCronRoutes(api, depreciationHandler, cfg.Depreciation.CronSecret)

	protected := api.Group("")
	protected.Use(authMiddleware)
	{
		branch.RegisterRoutes(protected, branchHandler, rbacService)
		department.RegisterRoutes(protected, departmentHandler, rbacService)
		user.RegisterRoutes(protected, userHandler, rbacService)
		assettype.RegisterRoutes(protected, assetTypeHandler, rbacService)
		asset.RegisterRoutes(protected, assetHandler, rbacService, rdb)
		depreciation.RegisterRoutes(protected, depreciationHandler, rbacService)
		approvalflow.RegisterRoutes(protected, approvalFlowHandler, rbacService)
		scraprequest.RegisterRoutes(protected, scrapRequestHandler, rbacService, rdb)
		activity.RegisterRoutes(protected, activityHandler, rbacService)
		rbac.RegisterRoutes(protected, rbacHandler, rbacService)
	}

	return nil
}
