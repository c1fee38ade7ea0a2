package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"etsy_sales_collector/internal/config"
	"etsy_sales_collector/internal/controller"
	"etsy_sales_collector/internal/model"
	"etsy_sales_collector/internal/repository"
	"etsy_sales_collector/internal/router"
	"etsy_sales_collector/internal/service"
	"etsy_sales_collector/internal/task"
	"etsy_sales_collector/pkg/database"
	"etsy_sales_collector/pkg/etsy"
)

// @title Etsy Sales Collector API
// @version 1.0
// @description Etsy 销售数据采集与月度报表服务
// @BasePath /api
func main() {
	// 1. 加载配置，缺少 OAuth 凭证直接失败
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(cfg, db)

	// 4. 启动定时任务
	deps.StateTask.Start()
	defer deps.StateTask.Stop()

	// 5. 初始化路由并启动服务
	r := gin.Default()
	router.InitRoutes(r, deps.AuthCtrl, deps.ReportCtrl)
	startServer(r, cfg.ServerPort)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB         *gorm.DB
	Client     *etsy.Client
	StateRepo  repository.StateRepository
	SalesRepo  repository.SalesRepository
	AuthCtrl   *controller.AuthController
	ReportCtrl *controller.ReportController
	StateTask  *task.StateTask
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.DatabaseDSN,
		&model.OAuthState{},
		&model.Shop{},
		&model.Sale{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	stateRepo := repository.NewStateRepository(db)
	salesRepo := repository.NewSalesRepository(db)

	// -------- 远端客户端 --------
	client := etsy.NewClient(etsy.Config{APIKey: cfg.Keystring})

	// -------- Service 层 --------
	authSvc := service.NewAuthService(stateRepo, client, cfg.RedirectURI)
	ingestSvc := service.NewIngestService(authSvc, client, salesRepo)
	reportSvc := service.NewReportService(salesRepo)

	// -------- Controller 层 --------
	return &Dependencies{
		DB:         db,
		Client:     client,
		StateRepo:  stateRepo,
		SalesRepo:  salesRepo,
		AuthCtrl:   controller.NewAuthController(authSvc, ingestSvc, client),
		ReportCtrl: controller.NewReportController(reportSvc),
		StateTask:  task.NewStateTask(stateRepo),
	}
}

// startServer 启动 HTTP 服务并处理优雅退出
func startServer(r *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("服务启动，监听端口 %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("收到退出信号，正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务关闭异常: %v", err)
	}
	log.Println("服务已退出")
}
