package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"etsy_sales_collector/internal/controller"

	_ "etsy_sales_collector/docs"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtrl *controller.AuthController,
	reportCtrl *controller.ReportController) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api")
	{
		// 连通性检查
		api.GET("/ping", authCtrl.Ping)

		// auth 鉴权组
		auth := api.Group("/oauth")
		{
			// GET /api/oauth/login
			auth.GET("/login", authCtrl.Login)

			// GET /api/oauth/callback
			auth.GET("/callback", authCtrl.Callback)
		}

		// report 报表组
		report := api.Group("/report")
		{
			// GET /api/report/export
			report.GET("/export", reportCtrl.Export)
		}
	}
}
