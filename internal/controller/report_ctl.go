package controller

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"etsy_sales_collector/internal/service"
)

// ReportController 报表导出
type ReportController struct {
	reportService *service.ReportService
}

// NewReportController 工厂方法
func NewReportController(report *service.ReportService) *ReportController {
	return &ReportController{reportService: report}
}

// Export
// @Summary 导出月度销售报表
// @Description 按店铺 × 月份 (2018-01 至 2024-12) 汇总销售额和销量，输出 CSV；无数据的月份标记 N/A
// @Tags Report (报表模块)
// @Produce text/csv
// @Success 200 {string} string "CSV 内容"
// @Failure 500 {object} map[string]string "错误信息"
// @Router /report/export [get]
func (ctrl *ReportController) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := ctrl.reportService.WriteCSV(c.Request.Context(), &buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成报表失败", "detail": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="etsy-sales.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
