package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"etsy_sales_collector/internal/repository"
	"etsy_sales_collector/internal/service"
	"etsy_sales_collector/pkg/etsy"
)

// AuthController 授权入口
type AuthController struct {
	authService   *service.AuthService
	ingestService *service.IngestService
	client        *etsy.Client
}

// NewAuthController 工厂方法
func NewAuthController(auth *service.AuthService, ingest *service.IngestService, client *etsy.Client) *AuthController {
	return &AuthController{
		authService:   auth,
		ingestService: ingest,
		client:        client,
	}
}

// Login
// @Summary 获取 Etsy 授权链接
// @Description 生成 PKCE 参数并登记握手状态，返回 OAuth 授权跳转链接
// @Tags Auth (授权模块)
// @Produce json
// @Success 200 {object} map[string]interface{} "auth_url"
// @Failure 500 {object} map[string]string "错误信息"
// @Router /oauth/login [get]
func (ctrl *AuthController) Login(c *gin.Context) {
	url, err := ctrl.authService.GenerateAuthURL(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "生成授权链接失败",
			"detail": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "获取成功",
		"auth_url": url,
	})
}

// Callback
// @Summary Etsy 授权回调
// @Description 接收 code 和 state，校验 state 后换取 Token 并拉取该卖家的全部销售数据入库
// @Tags Auth (授权模块)
// @Produce json
// @Param code query string true "授权码"
// @Param state query string true "安全校验码"
// @Success 200 {object} service.IngestResult "摄入结果"
// @Failure 400 {object} map[string]string "拒绝授权/参数错误/链接失效"
// @Failure 502 {object} map[string]string "Etsy 拒绝或远端故障"
// @Router /oauth/callback [get]
func (ctrl *AuthController) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	errParam := c.Query("error")

	if errParam != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "用户拒绝了授权", "etsy_msg": errParam})
		return
	}
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要参数 code 或 state"})
		return
	}

	// state 预检，伪造/失效的链接在换 Token 之前就拦下
	valid, err := ctrl.authService.StateIsValid(c.Request.Context(), state)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "校验 state 失败", "detail": err.Error()})
		return
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "授权链接无效或已过期，请重新发起"})
		return
	}

	result, err := ctrl.ingestService.Run(c.Request.Context(), code, state)
	if err != nil {
		ctrl.renderIngestError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "销售数据采集完成",
		"shop_id":      result.ShopID,
		"record_count": result.RecordCount,
	})
}

// renderIngestError 把管线错误翻译成用户可见的响应
func (ctrl *AuthController) renderIngestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "授权链接无效或已过期，请重新发起"})
	case errors.Is(err, service.ErrOAuthExchange):
		c.JSON(http.StatusBadGateway, gin.H{"error": "授权失败", "detail": err.Error()})
	case errors.Is(err, service.ErrRemoteAPI):
		c.JSON(http.StatusBadGateway, gin.H{"error": "拉取销售数据失败", "detail": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据入库失败", "detail": err.Error()})
	}
}

// Ping
// @Summary Etsy 连通性检查
// @Description 请求 Etsy 公共 ping 接口，验证 keystring 与网络链路
// @Tags Auth (授权模块)
// @Produce json
// @Success 200 {object} map[string]interface{} "application_id"
// @Failure 502 {object} map[string]string "错误信息"
// @Router /ping [get]
func (ctrl *AuthController) Ping(c *gin.Context) {
	resp, err := ctrl.client.Ping(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Etsy 连通性检查失败", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"application_id": resp.ApplicationID})
}
