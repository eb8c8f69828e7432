package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 测试辅助工具
// 集成测试的通用辅助函数：HTTP请求、JSON解析、测试数据构造。
// 需要先启动完整环境（MySQL、Redis、API服务），运行方式：
//   go test -v ./test/integration/...

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RegisterData 注册响应数据
type RegisterData struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BrandData 品牌响应数据
type BrandData struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Active  bool   `json:"active"`
}

// LineData 产品线响应数据
type LineData struct {
	ID      uint   `json:"id"`
	BrandID uint   `json:"brand_id"`
	Name    string `json:"name"`
	Active  bool   `json:"active"`
}

// ProductData 商品建档响应数据
type ProductData struct {
	ID     uint   `json:"id"`
	SKU    string `json:"sku"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// ProductInfoData 商品聚合信息响应数据
type ProductInfoData struct {
	ID     uint   `json:"id"`
	SKU    string `json:"sku"`
	Name   string `json:"name"`
	Brand  string `json:"brand"`
	Line   string `json:"line"`
	Price  string `json:"price"`
	Stock  int    `json:"stock"`
	Active bool   `json:"active"`
}

// ProductListData 商品列表响应数据（分页封装）
type ProductListData struct {
	List       json.RawMessage `json:"list"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// PriceRecordData 价格记录响应数据
type PriceRecordData struct {
	ID            uint   `json:"id"`
	ProductID     uint   `json:"product_id"`
	Price         string `json:"price"`
	MinFinalPrice string `json:"min_final_price"`
	UnitCost      string `json:"unit_cost"`
}

// StockMovementData 库存变动响应数据
type StockMovementData struct {
	MovementID    uint   `json:"movement_id"`
	ProductID     uint   `json:"product_id"`
	AgencyID      uint   `json:"agency_id"`
	Type          string `json:"type"`
	PreviousStock int    `json:"previous_stock"`
	CurrentStock  int    `json:"current_stock"`
}

// PostJSON 发送POST请求并解析JSON响应
//
// 使用require包进行断言，基础设施错误（连不上服务、响应不是JSON）
// 会立即终止测试，业务断言留给调用方。
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	t.Helper()

	jsonData, err := json.Marshal(data)
	require.NoError(t, err, "JSON序列化失败")

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(body, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(body))

	return &result
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	t.Helper()

	req, err := http.NewRequest("GET", url, nil)
	require.NoError(t, err, "创建HTTP请求失败")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(body, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(body))

	return &result
}

// GenerateTestEmail 生成唯一的测试邮箱
// 使用时间戳确保邮箱唯一性，避免测试重复运行时邮箱冲突
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// GenerateTestSKU 生成唯一的测试SKU
// SKU格式：3-30位大写字母、数字、连字符
func GenerateTestSKU(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano()%1000000000)
}

// RegisterTestUser 注册测试账号并返回Token
// 封装注册+登录的完整流程，让测试更关注业务逻辑而非基础设施
func RegisterTestUser(t *testing.T, nickname string) (email string, token string) {
	t.Helper()

	// 1. 注册
	email = GenerateTestEmail(nickname)
	registerReq := map[string]string{
		"email":    email,
		"password": "Test12345",
		"nickname": nickname,
	}

	registerResp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	// 2. 登录
	loginReq := map[string]string{
		"email":    email,
		"password": "Test12345",
	}

	loginResp := PostJSON(t, BaseURL+"/users/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return email, loginData.AccessToken
}

// CreateTestBrandLine 创建测试品牌和产品线，返回两者ID
func CreateTestBrandLine(t *testing.T, token string) (brandID, lineID uint) {
	t.Helper()

	brandReq := map[string]string{
		"name":    fmt.Sprintf("测试品牌%d", time.Now().UnixNano()%1000000),
		"country": "德国",
	}
	brandResp := PostJSON(t, BaseURL+"/brands", brandReq, token)
	require.Equal(t, 0, brandResp.Code, "创建品牌失败: %s", brandResp.Message)

	var brandData BrandData
	err := json.Unmarshal(brandResp.Data, &brandData)
	require.NoError(t, err, "解析品牌响应失败")

	lineReq := map[string]string{
		"name": fmt.Sprintf("测试产品线%d", time.Now().UnixNano()%1000000),
	}
	lineResp := PostJSON(t, fmt.Sprintf("%s/brands/%d/lines", BaseURL, brandData.ID), lineReq, token)
	require.Equal(t, 0, lineResp.Code, "创建产品线失败: %s", lineResp.Message)

	var lineData LineData
	err = json.Unmarshal(lineResp.Data, &lineData)
	require.NoError(t, err, "解析产品线响应失败")

	return brandData.ID, lineData.ID
}

// CreateTestProduct 建档测试商品并返回商品ID
func CreateTestProduct(t *testing.T, token string, name string, brandID, lineID uint) uint {
	t.Helper()

	productReq := map[string]interface{}{
		"sku":         GenerateTestSKU("TST"),
		"name":        name,
		"description": "集成测试用配件",
		"oem_code":    "45022-S5A-010",
		"brand_id":    brandID,
		"line_id":     lineID,
	}

	productResp := PostJSON(t, BaseURL+"/products", productReq, token)
	require.Equal(t, 0, productResp.Code, "商品建档失败: %s", productResp.Message)

	var productData ProductData
	err := json.Unmarshal(productResp.Data, &productData)
	require.NoError(t, err, "解析商品响应失败")

	return productData.ID
}
