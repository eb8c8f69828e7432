package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 商品模块集成测试
// 覆盖建档、列表、聚合信息和批量上下架的完整API流程。

// TestProductCreate 测试商品建档
func TestProductCreate(t *testing.T) {
	_, token := RegisterTestUser(t, "product_admin")
	brandID, lineID := CreateTestBrandLine(t, token)

	t.Run("正常建档", func(t *testing.T) {
		sku := GenerateTestSKU("BRK")
		productReq := map[string]interface{}{
			"sku":         sku,
			"name":        "前刹车片",
			"description": "陶瓷材质，低粉尘",
			"oem_code":    "45022-S5A-010",
			"brand_id":    brandID,
			"line_id":     lineID,
		}

		resp := PostJSON(t, BaseURL+"/products", productReq, token)

		assert.Equal(t, 0, resp.Code, "建档应该成功: %s", resp.Message)

		var data ProductData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析商品响应失败")

		assert.NotZero(t, data.ID, "商品ID应该大于0")
		assert.Equal(t, sku, data.SKU, "返回的SKU应该与请求一致")
		assert.True(t, data.Active, "新商品默认上架")

		t.Logf("✓ 建档成功，商品ID: %d", data.ID)
	})

	t.Run("重复SKU应失败", func(t *testing.T) {
		sku := GenerateTestSKU("DUP")
		productReq := map[string]interface{}{
			"sku":      sku,
			"name":     "机油滤清器",
			"brand_id": brandID,
			"line_id":  lineID,
		}

		resp1 := PostJSON(t, BaseURL+"/products", productReq, token)
		require.Equal(t, 0, resp1.Code, "第一次建档应该成功")

		resp2 := PostJSON(t, BaseURL+"/products", productReq, token)
		assert.NotEqual(t, 0, resp2.Code, "重复SKU建档应该失败")

		t.Logf("✓ 重复SKU正确返回错误: %s", resp2.Message)
	})

	t.Run("非法SKU格式应失败", func(t *testing.T) {
		productReq := map[string]interface{}{
			"sku":      "bad sku!", // 小写+空格，非法
			"name":     "空气滤清器",
			"brand_id": brandID,
			"line_id":  lineID,
		}

		resp := PostJSON(t, BaseURL+"/products", productReq, token)

		assert.NotEqual(t, 0, resp.Code, "非法SKU应该失败")

		t.Logf("✓ 非法SKU正确返回错误: %s", resp.Message)
	})

	t.Run("品牌不存在应失败", func(t *testing.T) {
		productReq := map[string]interface{}{
			"sku":      GenerateTestSKU("NOB"),
			"name":     "火花塞",
			"brand_id": 99999999,
			"line_id":  lineID,
		}

		resp := PostJSON(t, BaseURL+"/products", productReq, token)

		assert.NotEqual(t, 0, resp.Code, "品牌不存在应该失败")

		t.Logf("✓ 品牌不存在正确返回错误: %s", resp.Message)
	})
}

// TestProductList 测试商品列表（公开接口）
func TestProductList(t *testing.T) {
	_, token := RegisterTestUser(t, "list_admin")
	brandID, lineID := CreateTestBrandLine(t, token)

	// 建档3个商品
	for i := 0; i < 3; i++ {
		CreateTestProduct(t, token, fmt.Sprintf("列表商品%d", i), brandID, lineID)
	}

	t.Run("按产品线过滤", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/products?line_id=%d&page=1&page_size=10", BaseURL, lineID), "")

		assert.Equal(t, 0, resp.Code, "列表查询应该成功: %s", resp.Message)

		var page ProductListData
		err := json.Unmarshal(resp.Data, &page)
		require.NoError(t, err, "解析分页响应失败")

		assert.Equal(t, int64(3), page.Total, "该产品线下应有3个商品")
		assert.Equal(t, 1, page.Page)

		t.Logf("✓ 列表查询成功，总数: %d", page.Total)
	})

	t.Run("分页参数生效", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/products?line_id=%d&page=1&page_size=2", BaseURL, lineID), "")

		assert.Equal(t, 0, resp.Code)

		var page ProductListData
		err := json.Unmarshal(resp.Data, &page)
		require.NoError(t, err)

		assert.Equal(t, int64(3), page.Total, "总数不受分页影响")
		assert.Equal(t, 2, page.PageSize)
		assert.Equal(t, 2, page.TotalPages, "3条记录每页2条应为2页")

		t.Log("✓ 分页参数生效")
	})
}

// TestProductInfo 测试商品聚合信息（公开接口）
func TestProductInfo(t *testing.T) {
	_, token := RegisterTestUser(t, "info_admin")
	brandID, lineID := CreateTestBrandLine(t, token)
	productID := CreateTestProduct(t, token, "聚合测试商品", brandID, lineID)

	t.Run("未定价商品价格为零", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/products/%d/info", BaseURL, productID), "")

		assert.Equal(t, 0, resp.Code, "聚合查询应该成功: %s", resp.Message)

		var info ProductInfoData
		err := json.Unmarshal(resp.Data, &info)
		require.NoError(t, err, "解析聚合响应失败")

		assert.Equal(t, productID, info.ID)
		assert.Equal(t, "0.00", info.Price, "无价格历史时价格为零")
		assert.Equal(t, 0, info.Stock, "无库存记录时库存为零")
		assert.NotEmpty(t, info.Brand, "应带出品牌名称")
		assert.NotEmpty(t, info.Line, "应带出产品线名称")

		t.Logf("✓ 聚合信息正确: brand=%s line=%s", info.Brand, info.Line)
	})

	t.Run("商品不存在返回错误", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/products/99999999/info", "")

		assert.NotEqual(t, 0, resp.Code, "商品不存在应该失败")

		t.Logf("✓ 商品不存在正确返回错误: %s", resp.Message)
	})
}

// TestBulkUpdateStatus 测试批量上下架
func TestBulkUpdateStatus(t *testing.T) {
	_, token := RegisterTestUser(t, "bulk_admin")
	brandID, lineID := CreateTestBrandLine(t, token)

	id1 := CreateTestProduct(t, token, "批量商品A", brandID, lineID)
	id2 := CreateTestProduct(t, token, "批量商品B", brandID, lineID)

	t.Run("批量下架后聚合信息反映新状态", func(t *testing.T) {
		bulkReq := map[string]interface{}{
			"product_ids": []uint{id1, id2},
			"line_ids":    []uint{lineID},
			"active":      false,
		}

		resp := PostJSON(t, BaseURL+"/products/bulk-status", bulkReq, token)
		assert.Equal(t, 0, resp.Code, "批量下架应该成功: %s", resp.Message)

		// 缓存应已失效，聚合信息立即反映下架状态
		infoResp := GetJSON(t, fmt.Sprintf("%s/products/%d/info", BaseURL, id1), "")
		require.Equal(t, 0, infoResp.Code)

		var info ProductInfoData
		err := json.Unmarshal(infoResp.Data, &info)
		require.NoError(t, err)

		assert.False(t, info.Active, "下架后聚合信息应显示Inactive")

		t.Log("✓ 批量下架生效，缓存无陈旧状态")
	})

	t.Run("空ID集合应失败", func(t *testing.T) {
		bulkReq := map[string]interface{}{
			"product_ids": []uint{},
			"active":      true,
		}

		resp := PostJSON(t, BaseURL+"/products/bulk-status", bulkReq, token)

		assert.NotEqual(t, 0, resp.Code, "空ID集合应该失败")

		t.Logf("✓ 空ID集合正确返回错误: %s", resp.Message)
	})
}
