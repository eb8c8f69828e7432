package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 价格与库存集成测试
// 重点验证写操作之后聚合信息立即反映新值——即写后缓存失效生效，
// 读接口不会返回陈旧快照。

// TestRecordPrice 测试调价与缓存失效
func TestRecordPrice(t *testing.T) {
	_, token := RegisterTestUser(t, "price_admin")
	brandID, lineID := CreateTestBrandLine(t, token)
	productID := CreateTestProduct(t, token, "调价测试商品", brandID, lineID)

	infoURL := fmt.Sprintf("%s/products/%d/info", BaseURL, productID)
	priceURL := fmt.Sprintf("%s/products/%d/price", BaseURL, productID)

	t.Run("首次调价后聚合信息反映新价格", func(t *testing.T) {
		// 先读一次，让快照进入缓存
		warmup := GetJSON(t, infoURL, "")
		require.Equal(t, 0, warmup.Code)

		// 调价（展示价按千位取整：12380 → 12000）
		priceReq := map[string]string{
			"price":           "12380",
			"min_final_price": "10000",
			"unit_cost":       "8000",
		}
		resp := PostJSON(t, priceURL, priceReq, token)
		assert.Equal(t, 0, resp.Code, "调价应该成功: %s", resp.Message)

		var rec PriceRecordData
		err := json.Unmarshal(resp.Data, &rec)
		require.NoError(t, err, "解析价格记录失败")
		assert.Equal(t, productID, rec.ProductID)

		// 缓存应已失效，聚合信息立即反映新价格
		infoResp := GetJSON(t, infoURL, "")
		require.Equal(t, 0, infoResp.Code)

		var info ProductInfoData
		err = json.Unmarshal(infoResp.Data, &info)
		require.NoError(t, err)

		assert.Equal(t, "12000.00", info.Price, "调价后聚合信息应为千位取整的新价格")

		t.Logf("✓ 调价生效，聚合价格: %s", info.Price)
	})

	t.Run("再次调价以最新记录为准", func(t *testing.T) {
		priceReq := map[string]string{
			"price":           "15800",
			"min_final_price": "13000",
			"unit_cost":       "9500",
		}
		resp := PostJSON(t, priceURL, priceReq, token)
		require.Equal(t, 0, resp.Code, "二次调价失败: %s", resp.Message)

		infoResp := GetJSON(t, infoURL, "")
		require.Equal(t, 0, infoResp.Code)

		var info ProductInfoData
		err := json.Unmarshal(infoResp.Data, &info)
		require.NoError(t, err)

		assert.Equal(t, "16000.00", info.Price, "最新价格记录应胜出")

		t.Log("✓ 最新记录胜出")
	})

	t.Run("价格历史按时间倒序", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/products/%d/price-history?limit=10", BaseURL, productID), token)

		assert.Equal(t, 0, resp.Code, "价格历史查询失败: %s", resp.Message)

		var records []PriceRecordData
		err := json.Unmarshal(resp.Data, &records)
		require.NoError(t, err, "解析价格历史失败")

		require.Len(t, records, 2, "应有2条价格记录")
		assert.Equal(t, "16000", records[0].Price, "最新记录排最前")

		t.Logf("✓ 价格历史共%d条", len(records))
	})

	t.Run("非法金额应失败", func(t *testing.T) {
		priceReq := map[string]string{
			"price":           "abc",
			"min_final_price": "10000",
			"unit_cost":       "8000",
		}
		resp := PostJSON(t, priceURL, priceReq, token)

		assert.NotEqual(t, 0, resp.Code, "非法金额应该失败")

		t.Logf("✓ 非法金额正确返回错误: %s", resp.Message)
	})
}

// TestAdjustStock 测试库存变动与缓存失效
func TestAdjustStock(t *testing.T) {
	_, token := RegisterTestUser(t, "stock_admin")
	brandID, lineID := CreateTestBrandLine(t, token)
	productID := CreateTestProduct(t, token, "库存测试商品", brandID, lineID)

	infoURL := fmt.Sprintf("%s/products/%d/info", BaseURL, productID)
	stockURL := fmt.Sprintf("%s/products/%d/stock", BaseURL, productID)

	t.Run("入库后聚合库存更新", func(t *testing.T) {
		// 预热缓存
		warmup := GetJSON(t, infoURL, "")
		require.Equal(t, 0, warmup.Code)

		stockReq := map[string]interface{}{
			"agency_id": 1,
			"type":      "IN",
			"quantity":  10,
			"reference": "PO-20260831-001",
		}
		resp := PostJSON(t, stockURL, stockReq, token)
		assert.Equal(t, 0, resp.Code, "入库应该成功: %s", resp.Message)

		var movement StockMovementData
		err := json.Unmarshal(resp.Data, &movement)
		require.NoError(t, err)
		assert.Equal(t, 10, movement.CurrentStock, "入库后该门店库存为10")

		infoResp := GetJSON(t, infoURL, "")
		require.Equal(t, 0, infoResp.Code)

		var info ProductInfoData
		err = json.Unmarshal(infoResp.Data, &info)
		require.NoError(t, err)

		assert.Equal(t, 10, info.Stock, "聚合库存应反映入库")

		t.Logf("✓ 入库生效，聚合库存: %d", info.Stock)
	})

	t.Run("出库超过现存量应失败", func(t *testing.T) {
		stockReq := map[string]interface{}{
			"agency_id": 1,
			"type":      "OUT",
			"quantity":  999,
		}
		resp := PostJSON(t, stockURL, stockReq, token)

		assert.NotEqual(t, 0, resp.Code, "超量出库应该失败")

		t.Logf("✓ 超量出库正确返回错误: %s", resp.Message)
	})

	t.Run("多门店库存汇总", func(t *testing.T) {
		// 第二个门店入库5件
		stockReq := map[string]interface{}{
			"agency_id": 2,
			"type":      "IN",
			"quantity":  5,
		}
		resp := PostJSON(t, stockURL, stockReq, token)
		require.Equal(t, 0, resp.Code, "第二门店入库失败: %s", resp.Message)

		infoResp := GetJSON(t, infoURL, "")
		require.Equal(t, 0, infoResp.Code)

		var info ProductInfoData
		err := json.Unmarshal(infoResp.Data, &info)
		require.NoError(t, err)

		assert.Equal(t, 15, info.Stock, "聚合库存应为两门店之和")

		t.Logf("✓ 多门店汇总正确: %d", info.Stock)
	})

	t.Run("库存流水可查", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/products/%d/stock-ledger?limit=10", BaseURL, productID), token)

		assert.Equal(t, 0, resp.Code, "库存流水查询失败: %s", resp.Message)

		var movements []json.RawMessage
		err := json.Unmarshal(resp.Data, &movements)
		require.NoError(t, err, "解析库存流水失败")

		assert.GreaterOrEqual(t, len(movements), 2, "应至少有两条流水记录")

		t.Logf("✓ 库存流水共%d条", len(movements))
	})
}
