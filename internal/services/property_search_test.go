package services

import (
	"testing"

	"renthub/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func buildProperty(name, address string, rents []int64, available []bool) models.Property {
	p := models.Property{Name: name, Address: address}
	for i, rent := range rents {
		p.Units = append(p.Units, models.Unit{
			RentAmount:  decimal.NewFromInt(rent),
			IsAvailable: available[i],
		})
	}
	return p
}

func TestSearchPropertiesKeyword(t *testing.T) {
	properties := []models.Property{
		buildProperty("阳光公寓", "长安街1号", []int64{2000}, []bool{true}),
		buildProperty("Sunset Apartments", "Ocean Drive 5", []int64{1800}, []bool{true}),
	}

	result := SearchProperties(properties, SearchParams{Keyword: "sunset"})
	require.Len(t, result, 1)
	assert.Equal(t, "Sunset Apartments", result[0].Name)

	// 地址也参与匹配
	result = SearchProperties(properties, SearchParams{Keyword: "长安街"})
	require.Len(t, result, 1)
	assert.Equal(t, "阳光公寓", result[0].Name)

	// 空关键字不过滤
	result = SearchProperties(properties, SearchParams{})
	assert.Len(t, result, 2)
}

func TestSearchPropertiesExcludesFullyOccupied(t *testing.T) {
	properties := []models.Property{
		buildProperty("满租小区", "路1号", []int64{2000, 2500}, []bool{false, false}),
		buildProperty("有空房小区", "路2号", []int64{2000, 2500}, []bool{false, true}),
	}

	result := SearchProperties(properties, SearchParams{})

	require.Len(t, result, 1)
	assert.Equal(t, "有空房小区", result[0].Name)
}

func TestSearchPropertiesRentRangeIntersection(t *testing.T) {
	// 可租单元区间 [600, 1000]，满租单元不参与区间计算
	properties := []models.Property{
		buildProperty("测试楼", "路3号", []int64{600, 1000, 300}, []bool{true, true, false}),
	}

	// 请求区间 [500, 900] 与 [600, 1000] 相交，保留
	result := SearchProperties(properties, SearchParams{MinRent: decimalPtr(500), MaxRent: decimalPtr(900)})
	assert.Len(t, result, 1)

	// 请求区间 [1000, 2000]，恰好在上边界相交
	result = SearchProperties(properties, SearchParams{MinRent: decimalPtr(1000), MaxRent: decimalPtr(2000)})
	assert.Len(t, result, 1)

	// 请求区间 [1100, 2000] 不相交，排除
	result = SearchProperties(properties, SearchParams{MinRent: decimalPtr(1100), MaxRent: decimalPtr(2000)})
	assert.Empty(t, result)

	// 请求区间上限低于最低租金，排除
	result = SearchProperties(properties, SearchParams{MaxRent: decimalPtr(500)})
	assert.Empty(t, result)

	// 只给下限
	result = SearchProperties(properties, SearchParams{MinRent: decimalPtr(800)})
	assert.Len(t, result, 1)
}

func TestSearchPropertiesSort(t *testing.T) {
	properties := []models.Property{
		buildProperty("Beta", "路1号", []int64{3000}, []bool{true}),
		buildProperty("alpha", "路2号", []int64{1000}, []bool{true}),
		buildProperty("Gamma", "路3号", []int64{2000}, []bool{true}),
	}

	// 默认按名称升序（不区分大小写）
	result := SearchProperties(properties, SearchParams{})
	require.Len(t, result, 3)
	assert.Equal(t, "alpha", result[0].Name)
	assert.Equal(t, "Beta", result[1].Name)
	assert.Equal(t, "Gamma", result[2].Name)

	// 最低租金升序
	result = SearchProperties(properties, SearchParams{SortBy: SortByRentAsc})
	assert.Equal(t, "alpha", result[0].Name)
	assert.Equal(t, "Beta", result[2].Name)

	// 最低租金降序
	result = SearchProperties(properties, SearchParams{SortBy: SortByRentDesc})
	assert.Equal(t, "Beta", result[0].Name)
	assert.Equal(t, "alpha", result[2].Name)
}

func TestSearchPropertiesSortByRating(t *testing.T) {
	high := buildProperty("高分", "路1号", []int64{1000}, []bool{true})
	high.Ratings = []models.PropertyRating{{Rating: 5}, {Rating: 4}}
	low := buildProperty("低分", "路2号", []int64{1000}, []bool{true})
	low.Ratings = []models.PropertyRating{{Rating: 2}}

	result := SearchProperties([]models.Property{low, high}, SearchParams{SortBy: SortByRating})

	require.Len(t, result, 2)
	assert.Equal(t, "高分", result[0].Name)
}
