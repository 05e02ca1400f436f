package services

import (
	"renthub/internal/models"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// 搜索排序方式
const (
	SortByName     = "name"      // 名称升序（默认）
	SortByRentAsc  = "rent_asc"  // 最低租金升序
	SortByRentDesc = "rent_desc" // 最低租金降序
	SortByRating   = "rating"    // 平均评分降序
)

// SearchParams 房产搜索条件
type SearchParams struct {
	Keyword string           // 名称/地址子串，不区分大小写
	MinRent *decimal.Decimal // 租金区间下限，缺省不限
	MaxRent *decimal.Decimal // 租金区间上限，缺省不限
	SortBy  string
}

// rentRange 可租单元的租金区间
func rentRange(p *models.Property) (min, max decimal.Decimal, ok bool) {
	available := p.AvailableUnits()
	if len(available) == 0 {
		return decimal.Zero, decimal.Zero, false
	}
	min = available[0].RentAmount
	max = available[0].RentAmount
	for _, u := range available[1:] {
		if u.RentAmount.LessThan(min) {
			min = u.RentAmount
		}
		if u.RentAmount.GreaterThan(max) {
			max = u.RentAmount
		}
	}
	return min, max, true
}

// matchKeyword 名称或地址包含关键字（不区分大小写），空关键字恒为真
func matchKeyword(p *models.Property, keyword string) bool {
	if keyword == "" {
		return true
	}
	keyword = strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(p.Name), keyword) ||
		strings.Contains(strings.ToLower(p.Address), keyword)
}

// SearchProperties 内存过滤房产列表
// 规则：无可租单元的房产一律排除；可租单元租金区间与请求区间相交才保留；
// 每次请求全量重算，不分页
func SearchProperties(properties []models.Property, params SearchParams) []models.Property {
	filtered := make([]models.Property, 0, len(properties))

	for i := range properties {
		p := &properties[i]

		if !matchKeyword(p, params.Keyword) {
			continue
		}

		min, max, ok := rentRange(p)
		if !ok {
			continue
		}

		// 区间相交判定：min <= 请求上限 且 max >= 请求下限
		if params.MaxRent != nil && min.GreaterThan(*params.MaxRent) {
			continue
		}
		if params.MinRent != nil && max.LessThan(*params.MinRent) {
			continue
		}

		filtered = append(filtered, *p)
	}

	sortProperties(filtered, params.SortBy)
	return filtered
}

// sortProperties 按选定排序键稳定排序
func sortProperties(properties []models.Property, sortBy string) {
	switch sortBy {
	case SortByRentAsc:
		sort.SliceStable(properties, func(i, j int) bool {
			mi, _, _ := rentRange(&properties[i])
			mj, _, _ := rentRange(&properties[j])
			return mi.LessThan(mj)
		})
	case SortByRentDesc:
		sort.SliceStable(properties, func(i, j int) bool {
			mi, _, _ := rentRange(&properties[i])
			mj, _, _ := rentRange(&properties[j])
			return mi.GreaterThan(mj)
		})
	case SortByRating:
		sort.SliceStable(properties, func(i, j int) bool {
			return properties[i].AverageRating() > properties[j].AverageRating()
		})
	default:
		sort.SliceStable(properties, func(i, j int) bool {
			return strings.ToLower(properties[i].Name) < strings.ToLower(properties[j].Name)
		})
	}
}
