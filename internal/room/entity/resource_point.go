package entity

import "IslandConquest/internal/game/domain"

// PointCategory 资源点类别：每回合产出 fund 加一种副资源。
type PointCategory string

const (
	PointFood  PointCategory = "fundfood"
	PointSteel PointCategory = "fundsteel"
	PointOil   PointCategory = "fundoil"
)

var PointCategories = [...]PointCategory{PointFood, PointSteel, PointOil}

const pointFundYield = 120

// Yield 资源点每回合产出。
func (c PointCategory) Yield() (fund int, secondary domain.Resource, amount int) {
	switch c {
	case PointFood:
		return pointFundYield, domain.Food, 40
	case PointSteel:
		return pointFundYield, domain.Steel, 30
	case PointOil:
		return pointFundYield, domain.Oil, 25
	default:
		return 0, "", 0
	}
}

// ResourcePoint 地图生成时放置，之后不变。
type ResourcePoint struct {
	Coord
	Category PointCategory `json:"type"`
}
