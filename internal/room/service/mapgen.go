package service

import (
	"fmt"

	"IslandConquest/internal/room/app"
	"IslandConquest/internal/room/entity"
)

const (
	landProbability = 0.55
	smoothPasses    = 4
	smoothThreshold = 5
)

// GenerateMap 元胞自动机生成岛屿，再拒绝采样放置资源点。
// 同一随机序列得到相同结果；陆地不足以放下全部资源点时直接失败。
func GenerateMap(rng Rand, rows, cols, points int) (*entity.Grid, []entity.ResourcePoint, error) {
	if rows <= 0 || cols <= 0 {
		return nil, nil, app.ErrMapGeneration.WithCause(fmt.Errorf("invalid size %dx%d", rows, cols))
	}
	land := make([]bool, rows*cols)
	for i := range land {
		land[i] = rng.Float64() < landProbability
	}
	for pass := 0; pass < smoothPasses; pass++ {
		land = smooth(land, rows, cols)
	}

	g := entity.NewGrid(rows, cols)
	landCount := 0
	for i, l := range land {
		if l {
			g.SetLand(g.CoordOf(i), true)
			landCount++
		}
	}
	if landCount < points {
		return nil, nil, app.ErrMapGeneration.WithCause(fmt.Errorf("land %d < resource points %d", landCount, points))
	}

	rps, err := placeResourcePoints(rng, g, points)
	if err != nil {
		return nil, nil, err
	}
	return g, rps, nil
}

// smooth 读上一轮结果写新数组。
func smooth(prev []bool, rows, cols int) []bool {
	next := make([]bool, len(prev))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			n := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					rr, cc := r+dr, c+dc
					if rr < 0 || rr >= rows || cc < 0 || cc >= cols {
						continue
					}
					if prev[rr*cols+cc] {
						n++
					}
				}
			}
			next[r*cols+c] = n >= smoothThreshold
		}
	}
	return next
}

func placeResourcePoints(rng Rand, g *entity.Grid, points int) ([]entity.ResourcePoint, error) {
	out := make([]entity.ResourcePoint, 0, points)
	taken := make(map[entity.Coord]struct{}, points)
	maxAttempts := points * g.Len() * 4
	for attempt := 0; len(out) < points; attempt++ {
		if attempt >= maxAttempts {
			return nil, app.ErrMapGeneration.WithCause(fmt.Errorf("placed %d/%d resource points after %d attempts", len(out), points, attempt))
		}
		c := entity.At(rng.IntN(g.Rows()), rng.IntN(g.Cols()))
		if !g.IsLand(c) {
			continue
		}
		if _, dup := taken[c]; dup {
			continue
		}
		taken[c] = struct{}{}
		cat := entity.PointCategories[rng.IntN(len(entity.PointCategories))]
		out = append(out, entity.ResourcePoint{Coord: c, Category: cat})
	}
	return out, nil
}
