package game

import "math"

// resolvePlatforms 离散 AABB 修正：沿穿透最小的轴推出。
// 每 tick 只做一次位置校正，不是连续碰撞检测，高速下可能穿透。
// 垂直穿透严格小于水平穿透才按垂直处理，相等时水平推出（客户端可观察到）。
func resolvePlatforms(c *Combatant, platforms []Rect) {
	c.Grounded = false
	for _, pl := range platforms {
		if !c.Bounds().Overlaps(pl) {
			continue
		}
		overlapLeft := c.X + c.W - pl.X
		overlapRight := pl.X + pl.W - c.X
		overlapTop := c.Y + c.H - pl.Y
		overlapBottom := pl.Y + pl.H - c.Y

		minH := math.Min(overlapLeft, overlapRight)
		minV := math.Min(overlapTop, overlapBottom)
		if minV < minH {
			if overlapTop < overlapBottom {
				c.Y = pl.Y - c.H
				c.Grounded = true
			} else {
				c.Y = pl.Y + pl.H
			}
			c.VY = 0
		} else {
			if overlapLeft < overlapRight {
				c.X = pl.X - c.W
			} else {
				c.X = pl.X + pl.W
			}
			c.VX = 0
		}
	}
}

func bulletHitsPlatform(x, y float64, platforms []Rect) bool {
	for _, pl := range platforms {
		if pl.ContainsPoint(x, y) {
			return true
		}
	}
	return false
}
