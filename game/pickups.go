package game

import "math"

// Pickup 地图拾取物（武器或血包），每场比赛各自独立计时
type Pickup struct {
	X, Y    float64
	Weapon  WeaponKind
	Taken   bool
	Respawn int
}

func (p *Pickup) take(respawn int) {
	p.Taken = true
	p.Respawn = respawn
}

// Tick 推进重生倒计时，归零时重新可用
func (p *Pickup) Tick() {
	if !p.Taken {
		return
	}
	p.Respawn--
	if p.Respawn <= 0 {
		p.Respawn = 0
		p.Taken = false
	}
}

func pickupsFrom(spots []Spot) []Pickup {
	out := make([]Pickup, len(spots))
	for i, s := range spots {
		out[i] = Pickup{X: s.X, Y: s.Y, Weapon: s.Weapon}
	}
	return out
}

// stepPickups 推进重生计时并发放拾取物；同一 tick 内范围内的每个存活者都能获得
func (w *World) stepPickups() {
	for i := range w.WeaponPickups {
		pk := &w.WeaponPickups[i]
		if pk.Taken {
			pk.Tick()
			continue
		}
		granted := false
		for _, c := range w.Combatants {
			if c.Dead {
				continue
			}
			cx, _ := c.Center()
			if math.Abs(cx-pk.X) < WeaponPickupDist && math.Abs(c.Y+c.H-pk.Y) < WeaponPickupDist {
				c.equip(pk.Weapon)
				granted = true
			}
		}
		if granted {
			pk.take(WeaponRespawn)
		}
	}

	for i := range w.HealthPickups {
		pk := &w.HealthPickups[i]
		if pk.Taken {
			pk.Tick()
			continue
		}
		granted := false
		for _, c := range w.Combatants {
			if c.Dead {
				continue
			}
			cx, cy := c.Center()
			if math.Abs(cx-pk.X) < HealthPickupDist && math.Abs(cy-pk.Y) < HealthPickupDist {
				c.Heal(HealAmount)
				granted = true
			}
		}
		if granted {
			pk.take(HealthRespawn)
		}
	}
}
