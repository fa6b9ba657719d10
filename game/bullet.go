package game

import "math"

// Bullet 飞行中的子弹
type Bullet struct {
	X, Y      float64
	VX, VY    float64
	Owner     int // 发射者槽位
	Damage    float64
	Explosive bool
	Flame     bool
	Life      int
}

// fire 按武器的弹丸数生成子弹，每颗在散布范围内随机偏转
func (w *World) fire(c *Combatant, spec WeaponSpec) {
	pellets := spec.Pellets
	if pellets < 1 {
		pellets = 1
	}
	life := spec.Life
	if life <= 0 {
		life = 120
	}
	cx, cy := c.Center()
	ox := cx + math.Cos(c.AimAngle)*MuzzleOffset
	oy := cy + math.Sin(c.AimAngle)*MuzzleOffset
	for n := 0; n < pellets; n++ {
		angle := c.AimAngle + (w.rng.Float64()-0.5)*spec.Spread*2
		w.Bullets = append(w.Bullets, Bullet{
			X:         ox,
			Y:         oy,
			VX:        math.Cos(angle) * spec.Speed,
			VY:        math.Sin(angle) * spec.Speed,
			Owner:     c.Slot,
			Damage:    spec.Damage,
			Explosive: spec.Explosive,
			Flame:     spec.Flame,
			Life:      life,
		})
	}
}

// stepBullets 推进全部子弹并处理碰撞，原地过滤掉已销毁的子弹
func (w *World) stepBullets() {
	kept := w.Bullets[:0]
	for _, b := range w.Bullets {
		if w.advanceBullet(&b) {
			kept = append(kept, b)
		}
	}
	w.Bullets = kept
}

// advanceBullet 返回 false 表示子弹本 tick 被销毁。
// 命中战斗者优先于命中平台，同一 tick 内两者互斥。
func (w *World) advanceBullet(b *Bullet) bool {
	if b.Flame {
		b.X += b.VX + (w.rng.Float64()-0.5)*FlameJitter
		b.Y += b.VY + (w.rng.Float64()-0.5)*FlameJitter
		b.VY += FlameDrift
	} else {
		b.X += b.VX
		b.Y += b.VY
	}
	b.Life--
	if b.X < 0 || b.X > w.Arena.Width || b.Y < 0 || b.Y > w.Arena.Height || b.Life <= 0 {
		return false
	}

	for i, c := range w.Combatants {
		if c.Dead || c.Slot == b.Owner {
			continue
		}
		if !c.Bounds().ContainsPoint(b.X, b.Y) {
			continue
		}
		dmg := b.Damage
		if b.Y < c.Y+c.H*HeadshotZone {
			dmg *= HeadshotFactor
		}
		c.Damage(dmg)
		c.FlashTimer = HitFlashTicks
		if b.Explosive {
			w.explode(b.X, b.Y, b.Owner)
		}
		w.checkDeath(i)
		return false
	}

	if bulletHitsPlatform(b.X, b.Y, w.Arena.Platforms) {
		if b.Explosive {
			w.explode(b.X, b.Y, b.Owner)
		}
		return false
	}
	return true
}

// explode 范围伤害：距离越近伤害与冲量越大，发射者本人不受影响
func (w *World) explode(x, y float64, owner int) {
	for i, c := range w.Combatants {
		if c.Dead || c.Slot == owner {
			continue
		}
		cx, cy := c.Center()
		dist := distance(cx, cy, x, y)
		if dist >= ExplosionRadius {
			continue
		}
		f := 1 - dist/ExplosionRadius
		c.Damage(ExplosionDamage * f)
		c.VY -= ExplosionLift * f
		dir := -1.0
		if cx-x > 0 {
			dir = 1
		}
		c.VX += dir * ExplosionPush * f
		c.FlashTimer = BlastFlashTicks
		w.checkDeath(i)
	}
}
