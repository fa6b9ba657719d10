package game

import "math"

// stepCombatant 推进第 i 个槽位一个 tick；对手通过下标 1-i 访问
func (w *World) stepCombatant(i int, in Input) {
	c := w.Combatants[i]
	if c.Dead {
		c.RespawnTimer--
		if c.RespawnTimer <= 0 {
			w.respawn(i)
		}
		return
	}
	other := w.Combatants[1-i]

	// 水平移动：按住方向加速到上限，松开时指数衰减
	if in.Left {
		c.VX = math.Max(c.VX-MoveAccel, -MoveSpeed)
		c.Facing = -1
	}
	if in.Right {
		c.VX = math.Min(c.VX+MoveAccel, MoveSpeed)
		c.Facing = 1
	}
	if !in.Left && !in.Right {
		c.VX *= GroundDecay
	}
	if in.Jump && c.Grounded {
		c.VY = JumpForce
	}

	if in.Jetpack && c.Fuel > 0 {
		c.VY -= JetpackForce
		if in.Left {
			c.VX -= JetpackSteer
		}
		if in.Right {
			c.VX += JetpackSteer
		}
		c.Fuel = math.Max(0, c.Fuel-FuelDrain)
		c.JetpackFlame = JetFlameTicks
	} else {
		c.Fuel = math.Min(MaxFuel, c.Fuel+FuelRegen)
		if c.JetpackFlame > 0 {
			c.JetpackFlame--
		}
	}

	c.VY = math.Min(c.VY+Gravity, TerminalVelocity)
	c.X += c.VX
	c.Y += c.VY
	resolvePlatforms(c, w.Arena.Platforms)

	// 自动瞄准对手
	c.AimAngle = math.Atan2(other.Y-c.Y, other.X-c.X)

	w.stepWeapon(c, in)

	if in.Left || in.Right {
		c.LegPhase += LegPhaseStep
	}
	if c.FlashTimer > 0 {
		c.FlashTimer--
	}
	c.X = clamp(c.X, WallMargin, w.Arena.Width-c.W-WallMargin)
	if c.Y > w.Arena.Height {
		c.Health = 0
		w.checkDeath(i)
	}
}

// stepWeapon 射击状态机：冷却、换弹、开火、手动换弹、切换武器
func (w *World) stepWeapon(c *Combatant, in Input) {
	spec := Spec(c.Weapon)

	if c.ReloadTimer > 0 {
		c.ReloadTimer--
		if c.ReloadTimer == 0 && !spec.Infinite() {
			c.Ammo = spec.Ammo
		}
	} else if c.Ammo == 0 && !spec.Infinite() {
		c.Ammo = spec.Ammo
	}
	if c.FireTimer > 0 {
		c.FireTimer--
	}

	if in.Fire && c.FireTimer <= 0 && !c.Reloading() && (spec.Infinite() || c.Ammo > 0) {
		w.fire(c, spec)
		c.FireTimer = spec.FireRate
		if !spec.Infinite() {
			c.Ammo--
			if c.Ammo == 0 {
				c.ReloadTimer = spec.ReloadTime
			}
		}
	}

	if in.Reload && !spec.Infinite() && !c.Reloading() && c.Ammo < spec.Ammo {
		c.ReloadTimer = spec.ReloadTime
		c.Ammo = 0
	}

	// 只在按下沿切换一次，按住不放不会连续切换
	if in.Weapon && !c.weaponHeld {
		c.weaponHeld = true
		c.cycleWeapon()
	}
	if !in.Weapon {
		c.weaponHeld = false
	}
}
