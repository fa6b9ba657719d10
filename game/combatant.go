package game

import "math"

// Combatant 每个槽位一名战斗者，服务端权威状态
type Combatant struct {
	Slot int // 1 或 2

	X, Y   float64
	VX, VY float64
	W, H   float64

	Health   float64
	Fuel     float64
	Grounded bool

	Dead         bool
	RespawnTimer int
	Kills        int

	Facing   int
	AimAngle float64

	Weapon     WeaponKind
	Ammo       int
	Carried    []WeaponKind
	AmmoMemory map[WeaponKind]int

	ReloadTimer int
	FireTimer   int

	LegPhase     float64
	JetpackFlame int
	FlashTimer   int

	weaponHeld bool
}

func newCombatant(slot int, spawn SpawnPoint) *Combatant {
	c := &Combatant{
		Slot:     slot,
		W:        CombatantWidth,
		H:        CombatantHeight,
		Facing:   spawn.Facing,
		AimAngle: spawn.Aim,
	}
	c.reset(spawn)
	return c
}

// reset 恢复出生状态：满血满油，只带手枪
func (c *Combatant) reset(spawn SpawnPoint) {
	c.X, c.Y = spawn.X, spawn.Y
	c.VX, c.VY = 0, 0
	c.Health = MaxHealth
	c.Fuel = MaxFuel
	c.Dead = false
	c.RespawnTimer = 0
	c.Weapon = Pistol
	c.Ammo = InfiniteAmmo
	c.Carried = []WeaponKind{Pistol}
	c.AmmoMemory = map[WeaponKind]int{Pistol: InfiniteAmmo}
	c.ReloadTimer = 0
	c.FireTimer = 0
}

// Bounds 当前包围盒
func (c *Combatant) Bounds() Rect {
	return Rect{X: c.X, Y: c.Y, W: c.W, H: c.H}
}

// Center 包围盒中心
func (c *Combatant) Center() (float64, float64) {
	return c.X + c.W/2, c.Y + c.H/2
}

// Damage 扣血，血量钳制在 [0, MaxHealth]
func (c *Combatant) Damage(amount float64) {
	c.Health = clamp(c.Health-amount, 0, MaxHealth)
}

// Heal 回血，不超过上限
func (c *Combatant) Heal(amount float64) {
	c.Health = clamp(c.Health+amount, 0, MaxHealth)
}

// Reloading 是否处于换弹中
func (c *Combatant) Reloading() bool { return c.ReloadTimer > 0 }

// Carries 是否携带该武器
func (c *Combatant) Carries(k WeaponKind) bool {
	for _, w := range c.Carried {
		if w == k {
			return true
		}
	}
	return false
}

// RememberedAmmo 返回某武器记住的弹药数，未记录时为该武器的满弹匣
func RememberedAmmo(memory map[WeaponKind]int, k WeaponKind) int {
	if n, ok := memory[k]; ok {
		return n
	}
	return Spec(k).Ammo
}

// equip 装备武器：先记住当前武器的弹药，再切换并恢复目标武器的弹药
func (c *Combatant) equip(k WeaponKind) {
	c.AmmoMemory[c.Weapon] = c.Ammo
	if !c.Carries(k) {
		c.Carried = append(c.Carried, k)
	}
	c.Weapon = k
	c.Ammo = RememberedAmmo(c.AmmoMemory, k)
	c.ReloadTimer = 0
	c.FireTimer = 0
}

// cycleWeapon 在携带的武器中按规范顺序切到下一把
func (c *Combatant) cycleWeapon() {
	carried := make([]WeaponKind, 0, len(c.Carried))
	for _, k := range WeaponOrder() {
		if c.Carries(k) {
			carried = append(carried, k)
		}
	}
	if len(carried) < 2 {
		return
	}
	idx := 0
	for i, k := range carried {
		if k == c.Weapon {
			idx = (i + 1) % len(carried)
			break
		}
	}
	c.equip(carried[idx])
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
