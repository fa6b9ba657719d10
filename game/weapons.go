package game

// WeaponKind 武器种类；数值顺序即切换武器时的规范顺序
type WeaponKind int

const (
	Pistol WeaponKind = iota
	Shotgun
	Sniper
	MachineGun
	RocketLauncher
	Flamethrower
	weaponCount
)

// InfiniteAmmo 无限弹药哨兵值：永不消耗、永不换弹
const InfiniteAmmo = -1

// WeaponSpec 武器参数（只读查找表）
type WeaponSpec struct {
	Damage     float64
	FireRate   int // 射击冷却（tick）
	Speed      float64
	Spread     float64
	Ammo       int // 弹匣容量，InfiniteAmmo 表示无限
	ReloadTime int
	Life       int // 子弹存活 tick
	Pellets    int
	Explosive  bool
	Flame      bool
}

// Infinite 是否为无限弹药武器
func (s WeaponSpec) Infinite() bool { return s.Ammo == InfiniteAmmo }

var weaponNames = [weaponCount]string{
	Pistol:         "pistol",
	Shotgun:        "shotgun",
	Sniper:         "sniper",
	MachineGun:     "machinegun",
	RocketLauncher: "rocketlauncher",
	Flamethrower:   "flamethrower",
}

var weaponSpecs = [weaponCount]WeaponSpec{
	Pistol:         {Damage: 15, FireRate: 18, Speed: 12, Spread: 0.05, Ammo: InfiniteAmmo, ReloadTime: 30, Life: 120, Pellets: 1},
	Shotgun:        {Damage: 18, FireRate: 40, Speed: 10, Spread: 0.25, Ammo: 24, ReloadTime: 60, Life: 80, Pellets: 6},
	Sniper:         {Damage: 70, FireRate: 70, Speed: 25, Spread: 0.01, Ammo: 10, ReloadTime: 80, Life: 220, Pellets: 1},
	MachineGun:     {Damage: 9, FireRate: 5, Speed: 14, Spread: 0.08, Ammo: 60, ReloadTime: 50, Life: 130, Pellets: 1},
	RocketLauncher: {Damage: 75, FireRate: 90, Speed: 8, Spread: 0, Ammo: 6, ReloadTime: 90, Life: 180, Pellets: 1, Explosive: true},
	Flamethrower:   {Damage: 5, FireRate: 4, Speed: 6, Spread: 0.35, Ammo: 80, ReloadTime: 50, Life: 40, Pellets: 1, Flame: true},
}

// Spec 查询武器参数
func Spec(k WeaponKind) WeaponSpec {
	if k < 0 || k >= weaponCount {
		return weaponSpecs[Pistol]
	}
	return weaponSpecs[k]
}

func (k WeaponKind) String() string {
	if k < 0 || k >= weaponCount {
		return "unknown"
	}
	return weaponNames[k]
}

// WeaponOrder 规范切换顺序
func WeaponOrder() []WeaponKind {
	out := make([]WeaponKind, 0, weaponCount)
	for k := Pistol; k < weaponCount; k++ {
		out = append(out, k)
	}
	return out
}
