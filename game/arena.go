package game

import "math"

// 物理与规则常量（必须与客户端保持一致）
const (
	Gravity          = 0.45
	TerminalVelocity = 14.0
	JumpForce        = -10.0
	MoveSpeed        = 3.5
	MoveAccel        = MoveSpeed * 0.35
	GroundDecay      = 0.75
	JetpackForce     = 0.55
	JetpackSteer     = 0.2
	MaxFuel          = 100.0
	FuelDrain        = 0.8
	FuelRegen        = 0.3
	MaxHealth        = 100.0
	RespawnTicks     = 120
	WinKills         = 10

	WorldWidth  = 900.0
	WorldHeight = 550.0
	WallMargin  = 20.0

	CombatantWidth  = 26.0
	CombatantHeight = 36.0

	MuzzleOffset    = 18.0
	HeadshotZone    = 0.25
	HeadshotFactor  = 1.5
	HitFlashTicks   = 8
	BlastFlashTicks = 10
	JetFlameTicks   = 8
	LegPhaseStep    = 0.25

	ExplosionRadius  = 80.0
	ExplosionDamage  = 70.0
	ExplosionLift    = 5.0
	ExplosionPush    = 4.0
	FlameJitter      = 1.5
	FlameDrift       = 0.1
	WeaponPickupDist = 40.0
	HealthPickupDist = 22.0
	HealAmount       = 40.0
	WeaponRespawn    = 600
	HealthRespawn    = 480
)

// Rect 轴对齐矩形（平台）
type Rect struct {
	X, Y, W, H float64
}

// Overlaps 判断两个矩形是否相交（边界接触不算）
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// ContainsPoint 点是否严格落在矩形内部
func (r Rect) ContainsPoint(x, y float64) bool {
	return x > r.X && x < r.X+r.W && y > r.Y && y < r.Y+r.H
}

// Spot 地图上的固定拾取点；Weapon 仅对武器拾取点有效
type Spot struct {
	X, Y   float64
	Weapon WeaponKind
}

// SpawnPoint 每个槽位的固定出生点
type SpawnPoint struct {
	X, Y   float64
	Facing int
	Aim    float64
}

// Arena 静态地图：启动后只读
type Arena struct {
	Platforms     []Rect
	WeaponSpots   []Spot
	HealthSpots   []Spot
	Spawns        [2]SpawnPoint
	Width, Height float64
}

var defaultArena = Arena{
	Platforms: []Rect{
		{0, 520, 900, 30}, {0, 0, 20, 520}, {880, 0, 20, 520},
		{20, 480, 80, 12}, {65, 450, 80, 12}, {110, 420, 80, 12},
		{800, 480, 80, 12}, {755, 450, 80, 12}, {710, 420, 80, 12},
		{55, 460, 55, 12}, {55, 320, 55, 12}, {55, 190, 55, 12},
		{790, 460, 55, 12}, {790, 320, 55, 12}, {790, 190, 55, 12},
		{100, 400, 160, 16}, {640, 400, 160, 16}, {350, 340, 200, 16},
		{180, 250, 130, 16}, {590, 250, 130, 16}, {380, 175, 140, 16},
		{90, 130, 100, 16}, {710, 130, 100, 16},
	},
	WeaponSpots: []Spot{
		{X: 230, Y: 223, Weapon: Shotgun},
		{X: 620, Y: 223, Weapon: Sniper},
		{X: 425, Y: 148, Weapon: RocketLauncher},
		{X: 85, Y: 103, Weapon: Flamethrower},
		{X: 765, Y: 103, Weapon: MachineGun},
	},
	HealthSpots: []Spot{
		{X: 430, Y: 312}, {X: 60, Y: 393}, {X: 820, Y: 393},
	},
	Spawns: [2]SpawnPoint{
		{X: 120, Y: 450, Facing: 1, Aim: 0},
		{X: 760, Y: 450, Facing: -1, Aim: math.Pi},
	},
	Width:  WorldWidth,
	Height: WorldHeight,
}

// DefaultArena 返回标准地图；切片为共享只读数据，调用方不得修改
func DefaultArena() *Arena {
	return &defaultArena
}

func distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(ax-bx, ay-by)
}
