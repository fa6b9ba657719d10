package protocol

import (
	"math"

	"doodlewar/game"
)

// State 状态快照：每两个物理 tick 广播一次，客户端在快照之间插值
type State struct {
	Frame   int           `json:"frame"`
	P1      PlayerState   `json:"p1"`
	P2      PlayerState   `json:"p2"`
	Bullets []BulletState `json:"bullets"`
	Picks   []int         `json:"picks"`
	Hps     []int         `json:"hps"`
}

// PlayerState 战斗者的公开状态；显示用的数值已按精度取整
type PlayerState struct {
	ID             int      `json:"id"`
	X              float64  `json:"x"`
	Y              float64  `json:"y"`
	VX             float64  `json:"vx"`
	VY             float64  `json:"vy"`
	HP             float64  `json:"hp"`
	Fuel           float64  `json:"fuel"`
	Dead           bool     `json:"dead"`
	Kills          int      `json:"kills"`
	Facing         int      `json:"facing"`
	AimAngle       float64  `json:"aimAngle"`
	Weapon         string   `json:"weapon"`
	Ammo           int      `json:"ammo"`
	ReloadTimer    int      `json:"reloadTimer"`
	FireTimer      int      `json:"fireTimer"`
	OnGround       bool     `json:"onGround"`
	LegPhase       float64  `json:"legPhase"`
	JetpackFlame   int      `json:"jetpackFlame"`
	FlashTimer     int      `json:"flashTimer"`
	RespawnTimer   int      `json:"respawnTimer"`
	CarriedWeapons []string `json:"carriedWeapons"`
}

type BulletState struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VX        float64 `json:"vx"`
	VY        float64 `json:"vy"`
	Damage    float64 `json:"dmg"`
	Owner     int     `json:"owner"`
	Explosive bool    `json:"explosive"`
	Flame     bool    `json:"flame"`
}

// BuildState 从模拟世界生成快照，只读，不改变权威数值
func BuildState(w *game.World) State {
	s := State{
		Frame:   w.Tick,
		P1:      playerState(w.Combatants[0]),
		P2:      playerState(w.Combatants[1]),
		Bullets: make([]BulletState, 0, len(w.Bullets)),
		Picks:   availability(w.WeaponPickups),
		Hps:     availability(w.HealthPickups),
	}
	for _, b := range w.Bullets {
		s.Bullets = append(s.Bullets, BulletState{
			X:         math.Round(b.X),
			Y:         math.Round(b.Y),
			VX:        b.VX,
			VY:        b.VY,
			Damage:    b.Damage,
			Owner:     b.Owner,
			Explosive: b.Explosive,
			Flame:     b.Flame,
		})
	}
	return s
}

func playerState(c *game.Combatant) PlayerState {
	carried := make([]string, 0, len(c.Carried))
	for _, k := range c.Carried {
		carried = append(carried, k.String())
	}
	return PlayerState{
		ID:             c.Slot,
		X:              round(c.X, 1),
		Y:              round(c.Y, 1),
		VX:             c.VX,
		VY:             c.VY,
		HP:             round(c.Health, 1),
		Fuel:           round(c.Fuel, 1),
		Dead:           c.Dead,
		Kills:          c.Kills,
		Facing:         c.Facing,
		AimAngle:       round(c.AimAngle, 2),
		Weapon:         c.Weapon.String(),
		Ammo:           c.Ammo,
		ReloadTimer:    c.ReloadTimer,
		FireTimer:      c.FireTimer,
		OnGround:       c.Grounded,
		LegPhase:       round(c.LegPhase, 1),
		JetpackFlame:   c.JetpackFlame,
		FlashTimer:     c.FlashTimer,
		RespawnTimer:   c.RespawnTimer,
		CarriedWeapons: carried,
	}
}

// availability 已被拾取为 1，可用为 0
func availability(pickups []game.Pickup) []int {
	out := make([]int, len(pickups))
	for i, p := range pickups {
		if p.Taken {
			out[i] = 1
		}
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
