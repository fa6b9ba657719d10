package game

import "math/rand"

// World 一场比赛的模拟状态：两名战斗者、子弹、拾取物
type World struct {
	Arena *Arena

	Tick          int
	Combatants    [2]*Combatant
	Bullets       []Bullet
	WeaponPickups []Pickup
	HealthPickups []Pickup

	// Winner 获胜槽位，0 表示尚未决出
	Winner int

	rng *rand.Rand
}

// NewWorld 创建比赛世界；拾取物从地图复制，每场比赛独立计时
func NewWorld(arena *Arena, rng *rand.Rand) *World {
	if arena == nil {
		arena = DefaultArena()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &World{
		Arena: arena,
		Combatants: [2]*Combatant{
			newCombatant(1, arena.Spawns[0]),
			newCombatant(2, arena.Spawns[1]),
		},
		WeaponPickups: pickupsFrom(arena.WeaponSpots),
		HealthPickups: pickupsFrom(arena.HealthSpots),
		rng:           rng,
	}
}

// Ended 是否已决出胜者；结束后 Step 不再推进
func (w *World) Ended() bool { return w.Winner != 0 }

// Step 推进一个 tick：按槽位顺序更新战斗者，然后子弹，然后拾取物
func (w *World) Step(inputs [2]Input) {
	if w.Ended() {
		return
	}
	w.Tick++
	for i := range w.Combatants {
		w.stepCombatant(i, inputs[i])
	}
	w.stepBullets()
	w.stepPickups()
}

// checkDeath 血量归零时判定死亡并给对手记一杀，首个达到击杀上限者获胜
func (w *World) checkDeath(i int) {
	c := w.Combatants[i]
	if c.Health > 0 || c.Dead {
		return
	}
	c.Dead = true
	c.RespawnTimer = RespawnTicks

	killer := w.Combatants[1-i]
	killer.Kills++
	if killer.Kills >= WinKills && w.Winner == 0 {
		w.Winner = killer.Slot
	}
}

func (w *World) respawn(i int) {
	w.Combatants[i].reset(w.Arena.Spawns[i])
}
