package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRememberedAmmoDefaultsToCapacity(t *testing.T) {
	mem := map[WeaponKind]int{Shotgun: 3}

	assert.Equal(t, 3, RememberedAmmo(mem, Shotgun))
	assert.Equal(t, Spec(Sniper).Ammo, RememberedAmmo(mem, Sniper))
	assert.Equal(t, InfiniteAmmo, RememberedAmmo(nil, Pistol))
}

func TestDamageAndHealClamp(t *testing.T) {
	c := newCombatant(1, DefaultArena().Spawns[0])

	c.Damage(250)
	assert.Equal(t, 0.0, c.Health)

	c.Health = 90
	c.Heal(HealAmount)
	assert.Equal(t, MaxHealth, c.Health, "40-point heal into 90 caps at 100")
}

func TestEquipRemembersAmmoPerWeapon(t *testing.T) {
	c := newCombatant(1, DefaultArena().Spawns[0])

	c.equip(Shotgun)
	require.Equal(t, Shotgun, c.Weapon)
	assert.Equal(t, 24, c.Ammo)
	assert.Equal(t, []WeaponKind{Pistol, Shotgun}, c.Carried)

	c.Ammo = 7
	c.equip(Sniper)
	assert.Equal(t, 10, c.Ammo)
	assert.Equal(t, 7, c.AmmoMemory[Shotgun])

	// 再次拾取已携带的武器不会重复加入
	c.equip(Shotgun)
	assert.Equal(t, 7, c.Ammo)
	assert.Equal(t, []WeaponKind{Pistol, Shotgun, Sniper}, c.Carried)
}

func TestWeaponSwitchOnRisingEdgeOnly(t *testing.T) {
	w := newTestWorld()
	c := w.Combatants[0]
	c.equip(Sniper)
	c.equip(Shotgun)
	c.Ammo = 10

	// 规范顺序 pistol, shotgun, sniper：shotgun 之后是 sniper
	w.stepWeapon(c, Input{Weapon: true})
	require.Equal(t, Sniper, c.Weapon)
	assert.Equal(t, 10, c.AmmoMemory[Shotgun])

	w.stepWeapon(c, Input{Weapon: true})
	assert.Equal(t, Sniper, c.Weapon, "holding the key must not repeat the switch")

	w.stepWeapon(c, Input{})
	w.stepWeapon(c, Input{Weapon: true})
	assert.Equal(t, Pistol, c.Weapon)
	assert.Equal(t, InfiniteAmmo, c.Ammo)

	w.stepWeapon(c, Input{})
	w.stepWeapon(c, Input{Weapon: true})
	assert.Equal(t, Shotgun, c.Weapon)
	assert.Equal(t, 10, c.Ammo)
}

func TestWeaponSwitchNeedsTwoWeapons(t *testing.T) {
	w := newTestWorld()
	c := w.Combatants[0]

	w.stepWeapon(c, Input{Weapon: true})

	assert.Equal(t, Pistol, c.Weapon)
}

func TestInfiniteWeaponNeverReloads(t *testing.T) {
	w := newTestWorld()
	c := w.Combatants[0]

	for i := 0; i < 200; i++ {
		w.stepWeapon(c, Input{Fire: true, Reload: true})
		require.False(t, c.Reloading())
		require.Equal(t, InfiniteAmmo, c.Ammo)
	}
	assert.NotEmpty(t, w.Bullets)
}

func TestFiringRespectsCooldownAndSpawnsPellets(t *testing.T) {
	w := newTestWorld()
	c := w.Combatants[0]
	c.equip(Shotgun)

	w.stepWeapon(c, Input{Fire: true})
	assert.Len(t, w.Bullets, Spec(Shotgun).Pellets)
	assert.Equal(t, 23, c.Ammo)
	assert.Equal(t, Spec(Shotgun).FireRate, c.FireTimer)

	w.stepWeapon(c, Input{Fire: true})
	assert.Len(t, w.Bullets, Spec(Shotgun).Pellets, "cooldown blocks the second shot")

	for _, b := range w.Bullets {
		assert.Equal(t, 1, b.Owner)
		assert.Equal(t, Spec(Shotgun).Damage, b.Damage)
		assert.Equal(t, Spec(Shotgun).Life, b.Life)
	}
}

func TestEmptyMagazineStartsReload(t *testing.T) {
	w := newTestWorld()
	c := w.Combatants[0]
	c.equip(Sniper)
	c.Ammo = 1

	w.stepWeapon(c, Input{Fire: true})
	require.Equal(t, 0, c.Ammo)
	require.Equal(t, Spec(Sniper).ReloadTime, c.ReloadTimer)

	for i := 0; i < Spec(Sniper).ReloadTime-1; i++ {
		w.stepWeapon(c, Input{Fire: true})
		require.True(t, c.Reloading())
		require.Equal(t, 0, c.Ammo)
	}
	assert.Len(t, w.Bullets, 1, "reloading blocks firing")

	w.stepWeapon(c, Input{})
	assert.False(t, c.Reloading())
	assert.Equal(t, Spec(Sniper).Ammo, c.Ammo)
}

func TestManualReload(t *testing.T) {
	w := newTestWorld()
	c := w.Combatants[0]
	c.equip(MachineGun)

	w.stepWeapon(c, Input{Reload: true})
	assert.False(t, c.Reloading(), "full magazine cannot be reloaded")

	c.Ammo = 30
	w.stepWeapon(c, Input{Reload: true})
	assert.Equal(t, Spec(MachineGun).ReloadTime, c.ReloadTimer)

	timer := c.ReloadTimer
	w.stepWeapon(c, Input{Reload: true})
	assert.Equal(t, timer-1, c.ReloadTimer, "reload in progress is not restarted")
}

func TestWeaponTable(t *testing.T) {
	assert.Equal(t, []WeaponKind{Pistol, Shotgun, Sniper, MachineGun, RocketLauncher, Flamethrower}, WeaponOrder())
	assert.True(t, Spec(Pistol).Infinite())
	assert.True(t, Spec(RocketLauncher).Explosive)
	assert.True(t, Spec(Flamethrower).Flame)
	assert.Equal(t, 6, Spec(Shotgun).Pellets)

	names := make([]string, 0, len(WeaponOrder()))
	for _, k := range WeaponOrder() {
		names = append(names, k.String())
	}
	assert.Equal(t, []string{"pistol", "shotgun", "sniper", "machinegun", "rocketlauncher", "flamethrower"}, names)
	assert.Equal(t, "unknown", WeaponKind(99).String())
}
