package server

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doodlewar/game"
)

type registryFixture struct {
	reg     *Registry
	sched   *manualScheduler
	metrics *Metrics
	p1, p2  *fakeConn
}

func newRegistryFixture(codes ...string) *registryFixture {
	if len(codes) == 0 {
		codes = []string{"AB12", "CD34", "EF56"}
	}
	sched := &manualScheduler{}
	metrics := &Metrics{}
	return &registryFixture{
		reg:     NewRegistry(sched, metrics, fixedCodes(codes...)),
		sched:   sched,
		metrics: metrics,
		p1:      newFakeConn("p1"),
		p2:      newFakeConn("p2"),
	}
}

// started 创建并加入一场比赛，返回比赛与其 tick 任务
func (f *registryFixture) started(t *testing.T) (*Match, *manualTask) {
	code := f.reg.CreateMatch(f.p1)
	_, err := f.reg.JoinMatch(f.p2, code)
	require.NoError(t, err)
	m, ok := f.reg.Lookup(code)
	require.True(t, ok)
	require.NotEmpty(t, f.sched.tasks)
	return m, f.sched.tasks[len(f.sched.tasks)-1]
}

func TestCreateAndJoinStartsMatch(t *testing.T) {
	f := newRegistryFixture()

	code := f.reg.CreateMatch(f.p1)
	assert.Equal(t, "AB12", code)
	created := f.p1.last("created")
	require.NotNil(t, created)
	assert.Equal(t, "AB12", created["code"])
	assert.Equal(t, 1.0, created["playerNum"])

	m, ok := f.reg.Lookup("AB12")
	require.True(t, ok)
	assert.Equal(t, StateWaiting, m.State())
	assert.Empty(t, f.sched.tasks)

	num, err := f.reg.JoinMatch(f.p2, "ab12")
	require.NoError(t, err)
	assert.Equal(t, 2, num)

	assert.Equal(t, []string{"created", "opponent_joined", "start"}, f.p1.kinds())
	assert.Equal(t, []string{"joined", "start"}, f.p2.kinds())
	joined := f.p2.last("joined")
	assert.Equal(t, "AB12", joined["code"])
	assert.Equal(t, 2.0, joined["playerNum"])
	start := f.p2.last("start")
	assert.Equal(t, 1.0, start["playerNum1"])
	assert.Equal(t, 2.0, start["playerNum2"])

	assert.Equal(t, StateActive, m.State())
	require.Len(t, f.sched.tasks, 1)
	assert.Equal(t, tickInterval, f.sched.tasks[0].interval)
	assert.Equal(t, 0, m.World().Tick)
}

func TestTickBroadcastsEverySecondTick(t *testing.T) {
	f := newRegistryFixture()
	m, task := f.started(t)

	require.True(t, task.fire())
	assert.Equal(t, 1, m.World().Tick)
	assert.Equal(t, 0, f.p1.count("state"))

	require.True(t, task.fire())
	assert.Equal(t, 2, m.World().Tick)
	assert.Equal(t, 1, f.p1.count("state"))
	assert.Equal(t, 1, f.p2.count("state"))
	assert.Equal(t, 2.0, f.p1.last("state")["frame"])

	for i := 0; i < 8; i++ {
		task.fire()
	}
	assert.Equal(t, 5, f.p2.count("state"))
	assert.Equal(t, int64(5), f.metrics.SnapshotsSent)
	assert.Equal(t, int64(10), f.metrics.TickCount)
}

func TestJoinUnknownCode(t *testing.T) {
	f := newRegistryFixture()
	f.reg.CreateMatch(f.p1)

	_, err := f.reg.JoinMatch(f.p2, "ZZZZ")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrFull)

	var me *Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "Room not found", me.UserMessage())
	assert.Equal(t, []string{"created"}, f.p1.kinds())
	assert.Empty(t, f.p2.kinds())
}

func TestJoinFullMatchNeverDisplaces(t *testing.T) {
	f := newRegistryFixture()
	m, _ := f.started(t)
	p3 := newFakeConn("p3")
	before1, before2 := len(f.p1.kinds()), len(f.p2.kinds())

	_, err := f.reg.JoinMatch(p3, "AB12")
	assert.ErrorIs(t, err, ErrFull)

	var me *Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "Room is full", me.UserMessage())

	code, slot := f.reg.SlotOf(f.p2.ID())
	assert.Equal(t, "AB12", code)
	assert.Equal(t, 2, slot)
	_, slot = f.reg.SlotOf(p3.ID())
	assert.Equal(t, 0, slot)
	assert.Equal(t, StateActive, m.State())
	assert.Len(t, f.p1.kinds(), before1)
	assert.Len(t, f.p2.kinds(), before2)
}

func TestJoinEndedMatchIsFull(t *testing.T) {
	f := newRegistryFixture()
	f.started(t)
	f.reg.Disconnect(f.p2.ID())

	_, err := f.reg.JoinMatch(newFakeConn("p3"), "AB12")
	assert.ErrorIs(t, err, ErrFull)
}

func TestJoinOwnMatchIsRejected(t *testing.T) {
	f := newRegistryFixture()
	f.reg.CreateMatch(f.p1)

	_, err := f.reg.JoinMatch(f.p1, "AB12")
	assert.ErrorIs(t, err, ErrFull)
	m, ok := f.reg.Lookup("AB12")
	require.True(t, ok)
	assert.Equal(t, StateWaiting, m.State())
}

func TestCodesAreUniqueAmongLiveMatches(t *testing.T) {
	f := newRegistryFixture("AB12", "AB12", "CD34")

	assert.Equal(t, "AB12", f.reg.CreateMatch(f.p1))
	assert.Equal(t, "CD34", f.reg.CreateMatch(f.p2))
	assert.Len(t, f.reg.Matches(), 2)
}

func TestCodeExhaustionPanics(t *testing.T) {
	f := newRegistryFixture("AB12")
	f.reg.CreateMatch(f.p1)

	assert.Panics(t, func() { f.reg.CreateMatch(f.p2) })
}

func TestRandomCodeAlphabet(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z0-9]{4}$`)
	for i := 0; i < 200; i++ {
		assert.Regexp(t, re, RandomCode())
	}
}

func TestSubmitInputLastWriteWins(t *testing.T) {
	f := newRegistryFixture()
	m, task := f.started(t)

	f.reg.SubmitInput(f.p1.ID(), game.Input{Right: true})
	f.reg.SubmitInput(f.p1.ID(), game.Input{Left: true})
	assert.Equal(t, game.Input{Left: true}, m.inputs[0])
	assert.Equal(t, game.Input{}, m.inputs[1])

	task.fire()
	assert.Less(t, m.World().Combatants[0].VX, 0.0)
	assert.Equal(t, int64(2), f.metrics.InputsAccepted)
}

func TestSubmitInputFromUnseatedConnIsIgnored(t *testing.T) {
	f := newRegistryFixture()
	f.reg.SubmitInput("nobody", game.Input{Fire: true})

	assert.Equal(t, int64(1), f.metrics.InputsIgnored)
	assert.Equal(t, int64(0), f.metrics.InputsAccepted)
}

func TestDisconnectNotifiesOpponentAndStops(t *testing.T) {
	f := newRegistryFixture()
	m, task := f.started(t)
	task.fire()

	f.reg.Disconnect(f.p2.ID())
	assert.Equal(t, "opponent_left", f.p1.kinds()[len(f.p1.kinds())-1])
	assert.Equal(t, StateEnded, m.State())
	assert.True(t, task.cancelled)
	assert.False(t, task.fire())
	assert.Equal(t, 1, m.World().Tick)

	// 还有人在，比赛保留
	_, ok := f.reg.Lookup("AB12")
	assert.True(t, ok)

	f.reg.Disconnect(f.p1.ID())
	_, ok = f.reg.Lookup("AB12")
	assert.False(t, ok)
	assert.Equal(t, int64(0), f.metrics.ActiveMatches)
}

func TestDisconnectWhileWaitingRemovesMatch(t *testing.T) {
	f := newRegistryFixture()
	f.reg.CreateMatch(f.p1)
	f.reg.Disconnect(f.p1.ID())

	assert.Empty(t, f.reg.Matches())
	f.reg.Disconnect(f.p1.ID())
}

func TestCreateWhileSeatedLeavesPreviousMatch(t *testing.T) {
	f := newRegistryFixture()
	old, _ := f.started(t)

	code := f.reg.CreateMatch(f.p2)
	assert.Equal(t, "CD34", code)
	assert.Equal(t, StateEnded, old.State())
	assert.NotNil(t, f.p1.last("opponent_left"))

	got, slot := f.reg.SlotOf(f.p2.ID())
	assert.Equal(t, "CD34", got)
	assert.Equal(t, 1, slot)
}

func TestWinEndsMatch(t *testing.T) {
	f := newRegistryFixture()
	m, task := f.started(t)

	w := m.World()
	w.Combatants[0].Kills = game.WinKills - 1
	target := w.Combatants[1]
	w.Bullets = append(w.Bullets, game.Bullet{
		X: target.X + 12, Y: target.Y + 20, VX: 1, Owner: 1, Damage: 500, Life: 10,
	})

	assert.False(t, task.fire())
	assert.Equal(t, StateEnded, m.State())
	assert.Equal(t, 1, w.Winner)

	for _, c := range []*fakeConn{f.p1, f.p2} {
		kinds := c.kinds()
		require.GreaterOrEqual(t, len(kinds), 2)
		assert.Equal(t, []string{"state", "win"}, kinds[len(kinds)-2:])
		win := c.last("win")
		assert.Equal(t, 1.0, win["winner"])
		assert.Equal(t, float64(game.WinKills), win["kills"])
	}

	// 结束后不再推进
	assert.False(t, task.fire())
	assert.Equal(t, 1, w.Tick)
}

func TestMatchesSummary(t *testing.T) {
	f := newRegistryFixture("CD34", "AB12")
	f.reg.CreateMatch(f.p1)
	f.reg.CreateMatch(f.p2)

	got := f.reg.Matches()
	require.Len(t, got, 2)
	assert.Equal(t, "AB12", got[0].Code)
	assert.Equal(t, "CD34", got[1].Code)
	assert.Equal(t, "waiting", got[0].State)
	assert.Equal(t, 1, got[0].Players)
}

func TestCloseStopsEveryMatch(t *testing.T) {
	f := newRegistryFixture()
	m, task := f.started(t)

	f.reg.Close()
	assert.Equal(t, StateEnded, m.State())
	assert.True(t, task.cancelled)
}
