package engine

import (
	"time"

	"github.com/google/go-cmp/cmp"
)

func (suite *EngineSuite) TestInitialState() {
	suite.False(suite.engine.Running())
	suite.Equal("00:00.000", suite.engine.TotalDisplay())
	suite.Equal("00:00.000", suite.engine.LapDisplay())
	suite.Empty(suite.engine.Laps())
	suite.Zero(suite.clock.Armed())
}

func (suite *EngineSuite) TestStartStop() {
	suite.engine.Start()
	suite.True(suite.engine.Running())
	suite.Equal(1, suite.clock.Armed())

	suite.wait(ms(1230))
	suite.Equal(ms(1230), suite.engine.Total())
	suite.Equal(ms(1230), suite.engine.SinceLastLap())

	suite.engine.Stop()
	suite.False(suite.engine.Running())
	suite.Zero(suite.clock.Armed())
	suite.Equal(ms(1230), suite.engine.Total())

	suite.wait(5 * time.Second)
	suite.Equal(ms(1230), suite.engine.Total(), "total must be frozen while stopped")
	suite.Equal("00:01.230", suite.engine.TotalDisplay())
}

func (suite *EngineSuite) TestStopCapturesTimeSinceLastTick() {
	suite.engine.Start()
	suite.wait(ms(1234)) // last tick at 1230
	suite.Equal(ms(1230), suite.engine.Total())

	suite.engine.Stop()
	suite.Equal(ms(1234), suite.engine.Total())
	suite.Equal(ms(1234), suite.engine.SinceLastLap())
}

func (suite *EngineSuite) TestAccumulatesAcrossRunIntervals() {
	suite.engine.Start()
	suite.wait(ms(500))
	suite.engine.Stop()

	suite.wait(ms(10000))

	suite.engine.Start()
	suite.wait(ms(700))
	suite.Equal(ms(1200), suite.engine.Total())
	suite.engine.Stop()
	suite.Equal(ms(1200), suite.engine.Total())
}

func (suite *EngineSuite) TestLaps() {
	suite.engine.Start()
	suite.wait(ms(3000))
	suite.engine.RecordLap()
	suite.Equal([]time.Duration{ms(3000)}, suite.engine.Laps())
	suite.Zero(suite.engine.SinceLastLap())

	suite.wait(ms(1500))
	suite.Equal(ms(1500), suite.engine.SinceLastLap())
	suite.engine.RecordLap()

	laps := suite.engine.Laps()
	suite.Equal([]time.Duration{ms(1500), ms(3000)}, laps, "most recent lap first")
	suite.Equal(suite.engine.Total(), laps[0]+laps[1])
	suite.Equal(ms(4500), suite.engine.Total())
}

func (suite *EngineSuite) TestLapBetweenTicks() {
	suite.engine.Start()
	suite.wait(ms(1005))
	suite.engine.RecordLap()
	suite.Equal([]time.Duration{ms(1005)}, suite.engine.Laps())
	suite.Equal(ms(1005), suite.engine.Total())

	suite.wait(ms(15)) // tick at 1010 and 1020
	suite.Equal(ms(15), suite.engine.SinceLastLap())
}

func (suite *EngineSuite) TestLapInEarlierRunInterval() {
	suite.engine.Start()
	suite.wait(ms(1000))
	suite.engine.RecordLap()
	suite.wait(ms(400))
	suite.engine.Stop()
	suite.Equal(ms(400), suite.engine.SinceLastLap())

	suite.wait(ms(60000))

	suite.engine.Start()
	suite.wait(ms(250))
	suite.Equal(ms(650), suite.engine.SinceLastLap(), "banked 400ms plus 250ms since restart")
	suite.Equal(ms(1650), suite.engine.Total())

	suite.engine.RecordLap()
	suite.Equal([]time.Duration{ms(650), ms(1000)}, suite.engine.Laps())

	suite.wait(ms(100))
	suite.Equal(ms(100), suite.engine.SinceLastLap())
}

func (suite *EngineSuite) TestLapAcrossThreeRunIntervals() {
	suite.engine.Start()
	suite.wait(ms(100))
	suite.engine.RecordLap()
	suite.wait(ms(100))
	suite.engine.Stop()

	suite.engine.Start()
	suite.wait(ms(200))
	suite.engine.Stop()

	suite.engine.Start()
	suite.wait(ms(300))
	suite.Equal(ms(600), suite.engine.SinceLastLap())
	suite.engine.RecordLap()
	suite.Equal([]time.Duration{ms(600), ms(100)}, suite.engine.Laps())
	suite.engine.Stop()
}

func (suite *EngineSuite) TestLapWhileStoppedIsIgnored() {
	suite.engine.RecordLap()
	suite.Empty(suite.engine.Laps())

	suite.engine.Start()
	suite.wait(ms(100))
	suite.engine.Stop()
	suite.engine.RecordLap()
	suite.Empty(suite.engine.Laps())
	suite.Contains(suite.logs.String(), "ignoring command")
}

func (suite *EngineSuite) TestDoubleStartIsIgnored() {
	suite.engine.Start()
	suite.wait(ms(100))
	suite.engine.Start()
	suite.Equal(1, suite.clock.Armed())
	suite.wait(ms(100))
	suite.Equal(ms(200), suite.engine.Total(), "second start must not rebase the run interval")

	suite.engine.Stop()
	suite.engine.Stop()
	suite.Equal(ms(200), suite.engine.Total())
}

func (suite *EngineSuite) TestResetWhileStopped() {
	suite.engine.Start()
	suite.wait(ms(100))
	suite.engine.RecordLap()
	suite.wait(ms(100))
	suite.engine.Stop()

	suite.engine.Reset()
	suite.False(suite.engine.Running())
	suite.Zero(suite.engine.Total())
	suite.Zero(suite.engine.SinceLastLap())
	suite.Empty(suite.engine.Laps())

	suite.engine.Start()
	suite.wait(ms(50))
	suite.Equal(ms(50), suite.engine.Total())
	suite.Equal(ms(50), suite.engine.SinceLastLap())
}

func (suite *EngineSuite) TestResetWhileRunning() {
	suite.engine.Start()
	suite.wait(ms(1000))
	suite.engine.RecordLap()
	suite.wait(ms(500))

	suite.engine.Reset()
	suite.True(suite.engine.Running())
	suite.Zero(suite.engine.Total())
	suite.Zero(suite.engine.SinceLastLap())
	suite.Empty(suite.engine.Laps())

	suite.wait(ms(30))
	suite.Equal(ms(30), suite.engine.Total(), "must count up from zero after reset")
	suite.Equal(ms(30), suite.engine.SinceLastLap())

	suite.engine.RecordLap()
	suite.Equal([]time.Duration{ms(30)}, suite.engine.Laps())
}

func (suite *EngineSuite) TestSnapshot() {
	suite.engine.Start()
	suite.wait(ms(2000))
	suite.engine.RecordLap()
	suite.wait(ms(61234 - 2000))

	got := suite.engine.Snapshot()
	want := Snapshot{
		Seq:          got.Seq,
		State:        Running,
		Total:        ms(61230),
		SinceLastLap: ms(59230),
		Laps:         []time.Duration{ms(2000)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		suite.Failf("snapshot mismatch", "(-want +got):\n%s", diff)
	}

	suite.Equal([]Lap{
		{Label: "Lap 1", Display: "00:02.000", Duration: ms(2000)},
	}, got.History())
	suite.Equal("01:01.230", got.TotalDisplay())
	suite.Equal("00:59.230", got.LapDisplay())
}

func (suite *EngineSuite) TestSnapshotIsCopy() {
	suite.engine.Start()
	suite.wait(ms(10))
	suite.engine.RecordLap()

	snap := suite.engine.Snapshot()
	snap.Laps[0] = 0
	suite.Equal([]time.Duration{ms(10)}, suite.engine.Laps())
}

func (suite *EngineSuite) TestHistoryLabels() {
	suite.engine.Start()
	for i := 1; i <= 3; i++ {
		suite.wait(ms(int64(i * 100)))
		suite.engine.RecordLap()
	}

	suite.Equal([]Lap{
		{Label: "Lap 1", Display: "00:00.300", Duration: ms(300)},
		{Label: "Lap 2", Display: "00:00.200", Duration: ms(200)},
		{Label: "Lap 3", Display: "00:00.100", Duration: ms(100)},
	}, suite.engine.History())
}

func (suite *EngineSuite) TestSubscribe() {
	var snaps []Snapshot
	unsubscribe := suite.engine.Subscribe(func(s Snapshot) {
		snaps = append(snaps, s)
	})

	suite.engine.Start()
	suite.wait(ms(30))
	suite.engine.RecordLap()
	suite.engine.Stop()

	// start, 3 ticks, lap, stop
	suite.Len(snaps, 6)
	for i := 1; i < len(snaps); i++ {
		suite.Greater(snaps[i].Seq, snaps[i-1].Seq)
	}
	suite.Equal(Running, snaps[0].State)
	suite.Equal(ms(30), snaps[3].Total)
	suite.Equal([]time.Duration{ms(30)}, snaps[4].Laps)
	suite.Equal(Stopped, snaps[5].State)

	unsubscribe()
	suite.engine.Reset()
	suite.Len(snaps, 6)
}

func (suite *EngineSuite) TestObserverMayCallBack() {
	var totals []time.Duration
	suite.engine.Subscribe(func(s Snapshot) {
		totals = append(totals, suite.engine.Total())
	})

	suite.engine.Start()
	suite.wait(ms(20))
	suite.Equal([]time.Duration{0, ms(10), ms(20)}, totals)
}

func (suite *EngineSuite) TestIgnoredCommandsDoNotNotify() {
	calls := 0
	suite.engine.Subscribe(func(Snapshot) { calls++ })

	suite.engine.Stop()
	suite.engine.RecordLap()
	suite.Zero(calls)
}

func (suite *EngineSuite) TestClose() {
	calls := 0
	suite.engine.Subscribe(func(Snapshot) { calls++ })

	suite.engine.Start()
	suite.wait(ms(100))
	suite.engine.Close()
	suite.Zero(suite.clock.Armed())
	suite.False(suite.engine.Running())
	suite.Equal(ms(100), suite.engine.Total())

	before := calls
	suite.engine.Start()
	suite.engine.Reset()
	suite.engine.RecordLap()
	suite.wait(ms(100))
	suite.Equal(before, calls)
	suite.Equal(ms(100), suite.engine.Total())
	suite.Zero(suite.clock.Armed())

	suite.engine.Close()
}

func (suite *EngineSuite) TestStaleTickIsDiscarded() {
	var tick func()
	sched := schedulerFunc(func(d time.Duration, fn func()) func() {
		tick = fn
		return func() {}
	})
	e := New(WithClock(suite.clock), WithScheduler(sched))

	e.Start()
	stale := tick
	suite.wait(ms(100))
	e.Stop()
	e.Start()

	suite.wait(ms(50))
	stale()
	suite.Equal(ms(100), e.Total(), "tick of a disarmed interval must not advance the engine")
	tick()
	suite.Equal(ms(150), e.Total())
}

func (suite *EngineSuite) TestClockRegression() {
	suite.engine.Start()
	suite.clock.Set(suite.clock.Now().Add(-time.Minute))
	suite.wait(ms(10))
	suite.Zero(suite.engine.Total())
}

func (suite *EngineSuite) TestTickInterval() {
	e := New(
		WithClock(suite.clock),
		WithScheduler(suite.clock),
		WithTickInterval(time.Second),
	)
	e.Start()
	suite.wait(ms(999))
	suite.Zero(e.Total())
	suite.wait(ms(1))
	suite.Equal(time.Second, e.Total())
	e.Close()

	suite.Equal(DefaultTickInterval, New(WithTickInterval(-1)).interval)
}

type schedulerFunc func(time.Duration, func()) func()

func (f schedulerFunc) Every(d time.Duration, fn func()) func() {
	return f(d, fn)
}
