package game

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/config"
)

const frame = 1.0 / 60.0

type recordingSink struct {
	sounds []Sound
}

func (s *recordingSink) Play(snd Sound) {
	s.sounds = append(s.sounds, snd)
}

func (s *recordingSink) last() (Sound, bool) {
	if len(s.sounds) == 0 {
		return 0, false
	}
	return s.sounds[len(s.sounds)-1], true
}

type recordingRecorder struct {
	starts, ends, walls int
	hits                []components.Side
	goals               []components.Side
}

func (r *recordingRecorder) RecordMatchStart(float64) { r.starts++ }
func (r *recordingRecorder) RecordMatchEnd(float64)   { r.ends++ }
func (r *recordingRecorder) RecordWall(float64)       { r.walls++ }
func (r *recordingRecorder) RecordPaddleHit(_ float64, side components.Side, _, _ float64) {
	r.hits = append(r.hits, side)
}
func (r *recordingRecorder) RecordGoal(_ float64, scorer components.Side, _, _ int) {
	r.goals = append(r.goals, scorer)
}

func newTestGame(t *testing.T, seed int64) (*Game, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	cfg := config.Default()
	cfg.Options.SoundOn = true
	g, err := New(cfg, Options{Seed: seed, Sink: sink})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, sink
}

// placeBall overrides the ball state for scenario tests.
func (g *Game) placeBall(x, y, vx, vy float64) {
	pos := g.posMap.Get(g.ball)
	vel := g.velMap.Get(g.ball)
	pos.X, pos.Y = x, y
	vel.X, vel.Y = vx, vy
}

func (g *Game) ballState() (components.Position, components.Velocity) {
	return *g.posMap.Get(g.ball), *g.velMap.Get(g.ball)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Playfield.Width = -600
	_, err := New(cfg, Options{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("New() error = %v, want ErrInvalidConfig", err)
	}
}

func TestNewInitialState(t *testing.T) {
	g, _ := newTestGame(t, 1)
	s := g.Snapshot()

	if s.Running || s.Paused {
		t.Errorf("new game running=%v paused=%v", s.Running, s.Paused)
	}
	if s.Players[0].Score != 0 || s.Players[1].Score != 0 {
		t.Errorf("scores = %d:%d", s.Players[0].Score, s.Players[1].Score)
	}
	if s.Players[0].Name != "Left" || s.Players[1].Name != "Right" {
		t.Errorf("names = %q %q", s.Players[0].Name, s.Players[1].Name)
	}
	if s.Paddles[0].X != 10 || s.Paddles[1].X != 580 {
		t.Errorf("paddle x = %v/%v, want 10/580", s.Paddles[0].X, s.Paddles[1].X)
	}
	if s.Paddles[0].Y != 170 || s.Paddles[1].Y != 170 {
		t.Errorf("paddle y = %v/%v, want 170", s.Paddles[0].Y, s.Paddles[1].Y)
	}
	if s.BallRate != 1 || s.PaddleRate != 1 {
		t.Errorf("rates = %v/%v", s.BallRate, s.PaddleRate)
	}
}

func TestStartGameServe(t *testing.T) {
	sides := map[bool]int{}
	for seed := int64(1); seed <= 64; seed++ {
		g, _ := newTestGame(t, seed)
		g.StartGame()

		if !g.Running() || g.Paused() {
			t.Fatalf("seed %d: running=%v paused=%v", seed, g.Running(), g.Paused())
		}
		pos, vel := g.ballState()
		switch {
		case pos.X == 5 && vel.X == 2:
			sides[true]++
		case pos.X == 595 && vel.X == -2:
			sides[false]++
		default:
			t.Fatalf("seed %d: serve at x=%v speedX=%v", seed, pos.X, vel.X)
		}
		if math.Abs(vel.Y) != 2 {
			t.Errorf("seed %d: speedY = %v", seed, vel.Y)
		}
		if pos.Y < 5 || pos.Y > 395 {
			t.Errorf("seed %d: serve y = %v outside field", seed, pos.Y)
		}
	}
	if sides[true] == 0 || sides[false] == 0 {
		t.Errorf("serve sides never varied: %v", sides)
	}
}

func TestStartGameNoopWhileRunning(t *testing.T) {
	g, _ := newTestGame(t, 3)
	g.StartGame()
	g.goal(components.SideLeft)
	before, _ := g.ballState()

	g.StartGame()
	if g.Player(components.SideLeft).Score != 1 {
		t.Errorf("StartGame while running reset the score")
	}
	if after, _ := g.ballState(); after != before {
		t.Errorf("StartGame while running moved the ball")
	}
}

func TestStopGameKeepsScores(t *testing.T) {
	g, _ := newTestGame(t, 4)
	g.StartGame()
	g.goal(components.SideRight)
	g.goal(components.SideRight)
	g.StopGame()

	if g.Running() || g.Paused() {
		t.Fatalf("after stop running=%v paused=%v", g.Running(), g.Paused())
	}
	if g.Player(components.SideRight).Score != 2 {
		t.Errorf("score = %d, want 2", g.Player(components.SideRight).Score)
	}

	before, _ := g.ballState()
	for i := 0; i < 60; i++ {
		g.Update(frame)
	}
	if after, _ := g.ballState(); after != before {
		t.Errorf("ball moved while stopped")
	}

	g.StartGame()
	if g.Player(components.SideRight).Score != 0 {
		t.Errorf("StartGame did not reset score")
	}
}

func TestPauseWhileNotRunningIsNoop(t *testing.T) {
	g, _ := newTestGame(t, 5)
	before := g.Snapshot()

	g.PauseGame()
	g.TogglePause()
	g.ResumeGame()

	if after := g.Snapshot(); after != before {
		t.Errorf("pause outside a match changed state:\n%+v\n%+v", before, after)
	}
}

func TestPauseResume(t *testing.T) {
	g, _ := newTestGame(t, 6)
	g.StartGame()
	g.Update(frame)

	g.TogglePause()
	if !g.Paused() || !g.Running() {
		t.Fatalf("after toggle running=%v paused=%v", g.Running(), g.Paused())
	}

	pos, vel := g.ballState()
	g.SetPaddleIntent(components.SideLeft, DirDown, true)
	for i := 0; i < 10; i++ {
		g.Update(frame)
	}
	if p, v := g.ballState(); p != pos || v != vel {
		t.Errorf("ball changed while paused")
	}
	if y := g.Snapshot().Paddles[0].Y; y != 190 {
		t.Errorf("paddle y while paused = %v, want 190", y)
	}

	g.TogglePause()
	if g.Paused() {
		t.Fatal("still paused after second toggle")
	}
	g.Update(frame)
	p, _ := g.ballState()
	if math.Abs(p.X-(pos.X+vel.X)) > 1e-9 {
		t.Errorf("ball x after resume = %v, want %v", p.X, pos.X+vel.X)
	}
}

func TestNearCenterAngledHit(t *testing.T) {
	g, sink := newTestGame(t, 7)
	g.StartGame()
	g.SetAngledReturn(true)
	g.DragPaddleTo(components.SideLeft, 170)

	// Next step brings the ball's left edge onto the paddle face at center height
	g.placeBall(27, 198, -2, 2)
	speed := math.Hypot(2, 2)
	sink.sounds = nil

	if g.stepBall() {
		t.Fatal("unexpected goal")
	}

	if snd, ok := sink.last(); !ok || snd != SoundLeftPaddle {
		t.Errorf("sounds = %v, want left paddle", sink.sounds)
	}
	_, vel := g.ballState()
	if math.Abs(vel.X-speed) > 1e-9 {
		t.Errorf("speedX = %v, want %v", vel.X, speed)
	}
	if math.Abs(vel.Y) > 1e-9 {
		t.Errorf("speedY = %v, want 0", vel.Y)
	}
	s := g.Snapshot()
	if math.Abs(s.BallRate-1.1) > 1e-12 || math.Abs(s.PaddleRate-1.1) > 1e-12 {
		t.Errorf("rates = %v/%v, want 1.1", s.BallRate, s.PaddleRate)
	}
}

func TestConstantAngleHit(t *testing.T) {
	g, _ := newTestGame(t, 8)
	g.StartGame()
	g.SetAngledReturn(false)
	g.DragPaddleTo(components.SideRight, 100)

	g.placeBall(573, 120, 2, -2)
	g.stepBall()

	_, vel := g.ballState()
	if vel.X != -2 || vel.Y != -2 {
		t.Errorf("velocity = %+v, want {-2 -2}", vel)
	}
}

func TestRightGoal(t *testing.T) {
	g, sink := newTestGame(t, 9)
	g.StartGame()
	g.rally.Escalate()
	g.rally.Escalate()

	g.placeBall(604, 50, 2, 2)
	sink.sounds = nil
	if !g.stepBall() {
		t.Fatal("expected goal")
	}

	if snd, ok := sink.last(); !ok || snd != SoundGoal {
		t.Errorf("sounds = %v, want goal", sink.sounds)
	}
	if g.Player(components.SideLeft).Score != 1 || g.Player(components.SideRight).Score != 0 {
		t.Errorf("scores = %d:%d, want 1:0",
			g.Player(components.SideLeft).Score, g.Player(components.SideRight).Score)
	}
	pos, vel := g.ballState()
	if pos.X != 5 || vel.X <= 0 {
		t.Errorf("serve at x=%v speedX=%v, want left inset moving right", pos.X, vel.X)
	}
	s := g.Snapshot()
	if s.BallRate != 1.0 || s.PaddleRate != 1.0 {
		t.Errorf("rates = %v/%v, want exactly 1", s.BallRate, s.PaddleRate)
	}
	if !s.Running || s.Paused || !s.Resting {
		t.Errorf("status after goal running=%v paused=%v resting=%v", s.Running, s.Paused, s.Resting)
	}
}

func TestLeftGoal(t *testing.T) {
	g, _ := newTestGame(t, 10)
	g.StartGame()
	g.placeBall(-4, 300, -2, 2)
	if !g.stepBall() {
		t.Fatal("expected goal")
	}
	if g.Player(components.SideRight).Score != 1 {
		t.Errorf("right score = %d, want 1", g.Player(components.SideRight).Score)
	}
	pos, vel := g.ballState()
	if pos.X != 595 || vel.X >= 0 {
		t.Errorf("serve at x=%v speedX=%v, want right inset moving left", pos.X, vel.X)
	}
}

func TestGoalDelayKeepsPaddlesResponsive(t *testing.T) {
	g, _ := newTestGame(t, 11)
	g.StartGame()
	g.placeBall(604, 50, 2, 2)
	g.stepBall()
	served, _ := g.ballState()

	g.SetPaddleIntent(components.SideLeft, DirUp, true)
	for i := 0; i < 6; i++ {
		g.Update(frame)
	}
	if y := g.Snapshot().Paddles[0].Y; y != 158 {
		t.Errorf("paddle y during goal delay = %v, want 158", y)
	}
	if p, _ := g.ballState(); p != served {
		t.Errorf("ball moved during goal delay")
	}

	for i := 0; i < 30; i++ {
		g.Update(frame)
	}
	if g.Snapshot().Resting {
		t.Fatal("still resting after delay")
	}
	if p, _ := g.ballState(); p == served {
		t.Errorf("ball did not move after delay")
	}
	if !g.Running() || g.Paused() {
		t.Errorf("goal left running state")
	}
}

func TestEscalationRaisesStepRate(t *testing.T) {
	g, _ := newTestGame(t, 12)
	g.StartGame()
	// Stationary ball, so only the step count changes
	g.placeBall(300, 200, 0, 0)

	start := g.BallSteps()
	for i := 0; i < 60; i++ {
		g.Update(frame)
	}
	if got := g.BallSteps() - start; got != 60 {
		t.Fatalf("base steps = %d, want 60", got)
	}

	for i := 0; i < 10; i++ {
		g.rally.Escalate()
	}
	g.DragPaddleTo(components.SideLeft, 0)
	g.SetPaddleIntent(components.SideLeft, DirDown, true)

	start = g.BallSteps()
	for i := 0; i < 60; i++ {
		g.Update(frame)
	}
	want := 60 * math.Pow(1.1, 10)
	got := float64(g.BallSteps() - start)
	if math.Abs(got-want) > 2 {
		t.Errorf("escalated steps = %v, want ~%v", got, want)
	}
	// Paddles step faster, not farther: 2 units per step
	if y := g.Snapshot().Paddles[0].Y; math.Abs(y-2*want) > 4 {
		t.Errorf("escalated paddle y = %v, want ~%v", y, 2*want)
	}
}

func TestPaddleBoundsUnderRandomInput(t *testing.T) {
	g, _ := newTestGame(t, 13)
	g.StartGame()
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 3000; i++ {
		side := components.Side(rng.Intn(2))
		switch rng.Intn(4) {
		case 0:
			g.SetPaddleIntent(side, DirUp, rng.Intn(2) == 0)
		case 1:
			g.SetPaddleIntent(side, DirDown, rng.Intn(2) == 0)
		case 2:
			g.DragPaddleTo(side, rng.Float64()*800-200)
		case 3:
			g.rally.Escalate()
		}
		g.Update(rng.Float64() * 0.05)

		for _, p := range g.Snapshot().Paddles {
			if p.Y < 0 || p.Y+p.Length > 400 {
				t.Fatalf("step %d: %v paddle y = %v out of bounds", i, p.Side, p.Y)
			}
		}
	}
}

func TestScoresMonotonic(t *testing.T) {
	g, _ := newTestGame(t, 14)
	g.StartGame()
	rng := rand.New(rand.NewSource(5))
	var last [2]int

	for i := 0; i < 20000; i++ {
		if i%50 == 0 {
			side := components.Side(rng.Intn(2))
			g.SetPaddleIntent(side, Direction(rng.Intn(2)), rng.Intn(2) == 0)
		}
		g.Update(frame)
		for side, p := range g.Snapshot().Players {
			if p.Score < last[side] {
				t.Fatalf("tick %d: %s score dropped %d -> %d", i, p.Name, last[side], p.Score)
			}
			last[side] = p.Score
		}
	}
	if last[0]+last[1] == 0 {
		t.Error("no goals in 20000 ticks")
	}
}

func TestDragPaddleClamps(t *testing.T) {
	g, _ := newTestGame(t, 15)
	g.DragPaddleTo(components.SideLeft, -30)
	g.DragPaddleTo(components.SideRight, 1000)
	s := g.Snapshot()
	if s.Paddles[0].Y != 0 {
		t.Errorf("left y = %v, want 0", s.Paddles[0].Y)
	}
	if s.Paddles[1].Y != 340 {
		t.Errorf("right y = %v, want 340", s.Paddles[1].Y)
	}
}

func TestSoundOffSuppressesEvents(t *testing.T) {
	g, sink := newTestGame(t, 16)
	g.StartGame()
	g.SetSoundOn(false)
	sink.sounds = nil

	g.placeBall(300, 4, 2, -2)
	g.stepBall()
	if len(sink.sounds) != 0 {
		t.Errorf("sounds with sound off: %v", sink.sounds)
	}

	g.SetSoundOn(true)
	g.placeBall(300, 4, 2, -2)
	g.stepBall()
	if snd, ok := sink.last(); !ok || snd != SoundWall {
		t.Errorf("sounds = %v, want wall", sink.sounds)
	}
}

func TestRecorderEvents(t *testing.T) {
	rec := &recordingRecorder{}
	g, err := New(config.Default(), Options{Seed: 17, Recorder: rec})
	if err != nil {
		t.Fatal(err)
	}
	g.StartGame()
	g.placeBall(300, 4, 2, -2)
	g.stepBall()
	g.placeBall(25+2, 200, -2, 0)
	g.stepBall()
	g.placeBall(604, 50, 2, 0)
	g.stepBall()
	g.StopGame()
	g.StopGame()

	if rec.starts != 1 || rec.ends != 1 {
		t.Errorf("starts/ends = %d/%d, want 1/1", rec.starts, rec.ends)
	}
	if rec.walls != 1 {
		t.Errorf("walls = %d, want 1", rec.walls)
	}
	if len(rec.hits) != 1 || rec.hits[0] != components.SideLeft {
		t.Errorf("hits = %v, want [Left]", rec.hits)
	}
	if len(rec.goals) != 1 || rec.goals[0] != components.SideLeft {
		t.Errorf("goals = %v, want [Left]", rec.goals)
	}
}

func TestSetPlayfieldSize(t *testing.T) {
	g, _ := newTestGame(t, 18)
	g.DragPaddleTo(components.SideRight, 340)

	err := g.SetPlayfieldSize(-1, 300)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("SetPlayfieldSize(-1) = %v, want ErrInvalidConfig", err)
	}
	if s := g.Snapshot(); s.Width != 600 || s.Height != 400 {
		t.Errorf("invalid resize changed size to %vx%v", s.Width, s.Height)
	}

	if err := g.SetPlayfieldSize(800, 300); err != nil {
		t.Fatalf("SetPlayfieldSize: %v", err)
	}
	s := g.Snapshot()
	if s.Paddles[1].X != 780 {
		t.Errorf("right paddle x = %v, want 780", s.Paddles[1].X)
	}
	if s.Paddles[1].Y != 240 {
		t.Errorf("right paddle y = %v, want clamped 240", s.Paddles[1].Y)
	}
}

func TestControllerAppliesAtTickBoundary(t *testing.T) {
	g, _ := newTestGame(t, 19)
	ctrl := g.Controller()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctrl.SetPaddleIntent(components.SideRight, DirUp, i%2 == 0)
			ctrl.DragPaddleTo(components.SideLeft, float64(i*10))
		}(i)
	}
	wg.Wait()
	ctrl.StartGame()
	ctrl.ToggleSound()

	if g.Running() {
		t.Fatal("action applied before Update")
	}
	g.Update(0)
	if !g.Running() {
		t.Error("StartGame not applied")
	}
	if g.SoundOn() {
		t.Error("ToggleSound not applied")
	}

	ctrl.TogglePause()
	ctrl.SetAngledReturn(false)
	g.Update(frame)
	if !g.Paused() || g.AngledReturn() {
		t.Errorf("paused=%v angled=%v after queued actions", g.Paused(), g.AngledReturn())
	}

	ctrl.StopGame()
	g.Update(frame)
	if g.Running() {
		t.Error("StopGame not applied")
	}
}

func TestPaddleAt(t *testing.T) {
	g, _ := newTestGame(t, 1)
	s := g.Snapshot()

	tests := []struct {
		name   string
		x, y   float64
		side   components.Side
		wantOK bool
	}{
		{"left paddle", 15, 200, components.SideLeft, true},
		{"right paddle edge", 590, 230, components.SideRight, true},
		{"middle", 300, 200, 0, false},
		{"above left paddle", 15, 160, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side, ok := s.PaddleAt(tt.x, tt.y)
			if ok != tt.wantOK || (ok && side != tt.side) {
				t.Errorf("PaddleAt(%v, %v) = %v, %v; want %v, %v", tt.x, tt.y, side, ok, tt.side, tt.wantOK)
			}
		})
	}
}

func TestDragKeepsAnchor(t *testing.T) {
	g, _ := newTestGame(t, 1)

	// Grab the right paddle 20 below its top edge
	d, ok := BeginDrag(g.Snapshot(), 585, 190)
	if !ok || d.Side != components.SideRight {
		t.Fatalf("BeginDrag = %+v, %v; want right paddle", d, ok)
	}

	g.DragPaddleTo(d.Side, d.Target(250))
	if y := g.Snapshot().Paddles[components.SideRight].Y; y != 230 {
		t.Errorf("paddle y = %v, want 230", y)
	}

	// Dragging far past the bottom clamps
	g.DragPaddleTo(d.Side, d.Target(1000))
	if y := g.Snapshot().Paddles[components.SideRight].Y; y != 340 {
		t.Errorf("paddle y = %v, want 340", y)
	}

	if _, ok := BeginDrag(g.Snapshot(), 300, 200); ok {
		t.Error("BeginDrag on empty playfield should fail")
	}
}

func TestSetPlayfieldSizeKeepsBallInside(t *testing.T) {
	g, sink := newTestGame(t, 20)
	g.StartGame()
	g.placeBall(300, 350, 2, 2)
	sink.sounds = nil

	if err := g.SetPlayfieldSize(600, 300); err != nil {
		t.Fatalf("SetPlayfieldSize: %v", err)
	}
	if pos, _ := g.ballState(); pos.Y != 295 {
		t.Fatalf("ball y = %v, want clamped 295", pos.Y)
	}

	for i := 0; i < 100; i++ {
		if g.stepBall() {
			t.Fatalf("step %d: unexpected goal", i)
		}
		pos, vel := g.ballState()
		// One step of overshoot at most
		if pos.Y < 5-math.Abs(vel.Y) || pos.Y > 295+math.Abs(vel.Y) {
			t.Fatalf("step %d: ball y = %v outside the field", i, pos.Y)
		}
	}

	walls := 0
	for _, s := range sink.sounds {
		if s == SoundWall {
			walls++
		}
	}
	if walls != 1 {
		t.Errorf("wall sounds = %d, want 1", walls)
	}
}

func TestSetPlayfieldSizeBallPastGoal(t *testing.T) {
	g, _ := newTestGame(t, 21)
	g.StartGame()
	g.placeBall(500, 200, 2, 0)

	if err := g.SetPlayfieldSize(400, 400); err != nil {
		t.Fatalf("SetPlayfieldSize: %v", err)
	}
	if !g.stepBall() {
		t.Fatal("ball past the right goal line did not score")
	}
	if got := g.Player(components.SideLeft).Score; got != 1 {
		t.Errorf("left score = %d, want 1", got)
	}
}

func TestControllerSetPlayfieldSize(t *testing.T) {
	g, _ := newTestGame(t, 22)
	ctrl := g.Controller()

	ctrl.SetPlayfieldSize(-1, 100)
	g.Update(0)
	if s := g.Snapshot(); s.Width != 600 || s.Height != 400 {
		t.Errorf("rejected resize applied: %vx%v", s.Width, s.Height)
	}

	ctrl.SetPlayfieldSize(700, 500)
	if s := g.Snapshot(); s.Width != 600 {
		t.Error("resize applied before Update")
	}
	g.Update(0)
	s := g.Snapshot()
	if s.Width != 700 || s.Height != 500 {
		t.Errorf("size = %vx%v, want 700x500", s.Width, s.Height)
	}
	if s.Paddles[components.SideRight].X != 680 {
		t.Errorf("right paddle x = %v, want 680", s.Paddles[components.SideRight].X)
	}
}
