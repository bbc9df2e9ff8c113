package skate

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/nightskate/internal/config"
	"github.com/vovakirdan/nightskate/internal/core"
)

// Steering constants. Rates are per tick.
const (
	maxTilt      = 0.35 // Radians of body roll while carving
	tiltRate     = 0.05
	tiltDecay    = 0.85
	coastDecay   = 0.9  // Extra lateral damping with no steering input
	lateralDecay = 0.94 // Applied every tick
)

// Phase is the skater's locomotion state.
type Phase int

const (
	Grounded Phase = iota
	Jumping
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Grounded:
		return "grounded"
	case Jumping:
		return "jumping"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// SkaterState is the authoritative physical state of the skater.
type SkaterState struct {
	Position        mgl64.Vec3 // Y includes ride height plus jump height
	RotationZ       float64    // Body roll while carving
	RotationY       float64    // Stride yaw target
	LateralVelocity float64
	Speed           float64
	Phase           Phase
	JumpHeight      float64
	JumpVelocity    float64
	Score           float64
	AnimPhase       float64
}

// Skater integrates held input into SkaterState once per tick.
type Skater struct {
	State SkaterState
	Pose  Pose

	cfg        config.SkaterConfig
	halfRoad   float64
	jumpWasSet bool // Jump flag on the previous tick, for edge detection
}

// NewSkater creates a skater at the origin riding at minimum speed.
func NewSkater(cfg config.SkateConfig) *Skater {
	s := &Skater{
		cfg:      cfg.Skater,
		halfRoad: cfg.HalfRoad(),
	}
	s.Reset()
	return s
}

// Reset puts the skater back at the origin, grounded, at minimum speed.
func (s *Skater) Reset() {
	s.State = SkaterState{
		Position: mgl64.Vec3{0, s.cfg.RideHeight, 0},
		Speed:    s.cfg.MinSpeed,
		Phase:    Grounded,
	}
	s.jumpWasSet = false
	s.Pose = computePose(s.State, false)
}

// Update advances the skater by one tick. It does nothing once the run is
// over.
func (s *Skater) Update(dt float64, in core.InputFrame) {
	st := &s.State
	if st.Phase == GameOver {
		return
	}

	braking := in.Has(core.ActionBrake)
	s.updateSpeed(braking, in.Has(core.ActionForward))

	st.Position[2] -= st.Speed
	st.Score += st.Speed

	s.updateSteering(in.Has(core.ActionLeft), in.Has(core.ActionRight))

	jump := in.Has(core.ActionJump)
	if jump && !s.jumpWasSet && st.Phase == Grounded {
		st.Phase = Jumping
		st.JumpVelocity = s.cfg.JumpPower
	}
	s.jumpWasSet = jump

	if st.Phase == Jumping {
		st.JumpHeight += st.JumpVelocity
		st.JumpVelocity -= s.cfg.Gravity
		if st.JumpHeight <= 0 {
			st.JumpHeight = 0
			st.JumpVelocity = 0
			st.Phase = Grounded
		}
	}
	st.Position[1] = s.cfg.RideHeight + st.JumpHeight

	st.AnimPhase += dt * (st.Speed*12 + 2.5)
	s.Pose = computePose(*st, braking)
	st.RotationY = s.Pose.Yaw

	assert(st.Speed >= 0 && st.Speed <= s.cfg.MaxSpeed, "skater: speed out of bounds")
}

func (s *Skater) updateSpeed(braking, forward bool) {
	st := &s.State
	switch {
	case braking:
		st.Speed = max(0, st.Speed-s.cfg.BrakeDecel)
	case forward:
		st.Speed = min(s.cfg.MaxSpeed, st.Speed+s.cfg.Accel)
	case st.Speed > s.cfg.MinSpeed:
		st.Speed *= s.cfg.Friction
	default:
		st.Speed = min(s.cfg.MinSpeed, st.Speed+s.cfg.Recover)
	}
	st.Speed = core.ClampF(st.Speed, 0, s.cfg.MaxSpeed)
}

// updateSteering applies carving input. Left wins when both are held.
func (s *Skater) updateSteering(left, right bool) {
	st := &s.State
	switch {
	case left:
		st.LateralVelocity -= s.cfg.TurnSpeed
		st.RotationZ = min(st.RotationZ+tiltRate, maxTilt)
	case right:
		st.LateralVelocity += s.cfg.TurnSpeed
		st.RotationZ = max(st.RotationZ-tiltRate, -maxTilt)
	default:
		st.LateralVelocity *= coastDecay
		st.RotationZ *= tiltDecay
	}

	st.Position[0] += st.LateralVelocity
	st.LateralVelocity *= lateralDecay

	if x := st.Position[0]; x > s.halfRoad || x < -s.halfRoad {
		st.Position[0] = core.Sign(x) * s.halfRoad
		st.LateralVelocity = 0
	}
}

// Crash moves the skater into the terminal phase.
func (s *Skater) Crash() {
	s.State.Phase = GameOver
}

// NormalizedSpeed returns speed as a fraction of the top speed.
func (s *Skater) NormalizedSpeed() float64 {
	if s.cfg.MaxSpeed <= 0 {
		return 0
	}
	return s.State.Speed / s.cfg.MaxSpeed
}
