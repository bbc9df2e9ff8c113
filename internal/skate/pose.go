package skate

import "math"

// Pose holds per-limb target angles in radians. The renderer eases toward
// these; the simulation only publishes them.
type Pose struct {
	TorsoLean    float64 `json:"torso_lean"`
	LeftLegX     float64 `json:"left_leg_x"`
	LeftLegZ     float64 `json:"left_leg_z"`
	RightLegX    float64 `json:"right_leg_x"`
	RightLegZ    float64 `json:"right_leg_z"`
	LeftArmX     float64 `json:"left_arm_x"`
	RightArmX    float64 `json:"right_arm_x"`
	RightBootYaw float64 `json:"right_boot_yaw"`
	Yaw          float64 `json:"yaw"`
	Braking      bool    `json:"braking"`
	Airborne     bool    `json:"airborne"`
}

// computePose derives the animation targets for the current state.
func computePose(st SkaterState, braking bool) Pose {
	lean := 0.2 + st.Speed*0.4
	p := Pose{
		TorsoLean: lean,
		LeftLegX:  lean,
		RightLegX: lean,
		LeftArmX:  0.2,
		RightArmX: 0.2,
		Airborne:  st.Phase == Jumping,
	}

	grounded := st.Phase == Grounded
	switch {
	case braking && grounded && st.Speed > 0.01:
		// T-stop: drag the right skate back, turned across the direction of travel.
		p.Braking = true
		p.RightLegX = -0.5
		p.RightLegZ = 0.15
		p.RightBootYaw = -math.Pi / 2
		p.LeftLegX = lean - 0.2
		p.RightArmX = -0.4
		p.LeftArmX = 0.5
	case grounded && st.Speed > 0.05:
		cycle := math.Sin(st.AnimPhase * 0.4)
		if cycle > 0 {
			p.RightLegX = -cycle * 0.6
			p.RightLegZ = cycle * 0.6
			p.RightArmX = cycle * 0.8
			p.Yaw = -cycle * 0.15
		} else {
			c := math.Abs(cycle)
			p.LeftLegX = -c * 0.6
			p.LeftLegZ = -c * 0.6
			p.LeftArmX = c * 0.8
			p.Yaw = c * 0.15
		}
	}
	return p
}
