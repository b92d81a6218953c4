package skeleton

import (
	"github.com/swdee/go-kinectviz"
)

// Bone is a line drawn from the Start joint to the End joint
type Bone struct {
	Start kinectviz.JointType
	End   kinectviz.JointType
}

// BoneCount is the number of bones in a skeleton
const BoneCount = 24

// bones defines the anatomical connections drawn for every body
var bones = [BoneCount]Bone{
	// torso
	{kinectviz.Head, kinectviz.Neck},
	{kinectviz.Neck, kinectviz.SpineShoulder},
	{kinectviz.SpineShoulder, kinectviz.SpineMid},
	{kinectviz.SpineMid, kinectviz.SpineBase},
	{kinectviz.SpineShoulder, kinectviz.ShoulderRight},
	{kinectviz.SpineShoulder, kinectviz.ShoulderLeft},
	{kinectviz.SpineBase, kinectviz.HipRight},
	{kinectviz.SpineBase, kinectviz.HipLeft},

	// right arm
	{kinectviz.ShoulderRight, kinectviz.ElbowRight},
	{kinectviz.ElbowRight, kinectviz.WristRight},
	{kinectviz.WristRight, kinectviz.HandRight},
	{kinectviz.HandRight, kinectviz.HandTipRight},
	{kinectviz.WristRight, kinectviz.ThumbRight},

	// left arm
	{kinectviz.ShoulderLeft, kinectviz.ElbowLeft},
	{kinectviz.ElbowLeft, kinectviz.WristLeft},
	{kinectviz.WristLeft, kinectviz.HandLeft},
	{kinectviz.HandLeft, kinectviz.HandTipLeft},
	{kinectviz.WristLeft, kinectviz.ThumbLeft},

	// right leg
	{kinectviz.HipRight, kinectviz.KneeRight},
	{kinectviz.KneeRight, kinectviz.AnkleRight},
	{kinectviz.AnkleRight, kinectviz.FootRight},

	// left leg
	{kinectviz.HipLeft, kinectviz.KneeLeft},
	{kinectviz.KneeLeft, kinectviz.AnkleLeft},
	{kinectviz.AnkleLeft, kinectviz.FootLeft},
}

// Bones returns the bone definitions shared by all bodies
func Bones() [BoneCount]Bone {
	return bones
}
