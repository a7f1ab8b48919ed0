package humanoid

import "github.com/binzume/autosetup/generation"

// HumanBones lists standard humanoid bone names in table order.
var HumanBones = [...]string{
	"Chest", "Head", "Hips", "Jaw",
	"Left Index Distal", "Left Index Intermediate", "Left Index Proximal",
	"Left Little Distal", "Left Little Intermediate", "Left Little Proximal",
	"Left Middle Distal", "Left Middle Intermediate", "Left Middle Proximal",
	"Left Ring Distal", "Left Ring Intermediate", "Left Ring Proximal",
	"Left Thumb Distal", "Left Thumb Intermediate", "Left Thumb Proximal",
	"LeftEye", "LeftFoot", "LeftHand", "LeftLowerArm", "LeftLowerLeg",
	"LeftShoulder", "LeftToes", "LeftUpperArm", "LeftUpperLeg",
	"Neck",
	"Right Index Distal", "Right Index Intermediate", "Right Index Proximal",
	"Right Little Distal", "Right Little Intermediate", "Right Little Proximal",
	"Right Middle Distal", "Right Middle Intermediate", "Right Middle Proximal",
	"Right Ring Distal", "Right Ring Intermediate", "Right Ring Proximal",
	"Right Thumb Distal", "Right Thumb Intermediate", "Right Thumb Proximal",
	"RightEye", "RightFoot", "RightHand", "RightLowerArm", "RightLowerLeg",
	"RightShoulder", "RightToes", "RightUpperArm", "RightUpperLeg",
	"Spine", "UpperChest",
}

const TableLength = len(HumanBones)

type jointTable [TableLength]string

var g3Joints = jointTable{
	"CC_Base_Spine01", "CC_Base_Head", "CC_Base_Hip", "CC_Base_JawRoot",
	"CC_Base_L_Index3", "CC_Base_L_Index2", "CC_Base_L_Index1",
	"CC_Base_L_Pinky3", "CC_Base_L_Pinky2", "CC_Base_L_Pinky1",
	"CC_Base_L_Mid3", "CC_Base_L_Mid2", "CC_Base_L_Mid1",
	"CC_Base_L_Ring3", "CC_Base_L_Ring2", "CC_Base_L_Ring1",
	"CC_Base_L_Thumb3", "CC_Base_L_Thumb2", "CC_Base_L_Thumb1",
	"CC_Base_L_Eye", "CC_Base_L_Foot", "CC_Base_L_Hand", "CC_Base_L_Forearm", "CC_Base_L_Calf",
	"CC_Base_L_Clavicle", "CC_Base_L_ToeBase", "CC_Base_L_Upperarm", "CC_Base_L_Thigh",
	"CC_Base_NeckTwist01",
	"CC_Base_R_Index3", "CC_Base_R_Index2", "CC_Base_R_Index1",
	"CC_Base_R_Pinky3", "CC_Base_R_Pinky2", "CC_Base_R_Pinky1",
	"CC_Base_R_Mid3", "CC_Base_R_Mid2", "CC_Base_R_Mid1",
	"CC_Base_R_Ring3", "CC_Base_R_Ring2", "CC_Base_R_Ring1",
	"CC_Base_R_Thumb3", "CC_Base_R_Thumb2", "CC_Base_R_Thumb1",
	"CC_Base_R_Eye", "CC_Base_R_Foot", "CC_Base_R_Hand", "CC_Base_R_Forearm", "CC_Base_R_Calf",
	"CC_Base_R_Clavicle", "CC_Base_R_ToeBase", "CC_Base_R_Upperarm", "CC_Base_R_Thigh",
	"CC_Base_Waist", "CC_Base_Spine02",
}

var g1Joints = jointTable{
	"CC_Base_Spine01", "CC_Base_Head", "CC_Base_Hip", "CC_Base_JawRoot",
	"CC_Base_L_Finger12", "CC_Base_L_Finger11", "CC_Base_L_Finger10",
	"CC_Base_L_Finger42", "CC_Base_L_Finger41", "CC_Base_L_Finger40",
	"CC_Base_L_Finger22", "CC_Base_L_Finger21", "CC_Base_L_Finger20",
	"CC_Base_L_Finger32", "CC_Base_L_Finger31", "CC_Base_L_Finger30",
	"CC_Base_L_Finger02", "CC_Base_L_Finger01", "CC_Base_L_Finger00",
	"CC_Base_L_Eye", "CC_Base_L_Foot", "CC_Base_L_Hand", "CC_Base_L_Forearm", "CC_Base_L_Calf",
	"CC_Base_L_Clavicle", "CC_Base_L_ToeBase", "CC_Base_L_Upperarm", "CC_Base_L_Thigh",
	"CC_Base_NeckTwist01",
	"CC_Base_R_Finger12", "CC_Base_R_Finger11", "CC_Base_R_Finger10",
	"CC_Base_R_Finger42", "CC_Base_R_Finger41", "CC_Base_R_Finger40",
	"CC_Base_R_Finger22", "CC_Base_R_Finger21", "CC_Base_R_Finger20",
	"CC_Base_R_Finger32", "CC_Base_R_Finger31", "CC_Base_R_Finger30",
	"CC_Base_R_Finger02", "CC_Base_R_Finger01", "CC_Base_R_Finger00",
	"CC_Base_R_Eye", "CC_Base_R_Foot", "CC_Base_R_Hand", "CC_Base_R_Forearm", "CC_Base_R_Calf",
	"CC_Base_R_Clavicle", "CC_Base_R_ToeBase", "CC_Base_R_Upperarm", "CC_Base_R_Thigh",
	"CC_Base_Waist", "CC_Base_Spine02",
}

var gameBaseJoints = jointTable{
	"spine_02", "head", "pelvis", "CC_Base_JawRoot",
	"index_03_l", "index_02_l", "index_01_l",
	"pinky_03_l", "pinky_02_l", "pinky_01_l",
	"middle_03_l", "middle_02_l", "middle_01_l",
	"ring_03_l", "ring_02_l", "ring_01_l",
	"thumb_03_l", "thumb_02_l", "thumb_01_l",
	"CC_Base_L_Eye", "foot_l", "hand_l", "lowerarm_l", "calf_l",
	"clavicle_l", "ball_l", "upperarm_l", "thigh_l",
	"neck_01",
	"index_03_r", "index_02_r", "index_01_r",
	"pinky_03_r", "pinky_02_r", "pinky_01_r",
	"middle_03_r", "middle_02_r", "middle_01_r",
	"ring_03_r", "ring_02_r", "ring_01_r",
	"thumb_03_r", "thumb_02_r", "thumb_01_r",
	"CC_Base_R_Eye", "foot_r", "hand_r", "lowerarm_r", "calf_r",
	"clavicle_r", "ball_r", "upperarm_r", "thigh_r",
	"spine_01", "spine_03",
}

var tables = map[generation.Label]*jointTable{
	generation.G3:       &g3Joints,
	generation.G3Plus:   &g3Joints,
	generation.G1:       &g1Joints,
	generation.GameBase: &gameBaseJoints,
}
