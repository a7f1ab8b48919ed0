package humanoid

import "strings"

// Clip holds import settings for one animation take.
type Clip struct {
	Name                    string
	Loop                    bool
	KeepOriginalOrientation bool
	KeepOriginalPositionY   bool
	KeepOriginalPositionXZ  bool
	LockRootRotation        bool
	LockRootHeightY         bool
	LockRootPositionXZ      bool
}

// ClipSettings returns import settings for the named takes. Preview takes
// and T-poses are not imported.
func ClipSettings(names []string) []Clip {
	var clips []Clip
	for _, n := range names {
		if strings.Contains(n, "__preview__") || strings.Contains(n, "T-Pose") {
			continue
		}
		clips = append(clips, Clip{
			Name:                    n,
			Loop:                    strings.Contains(strings.ToLower(n), "_loop"),
			KeepOriginalOrientation: true,
			KeepOriginalPositionY:   true,
			KeepOriginalPositionXZ:  true,
			LockRootRotation:        true,
			LockRootHeightY:         true,
			LockRootPositionXZ:      true,
		})
	}
	return clips
}
