package batch

import "sonar-renderer/internal/pose"

// Trajectory expands waypoints into a pose per frame. Each segment
// contributes framesPerSegment poses starting at its first waypoint; the
// last waypoint is appended once at the end.
func Trajectory(waypoints []pose.Pose, framesPerSegment int) []pose.Pose {
	if len(waypoints) == 0 {
		return nil
	}
	if framesPerSegment < 1 {
		framesPerSegment = 1
	}
	out := make([]pose.Pose, 0, (len(waypoints)-1)*framesPerSegment+1)
	for i := 0; i+1 < len(waypoints); i++ {
		for f := 0; f < framesPerSegment; f++ {
			out = append(out, pose.Lerp(waypoints[i], waypoints[i+1], float64(f)/float64(framesPerSegment)))
		}
	}
	return append(out, waypoints[len(waypoints)-1])
}
