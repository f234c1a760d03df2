package mapview

// View is the coordinate-transform collaborator the interaction layer drives.
// Screen coordinates are viewport pixels; world coordinates are map space.
//
// Implementations are owned by the rendering side. The gesture recognizer and
// the mode handlers only ever move the view incrementally through the
// mutating methods and then call RequestRedraw.
type View interface {
	ScreenToWorld(screen Vec2) Vec2
	WorldToScreen(world Vec2) Vec2

	// Scale is the current number of screen pixels per world unit.
	Scale() float64
	// ZoomLevelToScale converts a discrete zoom level (0 = whole world)
	// into a scale comparable with Scale.
	ZoomLevelToScale(level float64) float64

	// PlaceWorldAt moves the view so that world lies under screen.
	PlaceWorldAt(world, screen Vec2)
	// ScaleAt sets the scale while keeping the world point under pivot fixed.
	ScaleAt(scale float64, pivot Vec2)
	// RotateAt rotates the view by deg degrees around the screen point pivot.
	RotateAt(deg float64, pivot Vec2)

	RequestRedraw()
}
