package shp2ch

type Direction uint16

const (
	DIRECTION_BOTH = Direction(iota + 1)
	DIRECTION_FORWARD
	DIRECTION_BACKWARD
)

func (iotaIdx Direction) String() string {
	return [...]string{"both", "forward", "backward"}[iotaIdx-1]
}

// Forward returns true if travelling along digitized direction is allowed
func (iotaIdx Direction) Forward() bool {
	return iotaIdx == DIRECTION_BOTH || iotaIdx == DIRECTION_FORWARD
}

// Backward returns true if travelling against digitized direction is allowed
func (iotaIdx Direction) Backward() bool {
	return iotaIdx == DIRECTION_BOTH || iotaIdx == DIRECTION_BACKWARD
}
