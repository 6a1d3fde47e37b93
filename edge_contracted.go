package shp2ch

import (
	"math"

	"github.com/pkg/errors"
)

// CH_NO_WEIGHT marks direction which is not allowed
const CH_NO_WEIGHT = float32(math.MaxFloat32)

type Metric uint16

const (
	METRIC_DISTANCE = Metric(iota + 1)
	METRIC_TIME
)

func (iotaIdx Metric) String() string {
	return [...]string{"distance", "time"}[iotaIdx-1]
}

// CHEdge keeps both directions of a road in single record.
// Contracted identifiers and flags are reserved for contraction preprocessing and are never set here.
type CHEdge struct {
	ForwardWeight        float32
	BackwardWeight       float32
	Tags                 uint32
	ForwardContractedID  uint32
	BackwardContractedID uint32

	forwardContracted  bool
	backwardContracted bool
}

// CanMoveForward returns true if edge could be travelled from its source to its target
func (edge CHEdge) CanMoveForward() bool {
	return edge.ForwardWeight != CH_NO_WEIGHT
}

// CanMoveBackward returns true if edge could be travelled from its target to its source
func (edge CHEdge) CanMoveBackward() bool {
	return edge.BackwardWeight != CH_NO_WEIGHT
}

// SetContractedDirection marks directions which have been contracted
func (edge *CHEdge) SetContractedDirection(forward, backward bool) {
	edge.forwardContracted = forward
	edge.backwardContracted = backward
}

// ContractedDirection returns flags set by SetContractedDirection
func (edge CHEdge) ContractedDirection() (bool, bool) {
	return edge.forwardContracted, edge.backwardContracted
}

// ContractedBuilder builds graph prepared for contraction hierarchies
type ContractedBuilder struct {
	Vehicle Vehicle
	Metric  Metric
}

// NewContractedBuilder returns builder with distance metric
func NewContractedBuilder(vehicle Vehicle) *ContractedBuilder {
	return &ContractedBuilder{Vehicle: vehicle, Metric: METRIC_DISTANCE}
}

func (builder *ContractedBuilder) AddEdge(graph *Graph[CHEdge], tagsIndex *TagsIndex, edge EdgeInput) error {
	direction := directionOf(builder.Vehicle, edge.RawTags)
	weight, err := builder.weight(edge)
	if err != nil {
		return err
	}
	data := CHEdge{
		ForwardWeight:        CH_NO_WEIGHT,
		BackwardWeight:       CH_NO_WEIGHT,
		Tags:                 tagsIndex.Add(edge.Tags),
		ForwardContractedID:  0,
		BackwardContractedID: 0,
	}
	if direction.Forward() {
		data.ForwardWeight = weight
	}
	if direction.Backward() {
		data.BackwardWeight = weight
	}
	data.SetContractedDirection(false, false)
	return graph.AddArc(edge.From, edge.To, data, edge.Intermediates)
}

// weight returns meters or seconds depending on metric
func (builder *ContractedBuilder) weight(edge EdgeInput) (float32, error) {
	switch builder.Metric {
	case METRIC_DISTANCE, 0:
		return float32(edge.Distance), nil
	case METRIC_TIME:
		if builder.Vehicle == nil {
			return 0, errors.New("Time metric requires vehicle profile")
		}
		speed, err := builder.Vehicle.MaxSpeed(edge.RawTags)
		if err != nil {
			return 0, errors.Wrap(err, "Can't evaluate travel time")
		}
		return float32(edge.Distance / (speed / 3.6)), nil
	}
	return 0, errors.Errorf("Unknown metric %d", builder.Metric)
}
