package shp2ch

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// Vehicle is a profile deciding how edges could be travelled
type Vehicle interface {
	UniqueName() string
	// IsOneWay returns allowed travel direction for edge with given (unfiltered) tags
	IsOneWay(tags osm.Tags) Direction
	// CanTraverse returns true if edge with given tags could be used at all
	CanTraverse(tags osm.Tags) bool
	// MaxSpeed returns speed (km/h) which should be used on edge with given tags
	MaxSpeed(tags osm.Tags) (float64, error)
}

// OnewayRule describes where one-way information lives in the attributes
type OnewayRule struct {
	Key           string // e.g. "ONEWAY"
	ForwardValue  string // e.g. "FT"
	BackwardValue string // e.g. "TF"
}

// IsOneWay matches raw value of the one-way key against forward/backward values.
// Comparison is exact and case-sensitive. Anything else means both directions.
func (rule OnewayRule) IsOneWay(tags osm.Tags) Direction {
	if rule.Key == "" {
		return DIRECTION_BOTH
	}
	value, ok := lookupTag(tags, rule.Key)
	if !ok {
		return DIRECTION_BOTH
	}
	switch value {
	case rule.ForwardValue:
		return DIRECTION_FORWARD
	case rule.BackwardValue:
		return DIRECTION_BACKWARD
	}
	return DIRECTION_BOTH
}

const (
	bikeMaxSpeed  = 30.0
	truckMaxSpeed = 120.0
)

// Car takes speed from configured attribute
type Car struct {
	OnewayRule
	SpeedKey string // e.g. "KPH"
}

// NewCar returns car profile
func NewCar(rule OnewayRule, speedKey string) *Car {
	return &Car{OnewayRule: rule, SpeedKey: speedKey}
}

func (car *Car) UniqueName() string {
	return "Shape.Car"
}

func (car *Car) CanTraverse(tags osm.Tags) bool {
	return true
}

func (car *Car) MaxSpeed(tags osm.Tags) (float64, error) {
	return speedFromTags(tags, car.SpeedKey)
}

// Bike has constant speed and ignores speed attributes
type Bike struct {
	OnewayRule
}

// NewBike returns bicycle profile
func NewBike(rule OnewayRule) *Bike {
	return &Bike{OnewayRule: rule}
}

func (bike *Bike) UniqueName() string {
	return "Shape.Bike"
}

func (bike *Bike) CanTraverse(tags osm.Tags) bool {
	return true
}

func (bike *Bike) MaxSpeed(tags osm.Tags) (float64, error) {
	return bikeMaxSpeed, nil
}

// Truck takes speed from configured attribute, but never drives faster than Limit
type Truck struct {
	OnewayRule
	SpeedKey string
	Limit    float64
}

// NewTruck returns truck profile with default speed limit
func NewTruck(rule OnewayRule, speedKey string) *Truck {
	return &Truck{OnewayRule: rule, SpeedKey: speedKey, Limit: truckMaxSpeed}
}

func (truck *Truck) UniqueName() string {
	return "Shape.Truck"
}

func (truck *Truck) CanTraverse(tags osm.Tags) bool {
	return true
}

func (truck *Truck) MaxSpeed(tags osm.Tags) (float64, error) {
	speed, err := speedFromTags(tags, truck.SpeedKey)
	if err != nil {
		return 0, err
	}
	if truck.Limit > 0 {
		speed = math.Min(speed, truck.Limit)
	}
	return speed, nil
}

// speedFromTags parses integer speed at given key
func speedFromTags(tags osm.Tags, key string) (float64, error) {
	value := strings.TrimSpace(tags.Find(key))
	if value == "" {
		return 0, &SpeedParseError{Key: key}
	}
	speed, err := strconv.Atoi(value)
	if err != nil || speed <= 0 {
		return 0, &SpeedParseError{Key: key, Value: value}
	}
	return float64(speed), nil
}

// NewVehicle returns profile by its short name: "car", "bike" or "truck"
func NewVehicle(name string, rule OnewayRule, speedKey string) (Vehicle, error) {
	switch strings.ToLower(name) {
	case "car", "":
		return NewCar(rule, speedKey), nil
	case "bike", "bicycle":
		return NewBike(rule), nil
	case "truck":
		return NewTruck(rule, speedKey), nil
	}
	return nil, errors.Errorf("Unknown vehicle profile '%s'", name)
}
