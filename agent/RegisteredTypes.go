package agent

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// ErrUnknownType is returned when a Type has no registered Config
var ErrUnknownType = errors.New("unknown solver type")

// Type represents a specific type of a solver Config.
// Config's with this type can create Solvers of the corresponding type.
type Type string

const (
	// Planning methods
	ValueIteration  Type = "ValueIteration"
	PolicyIteration Type = "PolicyIteration"

	// Control methods
	QLearning Type = "QLearning"
	Sarsa     Type = "Sarsa"

	// Prediction methods
	TD0      Type = "TD0"
	TDLambda Type = "TDLambda"
)

// Registered types with the package, mapped to the default Config of
// the type. Once a Type has been registered with this map, a
// TypedConfig with that type can be decoded.
//
// No Type's are registered with this package upon initialization.
// Each separate package is in charge of registering its Type with
// the package separately to avoid circular imports.
var registeredTypes map[Type]Config

func init() {
	registeredTypes = make(map[Type]Config)
}

// Register registers a solver's Type with its default Config so that
// upon deserialization of a TypedConfig, configs of type solverType are
// deserialized into the concrete type of the default, with unset fields
// keeping their default values.
func Register(solverType Type, defaults Config) {
	registeredTypes[solverType] = defaults
}

// Types returns the registered Types in sorted order
func Types() []Type {
	types := make([]Type, 0, len(registeredTypes))
	for t := range registeredTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Default returns the default Config registered for a Type
func Default(solverType Type) (Config, error) {
	c, ok := registeredTypes[solverType]
	if !ok {
		return nil, fmt.Errorf("default: %w %q", ErrUnknownType, solverType)
	}
	return c, nil
}

// newConfig returns a pointer to a new copy of the default Config
// registered for a Type
func newConfig(solverType Type) (reflect.Value, error) {
	c, err := Default(solverType)
	if err != nil {
		return reflect.Value{}, err
	}
	ptr := reflect.New(reflect.TypeOf(c))
	ptr.Elem().Set(reflect.ValueOf(c))
	return ptr, nil
}
