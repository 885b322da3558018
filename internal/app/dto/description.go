// Package dto carries the data transfer objects crossing the engine's
// boundary: flow descriptions coming in from clients, and node state
// snapshots going out to observers.
package dto

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FlowDescription is the declarative node/edge graph a client submits for
// loading. It fully replaces any previously loaded flow.
type FlowDescription struct {
	Nodes []NodeDescription `json:"nodes" validate:"dive"`
	Edges []EdgeDescription `json:"edges" validate:"dive"`
}

// NodeDescription declares one node of a flow.
type NodeDescription struct {
	ID       string         `json:"id" validate:"required,node_id"`
	Type     string         `json:"type" validate:"required"`
	Position Position       `json:"position"`
	Data     map[string]any `json:"data,omitempty"`
}

// Position is the node's canvas placement. The engine ignores it but round-
// trips it so editors do not lose layout on save/load.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EdgeDescription declares one connection of a flow.
type EdgeDescription struct {
	ID           string `json:"id"`
	Source       string `json:"source" validate:"required,node_id"`
	Target       string `json:"target" validate:"required,node_id"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

var (
	validate   = validator.New()
	nodeIDExpr = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

func init() {
	_ = validate.RegisterValidation("node_id", func(fl validator.FieldLevel) bool {
		return nodeIDExpr.MatchString(fl.Field().String())
	})

	// Report field names by their JSON tags.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate checks structural integrity of the description. Semantic issues
// (unknown node types, dangling edges) are not errors here: the loader
// degrades on those per the engine's error taxonomy.
func (d *FlowDescription) Validate() error {
	return validate.Struct(d)
}
