package model

import (
	"encoding/json"
	"errors"
)

// ErrEmptyPayload is returned when a dispatch request carries no payload.
var ErrEmptyPayload = errors.New("payload is required")

// NormalizeDispatchPayload canonicalizes the two accepted dispatch request
// shapes into a single payload object. The canonical shape is
// {"payload": {...}}; a flat body (payload fields at top level) is accepted
// as a backward-compatibility alias. The ambiguity is resolved here, once,
// at the boundary; nothing deeper in the system sees both shapes.
func NormalizeDispatchPayload(body []byte) (json.RawMessage, error) {
	if len(body) == 0 {
		return nil, ErrEmptyPayload
	}

	var envelope struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	payload := envelope.Payload
	if len(payload) == 0 || string(payload) == "null" {
		payload = body
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrEmptyPayload
	}

	return payload, nil
}

// OptimizationPayload mirrors the payload shape the browser builds for the
// solver. The dispatch layer treats payloads as opaque; this type exists for
// clients (the admin CLI, tests) that construct payloads programmatically.
type OptimizationPayload struct {
	Depot    Depot          `json:"depot"`
	Vehicles []Vehicle      `json:"vehicles"`
	Orders   []PayloadOrder `json:"orders"`
}

// Depot is the route start/end point with its service window.
type Depot struct {
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	VentanaInicio string  `json:"ventana_inicio,omitempty"`
	VentanaFin    string  `json:"ventana_fin,omitempty"`
}

// Vehicle describes one vehicle available to the solver.
type Vehicle struct {
	ID             string   `json:"id_vehicle"`
	CapacityWeight float64  `json:"capacity_weight"`
	CapacityVolume float64  `json:"capacity_volume,omitempty"`
	Skills         []string `json:"skills,omitempty"`
}

// PayloadOrder is one delivery stop in an optimization payload.
type PayloadOrder struct {
	ID             string   `json:"id_pedido"`
	Lat            float64  `json:"lat"`
	Lon            float64  `json:"lon"`
	Peso           float64  `json:"peso,omitempty"`
	Volumen        float64  `json:"volumen,omitempty"`
	VentanaInicio  string   `json:"ventana_inicio,omitempty"`
	VentanaFin     string   `json:"ventana_fin,omitempty"`
	SkillsRequired []string `json:"skills_required,omitempty"`
}

// Validate enforces the submit guard: at least one order and a usable depot.
func (p *OptimizationPayload) Validate() error {
	if len(p.Orders) == 0 {
		return errors.New("at least one order is required")
	}
	if p.Depot.Lat == 0 && p.Depot.Lon == 0 {
		return errors.New("depot coordinates are required")
	}
	return nil
}
