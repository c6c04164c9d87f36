package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

type AgendaCitaRequest struct {
	Placa         string `json:"placa"         validate:"required,max=15"`
	Fecha         string `json:"fecha"         validate:"required"`
	Estado        string `json:"estado"        validate:"omitempty,oneof=Pendiente Realizada Cancelada"`
	Observaciones string `json:"observaciones" validate:"omitempty,max=500"`
}

// ratingAliases are the body keys that may carry an evaluation's rating,
// in priority order.
var ratingAliases = []string{"calificacion", "respuestacalificacion", "rating", "score"}

// EvaluacionRequest is the body of POST/PUT /evaluaciones.
// Calificacion is 0 when the rating is missing or not an integer, which
// the validator then rejects.
type EvaluacionRequest struct {
	Cedula       string `json:"cedula"      validate:"required,max=20"`
	IDServicios  int    `json:"idservicios" validate:"required,min=1"`
	Calificacion int    `json:"-"           validate:"required,min=1,max=5"`
}

func (r *EvaluacionRequest) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if v, ok := raw["cedula"]; ok {
		if err := json.Unmarshal(v, &r.Cedula); err != nil {
			return err
		}
	}
	if v, ok := raw["idservicios"]; ok {
		id, err := parseRating(v)
		if err != nil {
			return err
		}
		r.IDServicios = id
	}
	r.Calificacion = 0
	for _, k := range ratingAliases {
		v, ok := raw[k]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			continue
		}
		if n, err := parseRating(v); err == nil {
			r.Calificacion = n
		}
		break
	}
	return nil
}

// parseRating accepts a JSON integer, an integral float, or a string holding
// either one.
func parseRating(v json.RawMessage) (int, error) {
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		s = string(v)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, strconv.ErrSyntax
	}
	return int(f), nil
}
