package query

import (
	"errors"
	"fmt"
)

// Kind clasifica una falla de entrega contra el servicio remoto.
type Kind string

const (
	KindNetwork   Kind = "network"
	KindTimeout   Kind = "timeout"
	KindStatus    Kind = "status"
	KindMalformed Kind = "malformed"
)

// Error conserva la causa clasificada de una falla de entrega. El texto es
// solo para diagnostico: nunca se muestra en la burbuja del asistente.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("query %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("query %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extrae el *Error de una cadena de wraps; si no hay ninguno,
// clasifica la falla como de red.
func AsError(err error) *Error {
	var qerr *Error
	if errors.As(err, &qerr) {
		return qerr
	}
	return &Error{Kind: KindNetwork, Message: "request failed", Err: err}
}
