package domain

import (
	"errors"
	"fmt"
)

// Falhas de consulta. São recuperáveis: viram a linha "policy:-, -"
// e nunca impedem a outra política.
var (
	ErrRouteNotFound       = errors.New("route not found")
	ErrPriceNotFound       = errors.New("price not found")
	ErrWeightLimitExceeded = errors.New("weight limit exceeded")
	ErrInvalidTaxRate      = errors.New("tax rate must be below 100")
)

// UsageError indica argumentos inválidos na linha de comando.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// ResourceError indica que uma tabela não pôde ser aberta.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("open table %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// MalformedRowError indica um campo obrigatório que não pôde ser convertido.
// Line começa em 1 e conta o cabeçalho.
type MalformedRowError struct {
	Path   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *MalformedRowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: column %s=%q: %v", e.Path, e.Line, e.Column, e.Value, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }
