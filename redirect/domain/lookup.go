package domain

import (
	"context"
	"errors"
)

// Key é a chave derivada do path da requisição.
type Key string

// Target é o host armazenado para uma chave (sem esquema).
type Target string

// ErrNotFound indica que a chave não existe no store.
var ErrNotFound = errors.New("redirect: key not found")

// Lookup é o colaborador chave-valor externo, acessado somente para leitura.
//
// Get retorna ErrNotFound (pode vir embrulhado) quando a chave não existe.
// Qualquer outro erro é falha do store e não é tratado pela regra de redirect.
type Lookup interface {
	Get(ctx context.Context, key Key) (Target, error)
}

// Pinger é opcional: stores que sabem verificar conectividade implementam.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Result struct {
	Found bool
	// Location é a URL absoluta do redirect. Vazio quando Found=false.
	Location string
}
