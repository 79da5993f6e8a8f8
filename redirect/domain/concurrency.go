package domain

import (
	"context"
	"errors"
)

// ErrNoSlot indica que o limite de requisições em voo estava cheio até o timeout.
var ErrNoSlot = errors.New("redirect: no free slot")

// SlotPool limita quantas requisições são resolvidas ao mesmo tempo.
//
// Acquire bloqueia até conseguir uma vaga ou até o ctx encerrar (retorna ctx.Err()).
// O release retornado pode ser chamado mais de uma vez; só a primeira libera.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), err error)
	InFlight() int
	Cap() int
}
