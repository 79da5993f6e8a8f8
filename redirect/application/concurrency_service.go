package application

import (
	"context"
	"time"

	"redirect-gateway/redirect/domain"
)

// ConcurrencyService decide se uma requisição ganha vaga para ser resolvida,
// sem saber nada sobre HTTP.
type ConcurrencyService struct {
	Pool           domain.SlotPool
	AcquireTimeout time.Duration
}

// Acquire devolve o release da vaga, ou:
//   - domain.ErrNoSlot quando o AcquireTimeout venceu com o pool cheio;
//   - o erro do ctx da requisição quando ela foi encerrada antes (cliente saiu).
//
// Com `AcquireTimeout <= 0` espera só pelo ctx da requisição.
func (s ConcurrencyService) Acquire(ctx context.Context) (func(), error) {
	if s.Pool == nil {
		return func() {}, nil
	}
	if s.AcquireTimeout <= 0 {
		return s.Pool.Acquire(ctx)
	}

	acqCtx, cancel := context.WithTimeout(ctx, s.AcquireTimeout)
	defer cancel()

	release, err := s.Pool.Acquire(acqCtx)
	if err == nil {
		return release, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return nil, domain.ErrNoSlot
}
