package application

import (
	"context"
	"errors"

	"redirect-gateway/redirect/domain"
)

// Scheme é o prefixo aplicado ao valor do store para montar o Location.
const Scheme = "https://"

// Service concentra a regra de aplicação do redirect.
//
// Ele não sabe nada sobre HTTP (headers/status), apenas retorna um resultado.
// O store é somente lido.
type Service struct {
	Lookup domain.Lookup
}

// Resolve consulta a chave e traduz o retorno do store em Result.
// Erros que não são domain.ErrNotFound sobem sem tratamento.
func (s Service) Resolve(ctx context.Context, key domain.Key) (domain.Result, error) {
	if s.Lookup == nil {
		return domain.Result{}, nil
	}

	target, err := s.Lookup.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Result{}, nil
	}
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Found: true, Location: Scheme + string(target)}, nil
}
