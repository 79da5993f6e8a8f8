// Package domain define contratos e tipos de domínio para o redirect.
//
// Este pacote não depende de net/http nem de implementações concretas de store.
// A intenção é permitir testes de unidade puros e desacoplar a regra de
// redirect de detalhes de infraestrutura (Redis, Cloudflare KV, arquivo).
package domain
