// Package redirect fornece o adapter HTTP (net/http) do serviço de redirect.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: casos de uso (resolver chave, acquire/timeout) sem net/http
//   - infra: stores concretos (Redis, Cloudflare KV, arquivo, memória) e semáforo
//   - redirect (este pacote): handler HTTP, extração de chave, router e middlewares
//
// Fluxo por requisição:
//
//  1. Extrai a chave do path (por padrão sem a "/" inicial)
//  2. Chama a camada application para resolver a chave no store
//  3. Se não existe, responde 404 "Not Found"
//  4. Se existe, responde 301 com Location https://<valor>
//
// Falha do store não é tratada como miss: vira 500 e é logada.
//
// O binário cmd/redirector lê a configuração de flags/variáveis de ambiente,
// como STORE, REDIS_ADDR, CONCURRENCY_MAX e HEALTH_PATH.
package redirect
