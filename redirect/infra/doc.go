// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - RedisLookup: GET no Redis (go-redis)
//   - CloudflareKVLookup: leitura do Workers KV pela API REST da Cloudflare
//   - FileLookup: mapeamento estático em YAML/JSON, com recarga via fsnotify
//   - MemoryLookup: mapa em memória para testes e embutir em outros servidores
//   - ChanPool: semáforo simples para limite de concorrência
package infra
