// Package infra contém implementações concretas para os contratos do pacote domain.
//
// Exemplos:
//   - HTMLDocument: Document sobre golang.org/x/net/html
//   - BootstrapKit: toasts e tooltips no formato do Bootstrap 5
//   - MemoryStorage / RedisStorage / CoalescingStorage: o "localStorage" por cliente
//   - MemoryStatsStore / RedisStatsStore / PrometheusStats: estatísticas de inicialização
//   - ChanPool: semáforo para limitar reescritas simultâneas
package infra
