// Package redis opens the optional shared Redis connection used by the
// distributed cache backend.
//
// The connection is configured from the application config:
//
//	redis:
//	  url: redis://localhost:6379/0
//	  pool_size: 10
//	  dial_timeout: 5s
//	  connect_attempts: 3
//
// Open pings the server with linear backoff before returning. Healthcheck and
// Shutdown plug into the readiness endpoint and the server shutdown hooks.
package redis
