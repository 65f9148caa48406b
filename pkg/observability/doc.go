/*
Package observability turns lookup events into logs and Prometheus metrics.

Both are plain domain.LookupHooks, so they compose with any hooks the host
registers:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := observability.Compose(metrics.Hooks(), observability.LogHooks(logger))
	eng, _ := wayfinder.New(path, wayfinder.WithHooks(hooks))
*/
package observability
