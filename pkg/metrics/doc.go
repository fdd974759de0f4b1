// Package metrics provides Prometheus instrumentation for lambdas components.
//
// # Quick Start
//
// Wrap a worker pool, or hand a Registry to the price finder:
//
//	pool := workerpool.NewWithMetrics(4, "shops")
//	finder := shop.NewFinder(shops, shop.WithMetrics(metrics.DefaultRegistry))
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":9090", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation, which tests rely on to
// avoid duplicate registration:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.NewFromConfig(metrics.Config{Enabled: true, Registry: reg})
//
// # Available Metrics
//
// Rate limiting:
//
//   - lambdas_ratelimit_allowed_total
//   - lambdas_ratelimit_denied_total
//   - lambdas_ratelimit_wait_duration_seconds
//
// Task scheduling and worker pools:
//
//   - lambdas_scheduler_tasks_scheduled_total
//   - lambdas_scheduler_tasks_executed_total
//   - lambdas_scheduler_tasks_completed_total
//   - lambdas_scheduler_tasks_failed_total
//   - lambdas_scheduler_task_duration_seconds
//   - lambdas_workerpool_queue_wait_seconds
//   - lambdas_workerpool_size
//   - lambdas_workerpool_active_workers
//   - lambdas_workerpool_queued_tasks
//
// Price lookups:
//
//   - lambdas_shop_quotes_total (labels shop, outcome)
//   - lambdas_shop_quote_duration_seconds
//
// # Runtime Control
//
// Components implementing Instrumentable can be switched on and off:
//
//	pool.DisableMetrics()
//	pool.EnableMetrics(config)
//	enabled := pool.MetricsEnabled()
package metrics
