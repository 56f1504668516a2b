package telemetry

import "runtime"

// AddRuntimeMetrics records a small set of Go runtime facts as ordinary
// samples, so a periodic report can carry process health next to usage
// counters. Each call appends fresh samples through Add with the labels in
// effect at call time.
func (c *Client) AddRuntimeMetrics() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	c.Add("memory_alloc_bytes", float64(ms.Alloc))
	c.Add("memory_sys_bytes", float64(ms.Sys))
	c.Add("memory_heap_inuse_bytes", float64(ms.HeapInuse))
	c.Add("goroutines_num", float64(runtime.NumGoroutine()))
	c.Add("gc_runs_total", float64(ms.NumGC))
}
