// Package telemetry is an anonymous usage-telemetry client: it accumulates
// counter samples in memory, decorates them with host-identifying labels,
// and ships them as one zlib-compressed Prometheus exposition batch to a
// fixed collector over HTTPS.
//
// Design goals:
//   - Best-effort delivery: network faults fold into a boolean, never a crash
//   - One POST per run, no retries, no state across process lifetimes
//   - Host fingerprinting without raw identifiers (salted SHA-256 machine id)
//   - Single-owner instance, no locking; one client per execution context
//
// Basic usage:
//
//	client := telemetry.New(map[string]string{
//	  "version": "1.4.2",
//	})
//
//	client.Add("runs_total", 1)
//	client.Add("queries_total", 37)
//
//	ok, err := client.Send()
//	if err != nil {
//	  log.Printf("telemetry batch could not be compressed: %v", err)
//	} else if !ok {
//	  log.Print("telemetry delivery skipped")
//	}
package telemetry
