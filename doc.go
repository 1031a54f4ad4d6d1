/*
Package counters is a best-effort counter metric client for network services.

Call sites increment named counters, optionally tagged with key/value pairs,
without ever blocking on the network, failing or panicking. Metric delivery is
lossy by nature. When no collector is configured every increment is a no-op,
and when the collector is unreachable or the process produces events faster
than they can be sent, events are dropped and reported to an error handler.

The API consists of 2 main types of objects:

   * Sink   - where counter events go. NopSink discards them, the statsd sink
              (package counters/sink/statsd) sends them as UDP datagrams.
   * Client - a cheap value handed to every component which emits metrics.
              It merges tags, injects the build version tag and contains failures.

A single Sink is created at process startup and shared by all clients:

   sink, err := statsd.Build(settings.Statsd())
   if err != nil {
           log.Fatal(err)
   }
   defer sink.Close()

   client := counters.NewClient(sink)
   client.IncrWithTags("req.count", counters.Tags{"method": "GET"})

Every event carries a "version" tag with the build version (see Version).
It's appended after the caller's tags, so a caller supplied "version" tag is
sent as well.
*/
package counters
