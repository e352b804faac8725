// Package beanstalk is a client for the beanstalkd job-queue text protocol.
//
// A Conn owns one TCP connection and serializes commands on it. Producers
// scope puts to a tube:
//
//	conn, err := beanstalk.Dial("localhost:11300")
//	tube, err := conn.Tube("emails")
//	id, err := tube.Put(ctx, body, 1024, 0, time.Minute)
//
// Consumers reserve from a set of watched tubes:
//
//	ts, err := conn.TubeSet("emails", "reports")
//	job, err := ts.Reserve(ctx, 5*time.Second)
//	// process job.Body ...
//	err = conn.Delete(ctx, job.ID)
//
// Protocol-level outcomes (job not found, reserve timed out, server
// draining, ...) are reported as sentinel errors; transport failures are
// wrapped in *ConnError. Stats and list replies are decoded with the
// yamlite package, mirroring the YAML payloads beanstalkd emits.
package beanstalk
