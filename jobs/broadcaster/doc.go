// Package broadcaster implements a background job that periodically
// scans the outbox for undelivered drain output and publishes it to
// Kafka, recording delivery state back in the outbox.
package broadcaster
