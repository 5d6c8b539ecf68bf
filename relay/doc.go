/*
Package relay streams executed transitions to Kafka.

Every successful delivery emits its indexing tags as a JSON event
envelope, keyed by the vault tag so that all events of one vault land on
the same partition. Publishing is best effort: a broker outage is logged
and never fails the delivery, consumers are expected to re-sync.
*/
package relay
