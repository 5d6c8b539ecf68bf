/*
Package driptest provides mocks and helpers for testing code that depends on
the core interfaces: transactions, messages, authentication and handlers.

All mocks are configured through their public attributes. They track usage
so tests can assert on the number of calls made.
*/
package driptest
