/*
Package contrib implements the contributor registry.

Contributors are registered per vault and carry a monthly allocation used
to weight payout splits. Removal is a soft delete: the record stays so
that earnings history survives and the registry key stays occupied.

All registry mutations are gated by the package configuration owner,
which is handed over to the distribution component at deployment.
*/
package contrib
