/*
Package payout schedules and executes yield distributions.

A schedule names a vault, a due time and a split method. Execution pays
the vault's yield surplus (pool balance above the issued shares) to the
active contributors, after skimming the configured reserve. Splits use
floor division, any dust stays in the pool.

Funds can only move once the vault's owner capability was handed to this
package's component account. Every executed payout is recorded on the
schedule and added to the recipients' lifetime earnings.
*/
package payout
