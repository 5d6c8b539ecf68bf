/*
Package vault implements asset custody with 1:1 share accounting.

A vault holds a single currency in a pool account derived from the vault
identifier. Depositors receive exactly one share per unit deposited and can
redeem shares back one to one. Any pool balance above the total issued
shares is externally earned yield: the vault itself has no opinion about
where it came from.

The vault owner can also move pool funds directly, without touching the
share ledger. Handing vault ownership to the payout extension is what
enables scheduled distributions of the yield surplus.
*/
package vault
