/*
Package cash defines a simple wallet holding multi-currency balances, along
with a controller that other extensions use to move and issue funds.

There is deliberately no message surface here: within this application all
value transfers are initiated by the vault extension, and issuance is the
boundary where externally earned yield enters the ledger.
*/
package cash
