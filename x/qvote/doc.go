/*
Package qvote implements quadratic voting on contributor nominations.

Every voting nominates a wallet for a vault and runs until its end time.
Casting n votes costs n squared units of the configured currency, paid
into a per-voting pool. A voter can re-vote at any time before the end:
the old tally entry is vacated and only the cost difference is charged.

Ended votings are approved when the votes in favor outnumber the votes
against. The winning tally doubles as the payout weight for the voting
weighted distribution method.
*/
package qvote
