/*
Package grant implements the grant disbursement ledger.

A grant commits treasury funds to a beneficiary, either as a single
payment or gated by a milestone schedule. Scheduled grants move their
funds into a per-grant escrow; validated milestone completions release
fractional amounts to the beneficiary. Validation decisions come from
two pathways, a role gated manual one and a proof based one, both
converging on a single decide-and-disburse routine. After full
disbursement the grant tracks a revenue share owed back to the funder
until a target is met or the grant matures.

All fund custody goes through the cash Controller; escrowed funds live
on the address of the per-grant escrow condition.
*/
package grant
