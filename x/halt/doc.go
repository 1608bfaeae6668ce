/*
Package halt implements an administrative pause switch.

While paused, the decorator short-circuits every mutating message except
the halt configuration update itself, so the admin can always resume the
chain. Queries are not affected as they never enter the handler stack.
*/
package halt
