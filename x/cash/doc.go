/*
Package cash defines a simple wallet implementation and a controller
to move tokens between accounts. Other extensions use the Controller
interface for all value custody, so the wallet layout stays private to
this package.

It also provides a fee decorator that charges a minimal transaction fee
into a collector account, configured through gconf.
*/
package cash
