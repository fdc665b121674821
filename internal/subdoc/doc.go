// Package subdoc provides atomic mutations of arrays embedded in parent
// documents (invoices inside customers, players inside teams).
//
// Concurrent appends to the same parent are serialised by the store's
// atomic array-update operator, so no element is ever lost to a stale
// read-modify-write cycle. Element lifetime is bound to the parent:
// deleting the parent document removes every embedded element with it.
package subdoc
