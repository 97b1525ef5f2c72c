// Package vm is the in-process engine that checks programs and synthesizes
// transactions.
//
// A VM is bound to a Store, a SQLite database holding the programs it has
// loaded and the transactions it has produced. An empty store location opens
// a private in-memory database, which is what a program manager uses: the
// store lives exactly as long as the VM that owns it.
//
// Every VM starts with the built-in credits.aleo program, whose
// transfer_public function moves value between addresses.
package vm
