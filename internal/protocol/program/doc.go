// Package program parses the program text format.
//
// A program declares its imports, its own identifier and a list of
// functions:
//
//	import token.aleo;
//	program wallet.aleo;
//
//	function pay:
//	    input r0 as address.public;
//	    input r1 as u64.public;
//	    call token.aleo/transfer r0 r1;
//
// Only the structure needed to resolve imports and check calls is extracted;
// everything else is preserved verbatim in Program.Source.
package program
