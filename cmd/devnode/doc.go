// Package main runs the in-memory development node used by progman during
// development and tests. It serves deployed programs and accepts signed
// transactions.
//
// HTTP API
//
//	GET /{network}/program/{id}
//	    Return the source of a deployed program as a JSON string.
//
//	POST /{network}/transaction/broadcast
//	    Verify and accept a Transaction. Deployments publish their program;
//	    executions require the target program to be deployed. The accepted
//	    transaction id is returned as a JSON string.
//
//	GET /{network}/transaction/{id}
//	    Return an accepted Transaction.
//
//	GET /{network}/latest/height
//	    Return the number of accepted transactions.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - credits.aleo is always deployed. Programs found in --programs are
//     deployed at startup.
//   - Responses are JSON. Non-2xx statuses carry a short error message.
//   - A lightweight access log records method, path, remote, status, bytes and
//     duration for each request.
//   - The default listen address is :3030.
package main
