// Package devnode is an in-memory implementation of the network REST API,
// used by tests and by cmd/devnode during development.
//
// HTTP API
//
//	GET /{network}/program/{id}
//	    Return the source of a deployed program as a JSON string.
//
//	POST /{network}/transaction/broadcast
//	    Verify and accept a Transaction. Deployments make their program
//	    available to GET /program. Returns the transaction id as a JSON string.
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
//   - credits.aleo is deployed from the start.
//   - Requests for any other network id get 404.
//   - Non-2xx statuses carry a short plain-text error message.
//   - A lightweight access log records method, path, remote, status, bytes and
//     duration for each request.
package devnode
