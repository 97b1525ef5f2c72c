// Package app wires application dependencies for the CLI.
//
// It builds the key store, the account service and, on demand, a program
// manager whose resolution mode follows the loaded configuration, exposing
// them via the Wire struct for commands to use.
package app
