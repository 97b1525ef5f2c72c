// Package commands defines the progman CLI and wires dependencies for subcommands.
//
// Commands
//
//   - account new       Generate the local account key
//   - account address   Print the account address
//   - resolve <id>      Print a program's source and its imports
//   - build <id>        Resolve and check a program and its imports
//   - deploy <id>       Deploy a program to the network
//   - execute <id> <fn> [inputs...]
//     Build and sign an execution, broadcasting it when a network is configured
//   - transfer <to> <amount>
//     Transfer credits through credits.aleo/transfer_public
//   - broadcast <file>  Broadcast a transaction read from a JSON file
//
// # Implementation
//
// The root command loads config.yaml from the home directory, builds a zap
// logger and the dependency graph (key store, account service) before any
// subcommand runs. Commands that touch programs build a manager from the
// stored key and close it when they finish.
package commands
