package domain

import (
	interfaces "progman/internal/domain/interfaces"
	types "progman/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ProgramID         = types.ProgramID
	TransactionID     = types.TransactionID
	PrivateKey        = types.PrivateKey
	Address           = types.Address
	Ciphertext        = types.Ciphertext
	Identity          = types.Identity
	PlaintextIdentity = types.PlaintextIdentity
	EncryptedIdentity = types.EncryptedIdentity
	NetworkConfig     = types.NetworkConfig
	Program           = types.Program
	Function          = types.Function
	Input             = types.Input
	Call              = types.Call
	TransactionType   = types.TransactionType
	Transaction       = types.Transaction
	Deployment        = types.Deployment
	Execution         = types.Execution
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Resolver       = interfaces.Resolver
	ProgramFetcher = interfaces.ProgramFetcher
	NetworkClient  = interfaces.NetworkClient
	KeyStore       = interfaces.KeyStore
	AccountService = interfaces.AccountService
)

const (
	ProgramSuffix      = types.ProgramSuffix
	TransactionDeploy  = types.TransactionDeploy
	TransactionExecute = types.TransactionExecute
)

var (
	ParsePrivateKey      = types.ParsePrivateKey
	ParseCiphertext      = types.ParseCiphertext
	AddressFromPublicKey = types.AddressFromPublicKey
)
