// Package transaction builds, signs and verifies transactions.
//
// The signature covers the canonical JSON encoding of every field except ID
// and Signature; the ID is the hex SHA-256 digest of that same payload, so a
// transaction's identity is fixed once its contents are.
package transaction

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"progman/internal/crypto"
	"progman/internal/domain"
)

var (
	ErrIDMismatch = errors.New("transaction id does not match contents")
	ErrMalformed  = errors.New("malformed transaction")
)

// payload is the signed portion of a transaction.
type payload struct {
	Type       domain.TransactionType `json:"type"`
	Owner      domain.Address         `json:"owner"`
	Deployment *domain.Deployment     `json:"deployment,omitempty"`
	Execution  *domain.Execution      `json:"execution,omitempty"`
	Fee        uint64                 `json:"fee"`
	Nonce      string                 `json:"nonce"`
}

func signingBytes(tx domain.Transaction) ([]byte, error) {
	return json.Marshal(payload{
		Type:       tx.Type,
		Owner:      tx.Owner,
		Deployment: tx.Deployment,
		Execution:  tx.Execution,
		Fee:        tx.Fee,
		Nonce:      tx.Nonce,
	})
}

// NewDeployment returns a signed deployment of p.
func NewDeployment(key domain.PrivateKey, p domain.Program, fee uint64) (domain.Transaction, error) {
	return sign(key, domain.Transaction{
		Type: domain.TransactionDeploy,
		Deployment: &domain.Deployment{
			Program: p.ID,
			Source:  p.Source,
			Imports: p.Imports,
		},
		Fee: fee,
	})
}

// NewExecution returns a signed execution of program/function with inputs.
func NewExecution(
	key domain.PrivateKey,
	program domain.ProgramID,
	function string,
	inputs []string,
	fee uint64,
) (domain.Transaction, error) {
	return sign(key, domain.Transaction{
		Type: domain.TransactionExecute,
		Execution: &domain.Execution{
			Program:  program,
			Function: function,
			Inputs:   append([]string(nil), inputs...),
		},
		Fee: fee,
	})
}

func sign(key domain.PrivateKey, tx domain.Transaction) (domain.Transaction, error) {
	tx.Owner = crypto.AddressOf(key)
	tx.Nonce = uuid.NewString()
	msg, err := signingBytes(tx)
	if err != nil {
		return domain.Transaction{}, err
	}
	tx.ID = digest(msg)
	tx.Signature = crypto.Sign(key, msg)
	return tx, nil
}

// Verify checks that tx is well formed, that its ID matches its contents and
// that it was signed by its owner.
func Verify(tx domain.Transaction) error {
	switch tx.Type {
	case domain.TransactionDeploy:
		if tx.Deployment == nil || tx.Execution != nil {
			return fmt.Errorf("%w: deploy without deployment body", ErrMalformed)
		}
	case domain.TransactionExecute:
		if tx.Execution == nil || tx.Deployment != nil {
			return fmt.Errorf("%w: execute without execution body", ErrMalformed)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrMalformed, tx.Type)
	}
	msg, err := signingBytes(tx)
	if err != nil {
		return err
	}
	if digest(msg) != tx.ID {
		return ErrIDMismatch
	}
	return crypto.Verify(tx.Owner, msg, tx.Signature)
}

func digest(msg []byte) domain.TransactionID {
	sum := sha256.Sum256(msg)
	return domain.TransactionID(hex.EncodeToString(sum[:]))
}
