package manager

import (
	"context"
	"errors"
	"fmt"

	"progman/internal/domain"
	"progman/internal/vm"
)

var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidRecipient = errors.New("invalid recipient address")
)

const transferFunction = "transfer_public"

// ExecuteProgram builds a signed execution of id/function. The program is
// built first if the VM does not have it. With a network config the
// transaction is broadcast; without one it is only returned.
func (m *Manager) ExecuteProgram(
	ctx context.Context,
	id domain.ProgramID,
	function string,
	inputs []string,
	fee uint64,
	password string,
) (domain.Transaction, error) {
	if !m.vm.Contains(id) {
		if _, err := m.BuildProgram(ctx, id); err != nil {
			return domain.Transaction{}, err
		}
	}

	var tx domain.Transaction
	err := m.withKey(password, func(key domain.PrivateKey) error {
		var err error
		tx, err = m.vm.Execute(ctx, key, id, function, inputs, fee)
		return err
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	if m.network == nil {
		return tx, nil
	}
	if _, err := m.broadcast(ctx, tx); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}

// Transfer moves amount credits to recipient through the built-in credits program.
func (m *Manager) Transfer(
	ctx context.Context,
	recipient domain.Address,
	amount uint64,
	fee uint64,
	password string,
) (domain.Transaction, error) {
	if amount == 0 {
		return domain.Transaction{}, ErrInvalidAmount
	}
	if _, err := recipient.PublicKey(); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}
	inputs := []string{recipient.String(), fmt.Sprintf("%du64", amount)}
	return m.ExecuteProgram(ctx, vm.CreditsProgram, transferFunction, inputs, fee, password)
}
