package types

// TransactionType distinguishes deployments from executions.
type TransactionType string

const (
	TransactionDeploy  TransactionType = "deploy"
	TransactionExecute TransactionType = "execute"
)

// Transaction is the signed unit submitted to the network.
type Transaction struct {
	ID         TransactionID   `json:"id"`
	Type       TransactionType `json:"type"`
	Owner      Address         `json:"owner"`
	Deployment *Deployment     `json:"deployment,omitempty"`
	Execution  *Execution      `json:"execution,omitempty"`
	Fee        uint64          `json:"fee"`
	Nonce      string          `json:"nonce"`
	Signature  []byte          `json:"signature"`
}

// Deployment publishes a program.
type Deployment struct {
	Program ProgramID   `json:"program"`
	Source  string      `json:"source"`
	Imports []ProgramID `json:"imports,omitempty"`
}

// Execution invokes a function of a deployed program.
type Execution struct {
	Program  ProgramID `json:"program"`
	Function string    `json:"function"`
	Inputs   []string  `json:"inputs"`
}
