package domain

// Action names reported through outcome recorders.
const (
	ActionRegister     = "REGISTER"
	ActionLogin        = "LOGIN"
	ActionBuy          = "BUY"
	ActionSell         = "SELL"
	ActionOpenWallet   = "OPEN_WALLET"
	ActionRefreshRates = "UPDATE_RATES"
)

// Outcome is the observable result of a user-facing operation.
type Outcome struct {
	Action      string
	SubjectID   string
	Success     bool
	FailureKind string
	Err         error
	Attributes  map[string]string
}
