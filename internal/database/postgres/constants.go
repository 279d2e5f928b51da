package postgres

// Error messages
const (
	ErrMsgBeginSaveTx = "failed to begin save transaction"
	ErrMsgCommitSave  = "failed to commit save"
	ErrMsgTouchSlot   = "failed to record save slot"
	ErrMsgDeleteSlot  = "failed to clear save slot"
	ErrMsgUpsertState = "failed to store recipe state"
	ErrMsgQuerySlot   = "failed to query save slot"
	ErrMsgQueryStates = "failed to query recipe states"
	ErrMsgScanState   = "failed to scan recipe state"
	ErrMsgQuerySlots  = "failed to list save slots"
	ErrMsgEmptySlot   = "save slot cannot be empty"
)

// Log messages
const (
	LogMsgSaveWritten = "Recipe states saved"
	LogMsgSaveRead    = "Recipe states loaded"
)
