package world

type DayLogger interface {
	WriteDay(entry DayLogEntry) error
}

type AuditLogger interface {
	WriteAudit(entry AuditEntry) error
}

type DayLogEntry struct {
	Day        int      `json:"day"`
	Released   []string `json:"released,omitempty"`
	Liquidated []string `json:"liquidated,omitempty"`
	Harvested  []string `json:"harvested,omitempty"`
	Metrics    Metrics  `json:"metrics"`
	Digest     string   `json:"digest"`
}

type AuditEntry struct {
	Day     int            `json:"day"`
	Actor   string         `json:"actor"`
	Action  string         `json:"action"` // e.g. "HIRE"
	Target  string         `json:"target,omitempty"`
	Amount  float64        `json:"amount,omitempty"`
	Reason  string         `json:"reason,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

const (
	ActionFound          = "FOUND"
	ActionHire           = "HIRE"
	ActionFire           = "FIRE"
	ActionResign         = "RESIGN"
	ActionMoveIn         = "MOVE_IN"
	ActionMoveOut        = "MOVE_OUT"
	ActionPayWages       = "PAY_WAGES"
	ActionPayRent        = "PAY_RENT"
	ActionBankrupt       = "BANKRUPT"
	ActionRecover        = "RECOVER"
	ActionLiquidate      = "LIQUIDATE"
	ActionPlant          = "PLANT"
	ActionHarvest        = "HARVEST"
	ActionProductStart   = "PRODUCT_START"
	ActionProductRelease = "PRODUCT_RELEASE"
	ActionUpgrade        = "UPGRADE"
	ActionDestroy        = "DESTROY"
)
