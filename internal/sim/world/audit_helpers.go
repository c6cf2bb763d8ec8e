package world

func (w *World) audit(actor, action, target string, amount float64, reason string, details map[string]any) {
	if w.auditLogger == nil {
		return
	}
	_ = w.auditLogger.WriteAudit(AuditEntry{
		Day:     w.day,
		Actor:   actor,
		Action:  action,
		Target:  target,
		Amount:  amount,
		Reason:  reason,
		Details: details,
	})
}
