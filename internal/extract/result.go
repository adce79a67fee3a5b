package extract

// Result is the typed outcome of one extraction. Degraded distinguishes
// "field absent / unusable shape" (Value forced to 0) from a real hit, so
// callers can log the reason instead of losing it.
type Result struct {
	Value    float64
	Source   string // rule or key that produced the value
	Degraded bool
	Reason   string
}

// Zero returns a degraded all-zero result with the given reason.
func Zero(reason string) Result {
	return Result{Degraded: true, Reason: reason}
}
