package model

// RiskLevel grades how fragile a projected plan is.
type RiskLevel string

const (
	// RiskLow: cash never goes negative and most months are profitable.
	RiskLow RiskLevel = "LOW"
	// RiskMedium: cash stays positive but losing months outnumber half the
	// horizon.
	RiskMedium RiskLevel = "MEDIUM"
	// RiskHigh: the cash position goes negative at some point, meaning the
	// plan needs additional financing.
	RiskHigh RiskLevel = "HIGH"
)
