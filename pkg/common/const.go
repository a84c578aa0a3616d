package common

const (
	// Dedupe key for forwarded calls: instrument, strike, option type, trigger
	KeyForwardedCall = "forwarded_call:%s"
)

const (
	KeyLogHookSendAlert = "send_alert"
)

// Group labels for watched channels without a configured mapping.
const (
	GroupLabelUnknown = "UNKNOWN"
)
