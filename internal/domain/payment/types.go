package payment

type Status string

const (
	StatusPending             Status = "pending"
	StatusPendingVerification Status = "pending_verification"
	StatusVerified            Status = "verified"
	StatusRejected            Status = "rejected"
	StatusExpired             Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPendingVerification, StatusVerified, StatusRejected, StatusExpired:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the payment can no longer change state.
func (s Status) IsTerminal() bool {
	return s == StatusVerified || s == StatusRejected || s == StatusExpired
}

type Method string

const (
	MethodQRIS      Method = "qris"
	MethodVABCA     Method = "va_bca"
	MethodVAMandiri Method = "va_mandiri"
	MethodVABNI     Method = "va_bni"
	MethodGoPay     Method = "gopay"
	MethodOVO       Method = "ovo"
	MethodDANA      Method = "dana"
)

func (m Method) String() string {
	return string(m)
}

func (m Method) IsValid() bool {
	switch m {
	case MethodQRIS, MethodVABCA, MethodVAMandiri, MethodVABNI, MethodGoPay, MethodOVO, MethodDANA:
		return true
	default:
		return false
	}
}

// MethodInfo is a catalog entry shown to students when picking how to pay.
type MethodInfo struct {
	ID          Method `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Methods lists every supported settlement method.
func Methods() []MethodInfo {
	return []MethodInfo{
		{ID: MethodQRIS, Name: "QRIS", Icon: "/payment-icons/qris.png", Type: "qr", Description: "Scan QR code with any e-wallet app"},
		{ID: MethodVABCA, Name: "Virtual Account BCA", Icon: "/payment-icons/bca.png", Type: "va", Description: "Transfer via BCA mobile banking or ATM"},
		{ID: MethodVAMandiri, Name: "Virtual Account Mandiri", Icon: "/payment-icons/mandiri.png", Type: "va", Description: "Transfer via Mandiri mobile banking or ATM"},
		{ID: MethodVABNI, Name: "Virtual Account BNI", Icon: "/payment-icons/bni.png", Type: "va", Description: "Transfer via BNI mobile banking or ATM"},
		{ID: MethodGoPay, Name: "GoPay", Icon: "/payment-icons/gopay.png", Type: "ewallet", Description: "Pay with GoPay e-wallet"},
		{ID: MethodOVO, Name: "OVO", Icon: "/payment-icons/ovo.png", Type: "ewallet", Description: "Pay with OVO e-wallet"},
		{ID: MethodDANA, Name: "DANA", Icon: "/payment-icons/dana.png", Type: "ewallet", Description: "Pay with DANA e-wallet"},
	}
}
