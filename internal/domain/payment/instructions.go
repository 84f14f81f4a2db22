package payment

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

// Instructions describe how to settle a payment. They are generated once at
// issuance and never change afterwards.
type Instructions struct {
	Type      string   `json:"type"`
	QRCodeURL string   `json:"qrCodeUrl,omitempty"`
	VANumber  string   `json:"vaNumber,omitempty"`
	Bank      string   `json:"bank,omitempty"`
	DeepLink  string   `json:"deepLink,omitempty"`
	Steps     []string `json:"steps"`
}

const (
	instructionTypeQR       = "QR Code"
	instructionTypeVA       = "Virtual Account"
	instructionTypeEWallet  = "E-Wallet"
	transactionIDRandLength = 9
	vaNumberPrefix          = "8808"
	vaNumberRandDigits      = 12
)

var base36 = []byte("0123456789abcdefghijklmnopqrstuvwxyz")

// NewTransactionID produces a globally unique reference shaped like
// TRX-<unix millis>-<9 base36 chars>.
func NewTransactionID(now time.Time) string {
	buf := make([]byte, transactionIDRandLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36))))
		if err != nil {
			// crypto/rand failure leaves the millisecond timestamp as the
			// uniqueness source.
			buf[i] = base36[int(now.UnixNano()>>uint(i))%len(base36)]
			continue
		}
		buf[i] = base36[n.Int64()]
	}
	return fmt.Sprintf("TRX-%d-%s", now.UnixMilli(), string(buf))
}

// NewVANumber synthesizes a mock virtual-account number: a fixed 8808 prefix
// followed by twelve random digits.
func NewVANumber() string {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(vaNumberRandDigits), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		n = big.NewInt(0)
	}
	return vaNumberPrefix + fmt.Sprintf("%0*d", vaNumberRandDigits, n)
}

// FormatIDR renders an amount as Indonesian rupiah for display, e.g.
// 1234567 -> "Rp1.234.567". The stored amount stays a raw number.
func FormatIDR(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "-Rp" + string(out)
	}
	return "Rp" + string(out)
}

// BuildInstructions is deterministic for a given method, transaction id, VA
// number and amount; callers generate the random parts first.
func BuildInstructions(method Method, transactionID, vaNumber string, amount int64) (Instructions, error) {
	formatted := FormatIDR(amount)

	switch method {
	case MethodQRIS:
		return Instructions{
			Type:      instructionTypeQR,
			QRCodeURL: fmt.Sprintf("/mock-qr/%s.png", transactionID),
			Steps: []string{
				"Open your mobile banking or e-wallet app",
				"Select the Scan QR menu",
				"Scan the QR code below",
				fmt.Sprintf("Confirm payment of %s", formatted),
				"Take a screenshot of the payment proof",
				"Upload the payment proof on this page",
			},
		}, nil
	case MethodVABCA:
		return vaInstructions("BCA", "Login to BCA Mobile Banking or go to ATM", vaNumber, formatted), nil
	case MethodVAMandiri:
		return vaInstructions("Mandiri", "Login to Mandiri Online or go to ATM", vaNumber, formatted), nil
	case MethodVABNI:
		return vaInstructions("BNI", "Login to BNI Mobile or go to ATM", vaNumber, formatted), nil
	case MethodGoPay:
		return ewalletInstructions("GoPay", "gopay", transactionID, formatted), nil
	case MethodOVO:
		return ewalletInstructions("OVO", "ovo", transactionID, formatted), nil
	case MethodDANA:
		return ewalletInstructions("DANA", "dana", transactionID, formatted), nil
	default:
		return Instructions{}, ErrInvalidMethod
	}
}

func vaInstructions(bank, loginStep, vaNumber, formatted string) Instructions {
	return Instructions{
		Type:     instructionTypeVA,
		VANumber: vaNumber,
		Bank:     bank,
		Steps: []string{
			loginStep,
			"Select Transfer menu",
			"Select Virtual Account",
			"Enter VA number shown above",
			fmt.Sprintf("Confirm payment of %s", formatted),
			"Take a screenshot of the transfer proof",
			"Upload the payment proof on this page",
		},
	}
}

func ewalletInstructions(app, scheme, transactionID, formatted string) Instructions {
	return Instructions{
		Type:     instructionTypeEWallet,
		DeepLink: fmt.Sprintf("%s://pay?id=%s", scheme, transactionID),
		Steps: []string{
			fmt.Sprintf("Open the %s app", app),
			"Click on the payment notification or enter the code",
			fmt.Sprintf("Confirm payment of %s", formatted),
			"Take a screenshot of the payment proof",
			"Upload the payment proof on this page",
		},
	}
}
