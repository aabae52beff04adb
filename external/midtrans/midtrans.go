// Package midtrans wraps the Snap client used for credit-card
// checkout sessions and the notification signature check.
package midtrans

import (
	"crypto/sha512"
	"encoding/hex"
	"os"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

const envServerKey = "MIDTRANS_SERVER_KEY"

// ServerKey returns the configured midtrans server key. Empty means
// payments are effectively unconfigured; Snap calls will fail with an
// auth error.
func ServerKey() string {
	return os.Getenv(envServerKey)
}

// NewSnapClient builds a sandbox Snap client from the server key.
func NewSnapClient() *snap.Client {
	var client snap.Client
	client.New(ServerKey(), midtrans.Sandbox)
	return &client
}

// VerifySignature checks the webhook signature_key, defined by
// midtrans as sha512(order_id + status_code + gross_amount + server key).
func VerifySignature(orderID, statusCode, grossAmount, signature, serverKey string) bool {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:]) == signature
}
