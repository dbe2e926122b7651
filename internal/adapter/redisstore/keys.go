package redisstore

import "fmt"

const (
	keyBag        = "storefront:session:%s:bag"
	keyCheckout   = "storefront:session:%s:checkout"
	keyAdminToken = "storefront:admin:token:%s"
)

func bagKey(sessionID string) string {
	return fmt.Sprintf(keyBag, sessionID)
}

func checkoutKey(sessionID string) string {
	return fmt.Sprintf(keyCheckout, sessionID)
}

func adminTokenKey(token string) string {
	return fmt.Sprintf(keyAdminToken, token)
}
