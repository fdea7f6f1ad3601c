package notify

import "log"

// SendSMS is a placeholder for an SMS gateway integration. Messages are
// logged until a provider is wired in.
func SendSMS(phone, message string) {
	log.Printf("sms to=%s message=%q", phone, message)
}

// SendPush is a placeholder for a push notification provider.
func SendPush(userID uint, title, message string) {
	log.Printf("push user=%d title=%q message=%q", userID, title, message)
}
