package model

// Alert is a reminder shown on the alerts tab. Channel names where it would be
// delivered ("WhatsApp", "In-App"); nothing is actually sent.
type Alert struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Channel     string `json:"channel"`
}

// AdminStats summarizes stored state for the admin panel.
type AdminStats struct {
	ActiveSessions         int `json:"activeSessions"`
	TransactionCollections int `json:"transactionCollections"`
}
