package domain

import "time"

// Variant selects how the presentation layer styles a notification.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a human readable status event for the user.
type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     Variant   `json:"variant"`
	CreatedAt   time.Time `json:"created_at"`
}

// Info builds a default-variant notification.
func Info(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault}
}

// Alert builds a destructive-variant notification.
func Alert(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDestructive}
}
