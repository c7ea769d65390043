package domain

import "time"

// Role identifica al autor de un mensaje en la conversacion.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageStatus es el estado de entrega de un mensaje de usuario.
// Transicion unica: pending -> delivered | failed.
type MessageStatus string

const (
	StatusPending   MessageStatus = "pending"
	StatusDelivered MessageStatus = "delivered"
	StatusFailed    MessageStatus = "failed"
)

// Author es la atribucion capturada al crear el mensaje. Es un snapshot:
// renombrar el perfil despues no re-etiqueta mensajes viejos.
type Author struct {
	Role   Role   `json:"role"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type Message struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	Author    Author        `json:"author"`
	Status    MessageStatus `json:"status,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
