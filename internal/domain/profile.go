package domain

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Accent es un par de colores fondo/texto usado para derivar el avatar.
type Accent struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// accentPalette es la paleta fija que la UI ofrece como selector.
var accentPalette = []Accent{
	{Background: "0D8ABC", Foreground: "FFFFFF"},
	{Background: "6C3483", Foreground: "FDFEFE"},
	{Background: "1E8449", Foreground: "FFFFFF"},
	{Background: "B03A2E", Foreground: "FDF2E9"},
	{Background: "B7950B", Foreground: "17202A"},
}

var ErrAccentOutOfRange = errors.New("accent index out of range")

// DefaultAccent devuelve el primer acento de la paleta.
func DefaultAccent() Accent {
	return accentPalette[0]
}

// AccentAt devuelve el acento en la posicion dada de la paleta.
func AccentAt(index int) (Accent, error) {
	if index < 0 || index >= len(accentPalette) {
		return Accent{}, ErrAccentOutOfRange
	}
	return accentPalette[index], nil
}

// PaletteSize es la cantidad de acentos disponibles.
func PaletteSize() int {
	return len(accentPalette)
}

// DefaultProfileName es el placeholder antes de que el usuario elija nombre.
const DefaultProfileName = "Guest"

// Profile es el registro de identidad del usuario. El avatar no se guarda:
// se deriva de (Name, Accent) al renderizar, asi ambos campos nunca pueden
// desincronizarse en el registro persistido.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Accent    Accent    `json:"accent"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const avatarBaseURL = "https://ui-avatars.com/api/"

// AvatarURL deriva la referencia del avatar. Determinista: el mismo par
// (nombre, acento) produce el mismo URL sin importar cual se edito ultimo.
func (p Profile) AvatarURL() string {
	return avatarURL(p.Name, p.Accent)
}

func avatarURL(name string, accent Accent) string {
	return fmt.Sprintf("%s?name=%s&background=%s&color=%s",
		avatarBaseURL, url.QueryEscape(name), accent.Background, accent.Foreground)
}

// AssistantName etiqueta los mensajes del asistente remoto.
const AssistantName = "Hospital Assistant"

var assistantAccent = Accent{Background: "154360", Foreground: "EBF5FB"}

// AssistantAuthor es la atribucion fija para mensajes del asistente.
func AssistantAuthor() Author {
	return Author{
		Role:   RoleAssistant,
		Name:   AssistantName,
		Avatar: avatarURL(AssistantName, assistantAccent),
	}
}
