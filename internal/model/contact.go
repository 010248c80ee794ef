package model

import "strings"

// Contact is a structured contact block. The legacy data interchange format
// is a comma-joined string ("name, street, city, state, phone, email") that
// is parsed positionally; that encoding is only used at the import/export
// boundary, never held internally.
type Contact struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// IsZero reports whether no contact information is present.
func (c Contact) IsZero() bool {
	return c.Name == "" && c.Address == "" && c.Phone == "" && c.Email == ""
}

// ParseLegacyContact decodes the comma-joined legacy contact string. The
// first segment is the name, the last is the email, the second to last is
// the phone, and everything between is joined back into the address. Short
// strings fill fields front to back (name, then phone, then email).
func ParseLegacyContact(s string) Contact {
	s = strings.TrimSpace(s)
	if s == "" {
		return Contact{}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch len(parts) {
	case 1:
		return Contact{Name: parts[0]}
	case 2:
		return Contact{Name: parts[0], Phone: parts[1]}
	case 3:
		return Contact{Name: parts[0], Phone: parts[1], Email: parts[2]}
	default:
		return Contact{
			Name:    parts[0],
			Address: strings.Join(parts[1:len(parts)-2], ", "),
			Phone:   parts[len(parts)-2],
			Email:   parts[len(parts)-1],
		}
	}
}

// LegacyString encodes the contact back into the comma-joined legacy form.
// Empty fields are omitted so the encoding stays parseable.
func (c Contact) LegacyString() string {
	var parts []string
	if c.Name != "" {
		parts = append(parts, c.Name)
	}
	if c.Address != "" {
		parts = append(parts, c.Address)
	}
	if c.Phone != "" {
		parts = append(parts, c.Phone)
	}
	if c.Email != "" {
		parts = append(parts, c.Email)
	}
	return strings.Join(parts, ", ")
}
