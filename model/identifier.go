package model

// IdentifierKind enumerates verified identifier categories a username can be
// derived from.
type IdentifierKind string

const (
	// KindEmail is a verified email address.
	KindEmail IdentifierKind = "email"
	// KindMSISDN is a verified phone number.
	KindMSISDN IdentifierKind = "msisdn"
)

// Valid reports whether the kind is one of the recognized values.
func (k IdentifierKind) Valid() bool {
	return k == KindEmail || k == KindMSISDN
}

// Identifier is one verified contact identifier as handed over by the
// upstream verification flow.
type Identifier struct {
	Address    string
	Medium     string
	VerifiedAt int64
}

// VerifiedIdentifiers maps each identifier kind that was actually verified
// for a registration attempt to its record. A kind absent from the map was
// not verified.
type VerifiedIdentifiers map[IdentifierKind]Identifier

// RegistrationParams is the body of the host's registration request. It is
// carried through the hook signature for hosts that need it; the deriver
// itself does not consult it.
type RegistrationParams map[string]any
