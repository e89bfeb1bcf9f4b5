package domain

import (
	"github.com/google/uuid"

	dErrors "vayva/pkg/domain-errors"
)

// MerchantID identifies a merchant and its single store. Typed to prevent
// cross-type assignment with other UUID-backed identifiers.
type MerchantID uuid.UUID

// ActorID identifies the authenticated subject performing an action. It may
// be a merchant user or an ops/admin user.
type ActorID uuid.UUID

// ParseMerchantID validates and returns a MerchantID.
// Rejects empty strings, malformed UUIDs, and the nil UUID.
func ParseMerchantID(s string) (MerchantID, error) {
	u, err := parseUUID(s, "merchant_id")
	if err != nil {
		return MerchantID{}, err
	}
	return MerchantID(u), nil
}

// ParseActorID validates and returns an ActorID.
func ParseActorID(s string) (ActorID, error) {
	u, err := parseUUID(s, "actor_id")
	if err != nil {
		return ActorID{}, err
	}
	return ActorID(u), nil
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, field+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, field+" must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, field+" must not be the nil UUID")
	}
	return u, nil
}

func (m MerchantID) String() string { return uuid.UUID(m).String() }

// IsNil reports whether the ID is the zero value.
func (m MerchantID) IsNil() bool { return uuid.UUID(m) == uuid.Nil }

// MarshalText renders the ID as its canonical UUID string in JSON and logs.
func (m MerchantID) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a canonical UUID string.
func (m *MerchantID) UnmarshalText(text []byte) error {
	u, err := uuid.ParseBytes(text)
	if err != nil {
		return err
	}
	*m = MerchantID(u)
	return nil
}

func (a ActorID) String() string { return uuid.UUID(a).String() }

// IsNil reports whether the ID is the zero value.
func (a ActorID) IsNil() bool { return uuid.UUID(a) == uuid.Nil }

// MarshalText renders the ID as its canonical UUID string in JSON and logs.
func (a ActorID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a canonical UUID string.
func (a *ActorID) UnmarshalText(text []byte) error {
	u, err := uuid.ParseBytes(text)
	if err != nil {
		return err
	}
	*a = ActorID(u)
	return nil
}
