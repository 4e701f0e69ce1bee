package repo

import "go.mongodb.org/mongo-driver/bson/primitive"

// IsValidID reports whether s is a structurally valid document identifier:
// exactly 24 hexadecimal characters. Pure check, no store round-trip.
func IsValidID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// ParseID converts a validated hex string into an ObjectID. Callers are
// expected to have checked IsValidID first; a failed parse falls back to the
// zero ObjectID, which matches no stored document.
func ParseID(s string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}
