package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// UserID uniquely identifies a chess platform account
type UserID string

// GovIDMaskPlaceholder replaces the trailing digits of a national id before storage
const GovIDMaskPlaceholder = "*****"

// govIDKeptDigits is the number of leading digits preserved when masking
const govIDKeptDigits = 3

// PlayerRecord is the stored verification outcome for one individual.
// Records are immutable after creation except for the Banned flag.
type PlayerRecord struct {
	UserID         UserID    `bson:"userId" json:"userId"`
	UserName       string    `bson:"userName" json:"userName"`
	FirstName      string    `bson:"firstName" json:"firstName"`
	LastName       string    `bson:"lastName" json:"lastName"`
	BirthYear      int       `bson:"birthYear" json:"birthYear"`
	GovID          string    `bson:"govId" json:"govId"` // masked, never the raw id
	GovIDSignature string    `bson:"govIdSignature" json:"govIdSignature"`
	Banned         bool      `bson:"banned" json:"banned"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// MaskGovID keeps the first three digits of a national id and replaces the
// rest with a fixed placeholder. The unmasked id must never be persisted.
func MaskGovID(id string) string {
	if len(id) <= govIDKeptDigits {
		return id + GovIDMaskPlaceholder
	}
	return id[:govIDKeptDigits] + GovIDMaskPlaceholder
}

// SignGovID returns the hex sha256 digest of the unmasked national id.
// The signature is the only correlation key for the same real-world identity
// across different platform accounts, since the masked id is not unique.
func SignGovID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
