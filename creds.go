package wastate

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/curve25519"
)

// Registration IDs occupy the low 14 bits per the signal protocol.
const maxRegistrationID = 1 << 14

// KeyPair is an X25519 key pair.
type KeyPair struct {
	Public  Binary `json:"public"`
	Private Binary `json:"private"`
}

// SignedKeyPair is a key pair signed by the session's identity key.
type SignedKeyPair struct {
	KeyPair   KeyPair `json:"keyPair"`
	Signature Binary  `json:"signature"`
	KeyID     uint32  `json:"keyId"`
}

// Credentials is the long-lived identity and trust material of one session.
// It is created once per session, mutated in place by the owning client as
// pairing progresses, and persisted only through the store's SaveCreds — an
// in-memory mutation alone has no durable effect.
type Credentials struct {
	NoiseKey                KeyPair       `json:"noiseKey"`
	SignedIdentityKey       KeyPair       `json:"signedIdentityKey"`
	SignedPreKey            SignedKeyPair `json:"signedPreKey"`
	RegistrationID          uint32        `json:"registrationId"`
	AdvSecretKey            Binary        `json:"advSecretKey"`
	NextPreKeyID            uint32        `json:"nextPreKeyId"`
	FirstUnuploadedPreKeyID uint32        `json:"firstUnuploadedPreKeyId"`
	DeviceID                string        `json:"deviceId"`
	Registered              bool          `json:"registered"`
	AccountSyncCounter      uint32        `json:"accountSyncCounter"`
}

// NewKeyPair generates a fresh X25519 key pair.
func NewKeyPair() (KeyPair, error) {
	priv := make([]byte, curve25519.ScalarSize)
	if _, err := rand.Read(priv); err != nil {
		return KeyPair{}, fmt.Errorf("generate private key: %w", err)
	}
	priv[0] &= 248
	priv[31] &= 127
	priv[31] |= 64

	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return KeyPair{}, fmt.Errorf("derive public key: %w", err)
	}
	return KeyPair{Public: pub, Private: priv}, nil
}

// NewCredentials initializes default credentials for a session that has never
// paired: fresh noise and identity key pairs, a signed pre-key, a random
// registration ID, and a random adv secret. Stores fall back to this when
// opening a prefix with no stored credentials record.
func NewCredentials() (*Credentials, error) {
	noise, err := NewKeyPair()
	if err != nil {
		return nil, err
	}
	identity, err := NewKeyPair()
	if err != nil {
		return nil, err
	}
	preKey, err := NewKeyPair()
	if err != nil {
		return nil, err
	}

	advSecret := make([]byte, 32)
	if _, err := rand.Read(advSecret); err != nil {
		return nil, fmt.Errorf("generate adv secret: %w", err)
	}

	regID, err := randomRegistrationID()
	if err != nil {
		return nil, err
	}

	return &Credentials{
		NoiseKey:          noise,
		SignedIdentityKey: identity,
		SignedPreKey: SignedKeyPair{
			KeyPair: preKey,
			KeyID:   1,
		},
		RegistrationID:          regID,
		AdvSecretKey:            advSecret,
		NextPreKeyID:            1,
		FirstUnuploadedPreKeyID: 1,
		DeviceID:                uuid.NewString(),
	}, nil
}

func randomRegistrationID() (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("generate registration id: %w", err)
	}
	return binary.BigEndian.Uint32(buf[:]) % maxRegistrationID, nil
}
