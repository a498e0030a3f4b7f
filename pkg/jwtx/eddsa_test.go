package jwtx_test

import (
	"encoding/pem"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/modsuggest/pkg/cryptox"
	"github.com/aussiebroadwan/modsuggest/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "modsuggest-test"

func newSigner(t *testing.T) *jwtx.EdDSASigner {
	t.Helper()

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	signer, err := jwtx.NewSignerEdDSA(pemKey)
	require.NoError(t, err)
	return signer
}

func TestEdDSASignAndVerify(t *testing.T) {
	signer := newSigner(t)
	require.Equal(t, "EdDSA", signer.Alg())

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims("account-1", "session-1", exampleIssuer, 5*time.Minute, now)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verifier := jwtx.NewVerifierEdDSA(signer.PublicKey(), exampleIssuer)
	parsed, err := verifier.Verify(token)
	require.NoError(t, err)

	require.Equal(t, "account-1", parsed.Subject)
	require.Equal(t, "session-1", parsed.SID)
	require.Equal(t, exampleIssuer, parsed.Issuer)
	require.NoError(t, parsed.ValidateExpiry(now))
}

func TestEdDSAVerifyFailsForWrongIssuer(t *testing.T) {
	signer := newSigner(t)

	token, err := signer.Sign(jwtx.NewSessionClaims("a", "s", "someone-else", time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = jwtx.NewVerifierEdDSA(signer.PublicKey(), exampleIssuer).Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestEdDSAVerifyFailsForOtherKey(t *testing.T) {
	signer := newSigner(t)
	other := newSigner(t)

	token, err := signer.Sign(jwtx.NewSessionClaims("a", "s", exampleIssuer, time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = jwtx.NewVerifierEdDSA(other.PublicKey(), exampleIssuer).Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestEdDSAVerifyRejectsGarbage(t *testing.T) {
	signer := newSigner(t)
	verifier := jwtx.NewVerifierEdDSA(signer.PublicKey(), exampleIssuer)

	_, err := verifier.Verify("not-a-token")
	require.ErrorIs(t, err, jwtx.ErrMalformed)

	token, err := signer.Sign(jwtx.NewSessionClaims("a", "s", exampleIssuer, time.Minute, time.Now()))
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip the payload so the signature no longer matches.
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	_, err = verifier.Verify(tampered)
	require.Error(t, err)
}

func TestNewSignerEdDSARejectsBadPEM(t *testing.T) {
	_, err := jwtx.NewSignerEdDSA([]byte("nope"))
	require.Error(t, err)

	pkcs1 := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: []byte{0x01}})
	_, err = jwtx.NewSignerEdDSA(pkcs1)
	require.Error(t, err)
}
