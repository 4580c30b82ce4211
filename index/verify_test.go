package index

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/clearsign"
)

// signRelease produces a clearsigned body and the matching armored public
// key, the way a repository publishes InRelease and its keyring.
func signRelease(t *testing.T, body []byte) (inRelease, publicKey []byte) {
	t.Helper()

	entity, err := openpgp.NewEntity("Test Repo", "", "repo@example.com", nil)
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}

	var signed bytes.Buffer
	w, err := clearsign.Encode(&signed, entity.PrivateKey, nil)
	if err != nil {
		t.Fatalf("clearsign failed: %v", err)
	}
	w.Write(body)
	w.Close()

	var pub bytes.Buffer
	aw, err := armor.Encode(&pub, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatalf("armor failed: %v", err)
	}
	if err := entity.Serialize(aw); err != nil {
		t.Fatalf("serializing public key failed: %v", err)
	}
	aw.Close()

	return signed.Bytes(), pub.Bytes()
}

func TestVerifyInRelease(t *testing.T) {
	release := []byte("Origin: Test\nSuite: stable\n")
	inRelease, pub := signRelease(t, release)

	body, err := VerifyInRelease(inRelease, pub)
	if err != nil {
		t.Fatalf("VerifyInRelease failed: %v", err)
	}
	if !strings.Contains(string(body), "Origin: Test") {
		t.Errorf("expected the signed body back, got %q", body)
	}
}

func TestVerifyInReleaseTampered(t *testing.T) {
	release := []byte("Origin: Test\nSuite: stable\n")
	inRelease, pub := signRelease(t, release)

	tampered := bytes.Replace(inRelease, []byte("Origin: Test"), []byte("Origin: Evil"), 1)
	if _, err := VerifyInRelease(tampered, pub); err == nil {
		t.Errorf("expected verification to fail on a tampered body")
	}
}

func TestVerifyInReleaseWrongKey(t *testing.T) {
	release := []byte("Origin: Test\n")
	inRelease, _ := signRelease(t, release)
	_, otherPub := signRelease(t, []byte("unrelated"))

	if _, err := VerifyInRelease(inRelease, otherPub); err == nil {
		t.Errorf("expected verification to fail with a foreign keyring")
	}
}

func TestVerifyInReleaseNotClearsigned(t *testing.T) {
	_, pub := signRelease(t, []byte("x"))
	if _, err := VerifyInRelease([]byte("Origin: Test\n"), pub); err == nil {
		t.Errorf("expected an error for a plain Release file")
	}
}
