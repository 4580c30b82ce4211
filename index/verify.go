package index

import (
	"bytes"
	"fmt"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/clearsign"
)

// VerifyInRelease checks the clearsign signature of an InRelease index
// file against an ASCII-armored public keyring and returns the signed
// body (the Release content). It fails when no clearsigned block is
// found or the signature does not match any key in the ring.
func VerifyInRelease(inRelease, armoredPublicKey []byte) ([]byte, error) {
	keyring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(armoredPublicKey))
	if err != nil {
		return nil, fmt.Errorf("reading public keyring: %w", err)
	}

	block, _ := clearsign.Decode(inRelease)
	if block == nil {
		return nil, fmt.Errorf("no clearsigned block found")
	}

	if _, err := openpgp.CheckDetachedSignature(keyring, bytes.NewReader(block.Bytes), block.ArmoredSignature.Body, nil); err != nil {
		return nil, fmt.Errorf("signature verification failed: %w", err)
	}
	return block.Plaintext, nil
}
