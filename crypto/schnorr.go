package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"io"
	"math/big"
)

// GenerateKeypair produces a fresh Secret/Identity pair over P-256. Per the
// crypto primitive contract in spec.md §6, generation never fails for a
// healthy entropy source; the error return exists only to surface a
// starved rand.Reader.
func GenerateKeypair(rnd io.Reader) (Secret, Identity, error) {
	curve := elliptic.P256()
	d, x, y, err := elliptic.GenerateKey(curve, rnd)
	if err != nil {
		return Secret{}, Identity{}, err
	}
	id := identityFromPublicKey(&ecdsa.PublicKey{Curve: curve, X: x, Y: y})
	sec := Secret{d: new(big.Int).SetBytes(d), id: id}
	return sec, id, nil
}

// Sign produces a Schnorr signature over P-256 of msgHash under secret.
// msgHash is the 32-byte H_msg value; Sign never interprets its contents.
func Sign(rnd io.Reader, secret Secret, msgHash [32]byte) (Signature, error) {
	curve := elliptic.P256()
	n := curve.Params().N
	pub, err := secret.id.publicKey()
	if err != nil {
		return Signature{}, err
	}

	for {
		k, err := randScalar(rnd, curve)
		if err != nil {
			return Signature{}, err
		}
		rx, ry := curve.ScalarBaseMult(k.Bytes())

		e := challenge(rx, ry, pub.X, pub.Y, msgHash, n)
		if e.Sign() == 0 {
			continue
		}

		s := new(big.Int).Mul(e, secret.d)
		s.Add(s, k)
		s.Mod(s, n)
		if s.Sign() == 0 {
			continue
		}

		raw := make([]byte, signatureLen)
		e.FillBytes(raw[:32])
		s.FillBytes(raw[32:])
		return Signature{raw: raw}, nil
	}
}

// Verify reports whether sig is a valid Schnorr signature by id over
// msgHash. A malformed Identity or Signature is a verification failure,
// never a panic — per the §9 Identity open question.
func Verify(id Identity, msgHash [32]byte, sig Signature) bool {
	if len(sig.raw) != signatureLen {
		return false
	}
	curve := elliptic.P256()
	n := curve.Params().N

	pub, err := id.publicKey()
	if err != nil {
		return false
	}

	e := new(big.Int).SetBytes(sig.raw[:32])
	s := new(big.Int).SetBytes(sig.raw[32:])
	if e.Sign() == 0 || e.Cmp(n) >= 0 || s.Sign() < 0 || s.Cmp(n) >= 0 {
		return false
	}

	// R' = s*G - e*Pub = s*G + (n-e)*Pub
	sgx, sgy := curve.ScalarBaseMult(s.Bytes())
	negE := new(big.Int).Sub(n, e)
	epx, epy := curve.ScalarMult(pub.X, pub.Y, negE.Bytes())
	rx, ry := curve.Add(sgx, sgy, epx, epy)

	if rx.Sign() == 0 && ry.Sign() == 0 {
		// R' is the point at infinity; no valid challenge can match it.
		return false
	}

	ePrime := challenge(rx, ry, pub.X, pub.Y, msgHash, n)
	return ePrime.Cmp(e) == 0
}

func challenge(rx, ry, px, py *big.Int, msgHash [32]byte, n *big.Int) *big.Int {
	h := sha256.New()
	var field [32]byte
	rx.FillBytes(field[:])
	h.Write(field[:])
	ry.FillBytes(field[:])
	h.Write(field[:])
	px.FillBytes(field[:])
	h.Write(field[:])
	py.FillBytes(field[:])
	h.Write(field[:])
	h.Write(msgHash[:])

	e := new(big.Int).SetBytes(h.Sum(nil))
	return e.Mod(e, n)
}

func randScalar(rnd io.Reader, curve elliptic.Curve) (*big.Int, error) {
	n := curve.Params().N
	for {
		buf := make([]byte, (n.BitLen()+7)/8)
		if _, err := io.ReadFull(rnd, buf); err != nil {
			return nil, err
		}
		k := new(big.Int).SetBytes(buf)
		if k.Sign() > 0 && k.Cmp(n) < 0 {
			return k, nil
		}
	}
}

// DefaultRand is the entropy source used by package callers that do not
// need to inject a deterministic rand.Reader for tests.
var DefaultRand io.Reader = rand.Reader
