package zk

import (
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/proof"

	"github.com/zkgames/zkgames-go/internal/model"
)

// PublicInputs is the ordered public statement a proof is checked against:
// the stored commitment digest, the binding context, and the revealed choice.
// The ordering is a contract shared with provers; adapters for new game types
// must preserve it.
type PublicInputs struct {
	Commitment []byte
	Binding    Binding
	Choice     model.Choice
}

// Verifier checks a proof of commitment opening. Implementations must be
// pure: no side effects, and malformed input is a rejection, not a panic.
//
// Verification is by far the most expensive operation the engine performs;
// callers should budget the completion path accordingly.
type Verifier interface {
	Verify(proofData []byte, pub PublicInputs) bool
}

// SchnorrVerifier verifies openings of the Pedersen commitments produced by
// Commit, via a Fiat-Shamir Schnorr argument on the unblinded point.
type SchnorrVerifier struct{}

// NewVerifier returns the verifier matching Commit and Prove
func NewVerifier() *SchnorrVerifier {
	return &SchnorrVerifier{}
}

var _ Verifier = (*SchnorrVerifier)(nil)

// Verify reports whether proofData establishes knowledge of a secret such
// that Commit(secret, binding, choice) equals the commitment digest.
func (v *SchnorrVerifier) Verify(proofData []byte, pub PublicInputs) bool {
	c := grp.Point()
	if err := c.UnmarshalBinary(pub.Commitment); err != nil {
		return false
	}

	m := bindingScalar(pub.Binding, pub.Choice)
	a := grp.Point().Sub(c, grp.Point().Mul(m, blindingBase))

	pred := proof.Rep("A", "x", "G")
	points := map[string]kyber.Point{
		"G": grp.Point().Base(),
		"A": a,
	}

	verifier := pred.Verifier(grp, points)
	return proof.HashVerify(grp, protocolName(pub.Binding, pub.Choice), verifier, proofData) == nil
}
