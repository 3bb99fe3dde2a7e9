// Package zk implements the commitment scheme shared between the engine and
// the committing party, and the proof-of-opening verification the engine
// consumes at completion.
//
// A commitment is a Pedersen-style point C = secret*G + m*H over edwards25519,
// where m is derived deterministically from the binding context (game client,
// game id) and the committed choice. The engine stores the marshalled point
// verbatim and never learns the secret; Commit and Prove run on the committing
// party's side only.
package zk

import (
	"encoding/binary"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"
	"go.dedis.ch/kyber/v3/proof"

	"github.com/zkgames/zkgames-go/internal/model"
)

// CommitmentSize is the byte length of a marshalled commitment digest
const CommitmentSize = 32

var grp = edwards25519.NewBlakeSHA256Ed25519()

// blindingBase is the second generator H. Derived from a fixed tag so that
// nobody knows its discrete log relative to the base point.
var blindingBase = grp.Point().Pick(grp.XOF([]byte("zkgames/commitment-blinding-base/v1")))

// Binding ties a commitment to one game of one client. A commitment produced
// for a different client or game id yields a different binding scalar, so
// replaying it elsewhere fails verification.
type Binding struct {
	ClientID model.ClientID
	GameID   model.GameID
}

// bytes returns the canonical binding input: length-prefixed client id,
// big-endian game id, then the choice. This layout is part of the wire
// contract with provers and must not change.
func (b Binding) bytes(choice model.Choice) []byte {
	client := []byte(b.ClientID)
	buf := make([]byte, 0, binary.MaxVarintLen64+len(client)+9)
	buf = binary.AppendUvarint(buf, uint64(len(client)))
	buf = append(buf, client...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(b.GameID))
	buf = append(buf, byte(choice))
	return buf
}

// bindingScalar maps the binding input to the group scalar m
func bindingScalar(b Binding, choice model.Choice) kyber.Scalar {
	return grp.Scalar().Pick(grp.XOF(b.bytes(choice)))
}

// NewSecret generates a fresh opening secret. Called by the committing party,
// never by the engine.
func NewSecret() ([]byte, error) {
	s := grp.Scalar().Pick(grp.RandomStream())
	return s.MarshalBinary()
}

// Commit computes the commitment digest for a secret, binding, and choice
func Commit(secret []byte, b Binding, choice model.Choice) ([]byte, error) {
	x := grp.Scalar()
	if err := x.UnmarshalBinary(secret); err != nil {
		return nil, err
	}
	m := bindingScalar(b, choice)

	c := grp.Point().Add(
		grp.Point().Mul(x, nil),
		grp.Point().Mul(m, blindingBase),
	)
	return c.MarshalBinary()
}

// Prove produces a non-interactive proof that the prover knows a secret
// consistent with the commitment for this binding and choice. The proof
// reveals nothing about the secret.
func Prove(secret []byte, b Binding, choice model.Choice) ([]byte, error) {
	x := grp.Scalar()
	if err := x.UnmarshalBinary(secret); err != nil {
		return nil, err
	}

	// The statement reduces to knowledge of x with A = x*G,
	// where A = C - m*H.
	a := grp.Point().Mul(x, nil)

	pred := proof.Rep("A", "x", "G")
	secrets := map[string]kyber.Scalar{"x": x}
	points := map[string]kyber.Point{
		"G": grp.Point().Base(),
		"A": a,
	}

	prover := pred.Prover(grp, secrets, points, nil)
	return proof.HashProve(grp, protocolName(b, choice), prover)
}

// protocolName folds the public inputs into the Fiat-Shamir context so a
// proof transcript cannot be replayed against different public inputs.
func protocolName(b Binding, choice model.Choice) string {
	return "zkgames/opening/v1:" + string(b.bytes(choice))
}
