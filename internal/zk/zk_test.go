package zk

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ZKSuite struct {
	suite.Suite
	verifier *SchnorrVerifier
	binding  Binding
}

func TestZKSuite(t *testing.T) {
	suite.Run(t, new(ZKSuite))
}

func (s *ZKSuite) SetupTest() {
	s.verifier = NewVerifier()
	s.binding = Binding{ClientID: "gc_test", GameID: 7}
}

func (s *ZKSuite) TestCommitIsDeterministic() {
	secret, err := NewSecret()
	s.Require().NoError(err)

	d1, err := Commit(secret, s.binding, 1)
	s.Require().NoError(err)
	d2, err := Commit(secret, s.binding, 1)
	s.Require().NoError(err)

	s.Equal(d1, d2)
	s.Len(d1, CommitmentSize)
}

func (s *ZKSuite) TestCommitDiffersByChoice() {
	secret, err := NewSecret()
	s.Require().NoError(err)

	d1, err := Commit(secret, s.binding, 1)
	s.Require().NoError(err)
	d2, err := Commit(secret, s.binding, 2)
	s.Require().NoError(err)

	s.NotEqual(d1, d2)
}

func (s *ZKSuite) TestProveVerifyRoundTrip() {
	secret, err := NewSecret()
	s.Require().NoError(err)

	digest, err := Commit(secret, s.binding, 1)
	s.Require().NoError(err)
	proofData, err := Prove(secret, s.binding, 1)
	s.Require().NoError(err)

	ok := s.verifier.Verify(proofData, PublicInputs{
		Commitment: digest,
		Binding:    s.binding,
		Choice:     1,
	})
	s.True(ok)
}

func (s *ZKSuite) TestVerifyRejectsWrongChoice() {
	secret, err := NewSecret()
	s.Require().NoError(err)

	digest, err := Commit(secret, s.binding, 1)
	s.Require().NoError(err)

	// A proof for choice 2 must not open a commitment to choice 1
	proofData, err := Prove(secret, s.binding, 2)
	s.Require().NoError(err)

	ok := s.verifier.Verify(proofData, PublicInputs{
		Commitment: digest,
		Binding:    s.binding,
		Choice:     2,
	})
	s.False(ok)
}

func (s *ZKSuite) TestVerifyRejectsReplayAcrossGames() {
	secret, err := NewSecret()
	s.Require().NoError(err)

	digest, err := Commit(secret, s.binding, 0)
	s.Require().NoError(err)
	proofData, err := Prove(secret, s.binding, 0)
	s.Require().NoError(err)

	other := Binding{ClientID: s.binding.ClientID, GameID: s.binding.GameID + 1}
	ok := s.verifier.Verify(proofData, PublicInputs{
		Commitment: digest,
		Binding:    other,
		Choice:     0,
	})
	s.False(ok)

	otherClient := Binding{ClientID: "gc_other", GameID: s.binding.GameID}
	ok = s.verifier.Verify(proofData, PublicInputs{
		Commitment: digest,
		Binding:    otherClient,
		Choice:     0,
	})
	s.False(ok)
}

func (s *ZKSuite) TestVerifyRejectsMalformedInput() {
	secret, err := NewSecret()
	s.Require().NoError(err)
	digest, err := Commit(secret, s.binding, 0)
	s.Require().NoError(err)

	pub := PublicInputs{Commitment: digest, Binding: s.binding, Choice: 0}
	s.False(s.verifier.Verify(nil, pub))
	s.False(s.verifier.Verify([]byte("garbage"), pub))

	pub.Commitment = []byte{1, 2, 3}
	proofData, err := Prove(secret, s.binding, 0)
	s.Require().NoError(err)
	s.False(s.verifier.Verify(proofData, pub))
}

func (s *ZKSuite) TestVerifyRejectsForeignSecret() {
	secret1, err := NewSecret()
	s.Require().NoError(err)
	secret2, err := NewSecret()
	s.Require().NoError(err)

	digest, err := Commit(secret1, s.binding, 1)
	s.Require().NoError(err)
	proofData, err := Prove(secret2, s.binding, 1)
	s.Require().NoError(err)

	ok := s.verifier.Verify(proofData, PublicInputs{
		Commitment: digest,
		Binding:    s.binding,
		Choice:     1,
	})
	s.False(ok)
}
