package simfhe

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/okradley/veilarena/internal/fhe"
)

type SimulatorSuite struct {
	suite.Suite
	sim *Simulator
}

func TestSimulatorSuite(t *testing.T) {
	suite.Run(t, new(SimulatorSuite))
}

func (s *SimulatorSuite) SetupTest() {
	s.sim = New()
}

func (s *SimulatorSuite) TestEncryptAndDecryptWithGrant() {
	h, err := s.sim.EncryptUint32(1000)
	s.Require().NoError(err)

	s.Require().NoError(s.sim.Allow(h, "alice"))

	v, err := s.sim.Decrypt(h, "alice")
	s.Require().NoError(err)
	s.Equal(uint64(1000), v)
}

func (s *SimulatorSuite) TestDecryptWithoutGrantIsDenied() {
	h, err := s.sim.EncryptUint32(42)
	s.Require().NoError(err)

	_, err = s.sim.Decrypt(h, "eve")
	s.ErrorIs(err, fhe.ErrNotAllowed)
}

func (s *SimulatorSuite) TestDecryptUnknownHandle() {
	_, err := s.sim.Decrypt("ct_bogus", "alice")
	s.ErrorIs(err, fhe.ErrUnknownHandle)
}

func (s *SimulatorSuite) TestOperationsMintFreshHandles() {
	a, _ := s.sim.EncryptUint32(1)
	b, _ := s.sim.EncryptUint32(2)

	sum1, err := s.sim.Add(a, b)
	s.Require().NoError(err)
	sum2, err := s.sim.Add(a, b)
	s.Require().NoError(err)

	s.NotEqual(sum1, sum2, "repeated operations must not reuse handles")
	s.NotEqual(a, sum1)
	s.NotEqual(b, sum1)
}

func (s *SimulatorSuite) TestAddAndSub() {
	a, _ := s.sim.EncryptUint32(100)
	b, _ := s.sim.EncryptUint32(30)

	sum, err := s.sim.Add(a, b)
	s.Require().NoError(err)
	s.Require().NoError(s.sim.Allow(sum, "alice"))
	v, err := s.sim.Decrypt(sum, "alice")
	s.Require().NoError(err)
	s.Equal(uint64(130), v)

	diff, err := s.sim.Sub(a, b)
	s.Require().NoError(err)
	s.Require().NoError(s.sim.Allow(diff, "alice"))
	v, err = s.sim.Decrypt(diff, "alice")
	s.Require().NoError(err)
	s.Equal(uint64(70), v)
}

func (s *SimulatorSuite) TestSubWrapsWithinDomain() {
	a, _ := s.sim.EncryptUint8(0)
	b, _ := s.sim.EncryptUint8(1)

	diff, err := s.sim.Sub(a, b)
	s.Require().NoError(err)
	s.Require().NoError(s.sim.Allow(diff, "alice"))
	v, err := s.sim.Decrypt(diff, "alice")
	s.Require().NoError(err)
	s.Equal(uint64(255), v, "8-bit subtraction wraps")
}

func (s *SimulatorSuite) TestComparisons() {
	a, _ := s.sim.EncryptUint8(3)
	b, _ := s.sim.EncryptUint8(10)

	lt, err := s.sim.Lt(a, b)
	s.Require().NoError(err)
	s.Require().NoError(s.sim.Allow(lt, "alice"))
	v, _ := s.sim.Decrypt(lt, "alice")
	s.Equal(uint64(1), v)

	ge, err := s.sim.Ge(a, b)
	s.Require().NoError(err)
	s.Require().NoError(s.sim.Allow(ge, "alice"))
	v, _ = s.sim.Decrypt(ge, "alice")
	s.Equal(uint64(0), v)
}

func (s *SimulatorSuite) TestAndCombinesPredicates() {
	a, _ := s.sim.EncryptUint8(3)
	ten, _ := s.sim.EncryptUint8(10)

	hasRoom, _ := s.sim.Lt(a, ten)
	hasFunds, _ := s.sim.Ge(ten, a)

	both, err := s.sim.And(hasRoom, hasFunds)
	s.Require().NoError(err)
	s.Require().NoError(s.sim.Allow(both, "alice"))
	v, _ := s.sim.Decrypt(both, "alice")
	s.Equal(uint64(1), v)
}

func (s *SimulatorSuite) TestAndRejectsNonBooleans() {
	a, _ := s.sim.EncryptUint8(3)
	b, _ := s.sim.EncryptUint8(4)

	_, err := s.sim.And(a, b)
	s.ErrorIs(err, fhe.ErrDomainMismatch)
}

func (s *SimulatorSuite) TestSelectPicksBranchWithoutRevealingCond() {
	small, _ := s.sim.EncryptUint8(3)
	ten, _ := s.sim.EncryptUint8(10)
	cond, _ := s.sim.Lt(small, ten) // true

	picked, err := s.sim.Select(cond, small, ten)
	s.Require().NoError(err)
	s.Require().NoError(s.sim.Allow(picked, "alice"))
	v, _ := s.sim.Decrypt(picked, "alice")
	s.Equal(uint64(3), v)

	negCond, _ := s.sim.Ge(small, ten) // false
	picked, err = s.sim.Select(negCond, small, ten)
	s.Require().NoError(err)
	s.Require().NoError(s.sim.Allow(picked, "alice"))
	v, _ = s.sim.Decrypt(picked, "alice")
	s.Equal(uint64(10), v)
}

func (s *SimulatorSuite) TestSelectRejectsNonBooleanCond() {
	a, _ := s.sim.EncryptUint8(3)
	b, _ := s.sim.EncryptUint8(4)

	_, err := s.sim.Select(a, a, b)
	s.ErrorIs(err, fhe.ErrDomainMismatch)
}

func (s *SimulatorSuite) TestMixedDomainsRejected() {
	a, _ := s.sim.EncryptUint8(3)
	b, _ := s.sim.EncryptUint32(4)

	_, err := s.sim.Add(a, b)
	s.ErrorIs(err, fhe.ErrDomainMismatch)
}

func (s *SimulatorSuite) TestGrantsDoNotTransferAcrossOperations() {
	a, _ := s.sim.EncryptUint32(5)
	b, _ := s.sim.EncryptUint32(7)
	s.Require().NoError(s.sim.Allow(a, "alice"))

	sum, err := s.sim.Add(a, b)
	s.Require().NoError(err)

	// The result is a fresh handle; alice's grant on the input is gone.
	_, err = s.sim.Decrypt(sum, "alice")
	s.ErrorIs(err, fhe.ErrNotAllowed)
}

func (s *SimulatorSuite) TestAllowEngineIsIdempotent() {
	h, _ := s.sim.EncryptUint8(1)
	s.Require().NoError(s.sim.AllowEngine(h))
	s.Require().NoError(s.sim.AllowEngine(h))
}
