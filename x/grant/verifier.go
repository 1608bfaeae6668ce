package grant

// ProofOutcome is the verifier's judgement of a submitted proof.
type ProofOutcome int

const (
	// ProofVerified means the proof held and the milestone is approved.
	ProofVerified ProofOutcome = 1
	// ProofRejected means the proof failed and the milestone stays open.
	ProofRejected ProofOutcome = 2
	// ProofExpired means the proof referenced stale public input. The
	// transaction fails without recording a decision.
	ProofExpired ProofOutcome = 3
)

func (o ProofOutcome) String() string {
	switch o {
	case ProofVerified:
		return "verified"
	case ProofRejected:
		return "rejected"
	case ProofExpired:
		return "expired"
	default:
		return "invalid"
	}
}

// ProofVerifier judges milestone completion proofs. Implementations
// must be deterministic: every node sees the same outcome for the same
// input or consensus breaks.
type ProofVerifier interface {
	Verify(circuitID string, proof, publicInput []byte) (ProofOutcome, error)
}

// VerifierFunc turns a plain function into a ProofVerifier.
type VerifierFunc func(circuitID string, proof, publicInput []byte) (ProofOutcome, error)

var _ ProofVerifier = VerifierFunc(nil)

// Verify implements ProofVerifier.
func (f VerifierFunc) Verify(circuitID string, proof, publicInput []byte) (ProofOutcome, error) {
	return f(circuitID, proof, publicInput)
}
