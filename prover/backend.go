package prover

import (
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/test/unsafekzg"
	"github.com/kysee/txcodec/proof"
	"github.com/kysee/txcodec/types"
	"github.com/rs/zerolog"
)

// circuitKeys holds one compiled circuit and its keys for a proof system.
type circuitKeys interface {
	prove(assignment frontend.Circuit, log zerolog.Logger) (proof.Proof, error)
	verify(p proof.Proof, public frontend.Circuit) error
	exportSolidity(w io.Writer) error
}

func setup(system proof.System, circuit frontend.Circuit) (circuitKeys, error) {
	switch system {
	case proof.Groth16:
		ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
		if err != nil {
			return nil, err
		}
		pk, vk, err := groth16.Setup(ccs)
		if err != nil {
			return nil, err
		}
		return &groth16Keys{ccs: ccs, pk: pk, vk: vk}, nil
	case proof.Plonk:
		ccs, err := frontend.Compile(ecc.BN254.ScalarField(), scs.NewBuilder, circuit)
		if err != nil {
			return nil, err
		}
		// TODO: load a ceremony SRS from a file instead of the test-only unsafekzg one.
		srs, srsLagrange, err := unsafekzg.NewSRS(ccs)
		if err != nil {
			return nil, err
		}
		pk, vk, err := plonk.Setup(ccs, srs, srsLagrange)
		if err != nil {
			return nil, err
		}
		return &plonkKeys{ccs: ccs, pk: pk, vk: vk}, nil
	default:
		return nil, fmt.Errorf("unknown proof system %d", system)
	}
}

func fullWitness(assignment frontend.Circuit) (witness.Witness, error) {
	return frontend.NewWitness(assignment, ecc.BN254.ScalarField())
}

func publicWitness(assignment frontend.Circuit) (witness.Witness, error) {
	return frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
}

type groth16Keys struct {
	ccs constraint.ConstraintSystem
	pk  groth16.ProvingKey
	vk  groth16.VerifyingKey
}

func (k *groth16Keys) prove(assignment frontend.Circuit, log zerolog.Logger) (proof.Proof, error) {
	wtn, err := fullWitness(assignment)
	if err != nil {
		return nil, err
	}
	gp, err := groth16.Prove(k.ccs, k.pk, wtn, backend.WithSolverOptions(solver.WithLogger(log)))
	if err != nil {
		return nil, err
	}
	return proof.FromGroth16(gp)
}

func (k *groth16Keys) verify(p proof.Proof, public frontend.Circuit) error {
	gp, ok := p.(*proof.Groth16Proof)
	if !ok || gp == nil {
		return fmt.Errorf("%w: want groth16, got %T", types.ErrProofSystemMismatch, p)
	}
	pubWtn, err := publicWitness(public)
	if err != nil {
		return err
	}
	return groth16.Verify(gp.ToGroth16(), k.vk, pubWtn)
}

func (k *groth16Keys) exportSolidity(w io.Writer) error {
	return k.vk.ExportSolidity(w)
}

type plonkKeys struct {
	ccs constraint.ConstraintSystem
	pk  plonk.ProvingKey
	vk  plonk.VerifyingKey
}

func (k *plonkKeys) prove(assignment frontend.Circuit, log zerolog.Logger) (proof.Proof, error) {
	wtn, err := fullWitness(assignment)
	if err != nil {
		return nil, err
	}
	pp, err := plonk.Prove(k.ccs, k.pk, wtn, backend.WithSolverOptions(solver.WithLogger(log)))
	if err != nil {
		return nil, err
	}
	return proof.FromPlonk(pp)
}

func (k *plonkKeys) verify(p proof.Proof, public frontend.Circuit) error {
	blob, ok := p.(proof.BlobProof)
	if !ok {
		return fmt.Errorf("%w: want plonk, got %T", types.ErrProofSystemMismatch, p)
	}
	pp, err := blob.ToPlonk()
	if err != nil {
		return err
	}
	pubWtn, err := publicWitness(public)
	if err != nil {
		return err
	}
	return plonk.Verify(pp, k.vk, pubWtn)
}

func (k *plonkKeys) exportSolidity(w io.Writer) error {
	return k.vk.ExportSolidity(w)
}
