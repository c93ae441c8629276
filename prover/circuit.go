package prover

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// TransactCircuit proves knowledge of the note secret behind a nullifier and
// an output commitment bound to the public delta.
//
//	nullifier     = MiMC(secret)
//	outCommitment = MiMC(secret, delta)
type TransactCircuit struct {
	Secret        frontend.Variable
	Nullifier     frontend.Variable `gnark:",public"`
	OutCommitment frontend.Variable `gnark:",public"`
	Delta         frontend.Variable `gnark:",public"`
}

func (cc *TransactCircuit) Define(api frontend.API) error {
	hFunc, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}

	hFunc.Write(cc.Secret)
	api.AssertIsEqual(cc.Nullifier, hFunc.Sum())

	hFunc.Reset()
	hFunc.Write(cc.Secret, cc.Delta)
	api.AssertIsEqual(cc.OutCommitment, hFunc.Sum())
	return nil
}

// TreeCircuit proves the commitment tree moved from a private root to
// RootAfter by appending OutCommitment.
//
//	rootAfter = MiMC(rootBefore, outCommitment)
type TreeCircuit struct {
	RootBefore    frontend.Variable
	OutCommitment frontend.Variable `gnark:",public"`
	RootAfter     frontend.Variable `gnark:",public"`
}

func (cc *TreeCircuit) Define(api frontend.API) error {
	hFunc, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	hFunc.Write(cc.RootBefore, cc.OutCommitment)
	api.AssertIsEqual(cc.RootAfter, hFunc.Sum())
	return nil
}
