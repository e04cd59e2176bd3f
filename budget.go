package soltx

import "encoding/binary"

// Compute Budget Program instruction tags, a single byte on the wire.
const (
	budgetRequestUnitsDeprecated uint8 = iota
	budgetRequestHeapFrame
	budgetSetComputeUnitLimit
	budgetSetComputeUnitPrice
)

// SetComputeUnitLimitInstruction returns a Compute Budget instruction
// capping the transaction at the given number of compute units.
func SetComputeUnitLimitInstruction(units uint32) Instruction {
	data := make([]byte, 5)
	data[0] = budgetSetComputeUnitLimit
	binary.LittleEndian.PutUint32(data[1:5], units)
	return Instruction{
		ProgramID: ComputeBudgetProgram,
		Data:      data,
	}
}

// SetComputeUnitPriceInstruction returns a Compute Budget instruction
// setting the priority fee in micro-lamports per compute unit.
func SetComputeUnitPriceInstruction(microLamports uint64) Instruction {
	data := make([]byte, 9)
	data[0] = budgetSetComputeUnitPrice
	binary.LittleEndian.PutUint64(data[1:9], microLamports)
	return Instruction{
		ProgramID: ComputeBudgetProgram,
		Data:      data,
	}
}
