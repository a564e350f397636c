// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import "errors"

// Execution errors returned by program handlers. The runtime treats any
// non-nil error as a full revert of the instruction's effects.
var (
	// ErrInvalidInstruction marks an empty payload or unrecognized opcode.
	ErrInvalidInstruction = errors.New("invalid instruction")

	// ErrNotEnoughAccounts marks an account list shorter than the
	// instruction's fixed arity.
	ErrNotEnoughAccounts = errors.New("not enough accounts")

	// ErrUnauthorized marks a missing required signature.
	ErrUnauthorized = errors.New("missing required signature")

	// ErrIncorrectOwner marks an account whose owner is not the executing
	// program.
	ErrIncorrectOwner = errors.New("incorrect account owner")

	// ErrBadRecordData marks a data buffer that does not decode into the
	// expected record.
	ErrBadRecordData = errors.New("bad record data")

	// ErrInvalidRecord marks decoded data that violates a semantic rule,
	// such as an admin mismatch.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrInsufficientFunds marks a failed balance check.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrLamportOverflow marks lamport arithmetic that would wrap.
	ErrLamportOverflow = errors.New("lamport balance overflow")

	// ErrAccountNotWritable marks a mutation of an account whose meta was
	// not flagged writable.
	ErrAccountNotWritable = errors.New("account not writable")
)
