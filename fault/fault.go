// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
//
// AuthorizationError - caller is not entitled to perform the operation
// IntegrityError     - repository or external record is inconsistent
// ExternalError      - an external service rejected a request
type AuthorizationError GenericError
type IntegrityError GenericError
type ExternalError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised        = ProcessError("already initialised")
	ErrAssetKeyMismatch          = IntegrityError("stored asset key does not match presented asset key")
	ErrCannotDecodeKey           = InvalidError("cannot decode key")
	ErrCertificateFileExists     = ProcessError("certificate file already exists")
	ErrContentURITooLong         = InvalidError("content uri is too long")
	ErrIncorrectProgramOwner     = AuthorizationError("repository account does not have the correct program owner")
	ErrInsufficientFunds         = ExternalError("insufficient funds for payment transfer")
	ErrInsufficientTokenBalance  = ExternalError("insufficient token balance for transfer")
	ErrInvalidBuyStrategy        = InvalidError("buy strategy is invalid")
	ErrInvalidCount              = InvalidError("count is invalid")
	ErrInvalidInstruction        = InvalidError("instruction tag is invalid")
	ErrInvalidKeyLength          = InvalidError("key length is invalid")
	ErrInvalidLoggerChannel      = ProcessError("invalid logger channel")
	ErrInvalidStructPointer      = InvalidError("invalid struct pointer")
	ErrKeyFileExists             = ProcessError("key file already exists")
	ErrKeyNotFound               = NotFoundError("key not found")
	ErrMalformedHoldingRecord    = IntegrityError("token holding record is malformed")
	ErrMalformedInstruction      = InvalidError("instruction data is truncated or malformed")
	ErrMalformedMetadataRecord   = IntegrityError("metadata record is malformed")
	ErrMalformedRecord           = IntegrityError("repository record is malformed")
	ErrMetadataAuthorityMismatch = AuthorizationError("metadata update authority mismatch")
	ErrMissingRequiredSignature  = AuthorizationError("missing required signature")
	ErrNoAuthorityFound          = ProcessError("no valid authority handle found")
	ErrNotCurrentHolder          = AuthorizationError("presented holder is not the current holder")
	ErrNotDelegatedAuthority     = AuthorizationError("authority is not the recorded delegate")
	ErrNotInitialised            = ProcessError("not initialised")
	ErrRateLimiting              = ProcessError("rate limiting")
	ErrRepositoryTooSmall        = IntegrityError("repository buffer is too small for slot")
	ErrSlotOutOfRange            = IntegrityError("slot id is out of range")
	ErrTooFewAccounts            = InvalidError("too few accounts for instruction")
	ErrTransferAmountNotOne      = InvalidError("asset transfer amount must be exactly one")
	ErrWrongOwnerForHolding      = AuthorizationError("holding record is not owned by presented account")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorizationError) Error() string { return string(e) }
func (e IntegrityError) Error() string     { return string(e) }
func (e ExternalError) Error() string      { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }

// determine the class of an error
func IsErrAuthorization(e error) bool { _, ok := e.(AuthorizationError); return ok }
func IsErrIntegrity(e error) bool     { _, ok := e.(IntegrityError); return ok }
func IsErrExternal(e error) bool      { _, ok := e.(ExternalError); return ok }
func IsErrInvalid(e error) bool       { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool      { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool       { _, ok := e.(ProcessError); return ok }
