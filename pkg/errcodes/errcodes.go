package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Forbidden           failure.ErrorCode = "Forbidden"

	// Poll cycle and remote calls.
	TransportError failure.ErrorCode = "TransportError" // non-2xx status or network failure
	ParseError     failure.ErrorCode = "ParseError"     // response body is not valid JSON

	// Session and action pipeline.
	SessionInactive    failure.ErrorCode = "SessionInactive"
	SessionActive      failure.ErrorCode = "SessionActive"
	IntervalNotAllowed failure.ErrorCode = "IntervalNotAllowed"
	LotBusy            failure.ErrorCode = "LotBusy"
	NotifyBusy         failure.ErrorCode = "NotifyBusy"
	InvalidLotID       failure.ErrorCode = "InvalidLotID"
	InvalidFilter      failure.ErrorCode = "InvalidFilter"
)
