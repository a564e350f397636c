package txpool

import "github.com/pkg/errors"

var (
	errKnownTx  = errors.New("known transaction")
	errTooLarge = errors.New("tx too large")
	errExpired  = errors.New("tx expired")
)

type badTxError struct {
	msg string
}

func (e badTxError) Error() string {
	return "bad tx: " + e.msg
}

type txRejectedError struct {
	msg string
}

func (e txRejectedError) Error() string {
	return "tx rejected: " + e.msg
}

func IsErrKnownTx(err error) bool {
	return err == errKnownTx
}

func IsErrTooLarge(err error) bool {
	return err == errTooLarge
}

func IsErrExpired(err error) bool {
	return err == errExpired
}

func IsBadTx(err error) bool {
	_, ok := err.(badTxError)
	return ok
}

func IsTxRejected(err error) bool {
	_, ok := err.(txRejectedError)
	return ok
}
