package tokenizer

type tokenizerState uint8

const (
	eStart tokenizerState = iota + 1
	eFirstToken
	eURL
	eReqVersion
	eStatusCode
	eReason
	eStartLineLF
	eHeaderStart
	eHeaderField
	eHeaderValueWS
	eHeaderValue
	eHeaderValueLF
	eHeadersLF
	eBodyIdentity
	eBodyChunked
	eBodyEOF
	eDead
)

type knownHeader uint8

const (
	hdrOther knownHeader = iota
	hdrContentLength
	hdrTransferEncoding
	hdrTrailer
)

type contentLengthState uint8

const (
	clNone contentLengthState = iota
	clDigits
	clTrailingWS
)
