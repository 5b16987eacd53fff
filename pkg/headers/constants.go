package headers

// HeaderKey is the name of a signature header.
type HeaderKey string

// Signature headers, set on both requests and responses.
const (
	HeaderSignature        HeaderKey = "x-inbenta-signature"
	HeaderSignatureVersion HeaderKey = "x-inbenta-signature-version"
	HeaderTimestamp        HeaderKey = "x-inbenta-timestamp"
)

func (k HeaderKey) String() string {
	return string(k)
}
