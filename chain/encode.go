package chain

import "encoding/json"

// EncodeJSON renders sm as the canonical jsonSignedMessage the host
// façade exchanges with its caller (spec.md §6). MessageHash, Identity
// and Signature all implement encoding.TextMarshaler, so their fields
// come out as hex strings; Data comes out base64-encoded, per
// encoding/json's standard []byte handling.
func EncodeJSON(sm SignedMessage) ([]byte, error) {
	return json.Marshal(sm)
}

// DecodeJSON parses the inverse of EncodeJSON. A malformed document
// surfaces as an error here — the host façade maps it to the
// "Fail to parse" error string from spec.md §7.
func DecodeJSON(raw []byte) (SignedMessage, error) {
	var sm SignedMessage
	if err := json.Unmarshal(raw, &sm); err != nil {
		return SignedMessage{}, err
	}
	return sm, nil
}
