package base

import (
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"github.com/minio/sha256-simd"
)

var LogFingerprint = NewLogCategory("Fingerprint")

/***************************************
 * Fingerprint
 ***************************************/

type Fingerprint [sha256.Size]byte

func (x Fingerprint) Slice() []byte {
	return x[:]
}
func (x Fingerprint) String() string {
	return hex.EncodeToString(x[:])
}
func (x Fingerprint) ShortString() string {
	return hex.EncodeToString(x[:8])
}
func (x Fingerprint) Valid() bool {
	for _, it := range x {
		if it != 0 {
			return true
		}
	}
	return false
}
func (d *Fingerprint) Set(str string) (err error) {
	var data []byte
	if data, err = hex.DecodeString(str); err == nil {
		if len(data) == sha256.Size {
			copy(d[:], data)
			return nil
		} else {
			err = fmt.Errorf("fingerprint: unexpected string length '%s'", str)
		}
	}
	return err
}
func (x Fingerprint) MarshalText() ([]byte, error) {
	buf := [sha256.Size * 2]byte{}
	hex.Encode(buf[:], x[:])
	return buf[:], nil
}
func (x *Fingerprint) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * Digester
 ***************************************/

type Digester struct {
	hash.Hash
}

func NewDigester(seed Fingerprint) Digester {
	digester := Digester{Hash: sha256.New()}
	digester.Write(seed[:])
	return digester
}

// WriteStrings writes each string followed by a NUL separator, so distinct
// sequences never collide by concatenation.
func (x Digester) WriteStrings(in ...string) {
	for _, it := range in {
		io.WriteString(x.Hash, it)
		x.Hash.Write([]byte{0})
	}
}
func (x Digester) Finalize() (result Fingerprint) {
	copy(result[:], x.Sum(nil))
	return
}

func StringFingerprint(in string) Fingerprint {
	return sha256.Sum256([]byte(in))
}

func ReaderFingerprint(rd io.Reader, seed Fingerprint) (result Fingerprint, err error) {
	digester := NewDigester(seed)
	if _, err = io.Copy(digester, rd); err == nil {
		result = digester.Finalize()
	}
	return
}
