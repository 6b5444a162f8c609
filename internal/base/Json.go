package base

import (
	"bytes"
	"flag"
	"fmt"
	"io"

	fastJson "github.com/goccy/go-json"
)

type JsonMap map[string]interface{}

/***************************************
 * JSON
 ***************************************/

func MarshalJSON[T fmt.Stringer](x T) ([]byte, error) {
	return fastJson.Marshal(x.String())
}
func UnmarshalJSON[T flag.Value](x T, data []byte) error {
	var str string
	if err := fastJson.Unmarshal(data, &str); err != nil {
		return err
	}
	return x.Set(str)
}

type JsonOptions struct {
	PrettyPrint bool
}

type JsonOptionFunc = func(*JsonOptions)

func OptionJsonPrettyPrint(enabled bool) JsonOptionFunc {
	return func(jo *JsonOptions) {
		jo.PrettyPrint = enabled
	}
}

func JsonSerialize(x interface{}, dst io.Writer, options ...JsonOptionFunc) error {
	var opts JsonOptions
	for _, it := range options {
		it(&opts)
	}

	encoder := fastJson.NewEncoder(dst)

	if opts.PrettyPrint {
		encoder.SetIndent("", "  ")
	} else {
		encoder.SetIndent("", "")
	}

	return encoder.EncodeWithOption(x,
		fastJson.DisableHTMLEscape(),
		fastJson.DisableNormalizeUTF8())
}
func JsonDeserialize(x interface{}, src io.Reader) error {
	decoder := fastJson.NewDecoder(src)
	decoder.DisallowUnknownFields()
	return decoder.Decode(x)
}

func PrettyPrint(x interface{}) string {
	buf := bytes.Buffer{}
	if err := JsonSerialize(x, &buf, OptionJsonPrettyPrint(true)); err != nil {
		return fmt.Sprint(err)
	}
	return buf.String()
}

type PrettyPrinter struct {
	Ref interface{}
}

func (x PrettyPrinter) String() string {
	return PrettyPrint(x.Ref)
}
