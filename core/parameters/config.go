package parameters

import (
	"fmt"
	"io"

	"github.com/npillmayer/marktext/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'marktext.config'.
func tracer() tracing.Trace {
	return tracing.Select("marktext.config")
}

// LoadYAML reads a YAML configuration and returns it as a flat configuration
// with dotted keys. Nested mappings
//
//	search:
//	  ignorecase: false
//
// and dotted keys (`search.ignorecase: false`) are equivalent.
func LoadYAML(r io.Reader) (testconfig.Conf, error) {
	var raw map[string]interface{}
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF { // empty document
			return testconfig.Conf{}, nil
		}
		return nil, core.WrapError(err, core.EINVALID, "cannot decode configuration")
	}
	conf := testconfig.Conf{}
	flatten("", raw, conf)
	tracer().Debugf("configuration has %d keys", len(conf))
	return conf, nil
}

func flatten(prefix string, m map[string]interface{}, conf testconfig.Conf) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch x := v.(type) {
		case map[string]interface{}:
			flatten(key, x, conf)
		case nil:
			conf[key] = ""
		case string, bool, int:
			conf[key] = x
		default:
			conf[key] = fmt.Sprintf("%v", x)
		}
	}
}
